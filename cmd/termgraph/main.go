// Package main provides the termgraph binary entry point. Termgraph
// maintains a SKOS-style controlled-vocabulary term graph: it loads
// vocabularies from Turtle or N-Triples sources, ingests them as terms
// with cross-vocabulary extension inference, and answers broader and
// narrower closure queries.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/c360studio/termgraph/commands"
)

// Version is the release version, overridable at build time.
var Version = "0.2.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := commands.NewRootCommand(Version)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
