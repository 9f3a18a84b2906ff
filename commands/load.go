package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/termgraph/ingest"
	"github.com/c360studio/termgraph/rdf"
	"github.com/c360studio/termgraph/storage"
	"github.com/c360studio/termgraph/vocabulary/skos"
)

func newLoadCommand(app *App) *cobra.Command {
	var format string
	var bindings []string

	cmd := &cobra.Command{
		Use:   "load <file>...",
		Short: "Load SKOS vocabulary files and ingest them into the term store",
		Long: `Load parses each vocabulary file into a shared working graph, in order,
and ingests each one into the configured term store. Loading a base
vocabulary before its extensions lets extension inference see the base
concepts.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeStore, err := openStore(ctx, app)
			if err != nil {
				return err
			}
			defer closeStore()

			return loadAndIngest(ctx, app, store, args, format, parseBindings(bindings))
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "source format (turtle, ntriples); inferred from extension when empty")
	cmd.Flags().StringArrayVar(&bindings, "bind", nil, "extra namespace binding as prefix=iri (repeatable)")
	return cmd
}

// loadAndIngest loads every file into one session and ingests each
// increment into the store.
func loadAndIngest(ctx context.Context, app *App, store storage.TermStore, files []string, format string, bindings map[string]string) error {
	var f rdf.Format
	if format != "" {
		parsed, err := rdf.ParseFormat(format)
		if err != nil {
			return err
		}
		f = parsed
	}

	session := skos.Open(app.Logger)
	defer session.Close()

	pipeline := ingest.NewPipeline(app.Logger)

	for _, file := range files {
		if err := session.LoadFile(file, f, bindings); err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
		report, err := pipeline.Ingest(ctx, session, store)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", file, err)
		}
		app.Logger.Info("ingested vocabulary",
			"file", file,
			"scheme", report.Scheme,
			"terms", report.Terms,
			"extends", strings.Join(report.Extends, ","))
	}
	return nil
}

// parseBindings turns prefix=iri flags into a binding map, ignoring
// malformed entries.
func parseBindings(raw []string) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	bindings := make(map[string]string, len(raw))
	for _, entry := range raw {
		prefix, iri, ok := strings.Cut(entry, "=")
		if ok && prefix != "" && iri != "" {
			bindings[prefix] = iri
		}
	}
	return bindings
}
