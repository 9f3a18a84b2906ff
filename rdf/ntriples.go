package rdf

import (
	"fmt"
	"strings"
)

// parseNTriples parses a line-based N-Triples document into g. Each
// non-blank, non-comment line must hold exactly one triple. The Turtle
// scanner does the term-level work, but Turtle-only constructs (the `a`
// keyword, prefixed names, property lists, collections, bare literals) are
// rejected up front: N-Triples terms are only absolute IRIs, blank node
// labels, and quoted literals.
func parseNTriples(g *Graph, src string) error {
	for i, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p := &turtleParser{g: g, src: line, line: i + 1, prefixes: map[string]string{}}

		if !p.hasPrefix("<") && !p.hasPrefix("_:") {
			return fmt.Errorf("%w: line %d: bad subject", ErrParse, i+1)
		}
		subject, err := p.parseSubject()
		if err != nil {
			return fmt.Errorf("%w: line %d: bad subject", ErrParse, i+1)
		}

		p.skipWhitespace()
		if !p.hasPrefix("<") {
			return fmt.Errorf("%w: line %d: bad predicate", ErrParse, i+1)
		}
		predicate, err := p.parsePredicate()
		if err != nil {
			return fmt.Errorf("%w: line %d: bad predicate", ErrParse, i+1)
		}

		p.skipWhitespace()
		if !p.hasPrefix("<") && !p.hasPrefix("_:") && !p.hasPrefix("\"") {
			return fmt.Errorf("%w: line %d: bad object", ErrParse, i+1)
		}
		object, err := p.parseObject()
		if err != nil {
			return fmt.Errorf("%w: line %d: bad object", ErrParse, i+1)
		}

		p.skipWhitespace()
		if !p.consume('.') {
			return fmt.Errorf("%w: line %d: missing terminating '.'", ErrParse, i+1)
		}
		g.Add(Triple{Subject: subject, Predicate: predicate, Object: object})
	}
	return nil
}
