package rdf

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParse is returned when a source document cannot be parsed. A failed
// parse never mutates the target graph.
var ErrParse = errors.New("rdf parse error")

// Format identifies a supported RDF serialization.
type Format string

const (
	// FormatTurtle is the Turtle serialization.
	FormatTurtle Format = "turtle"

	// FormatNTriples is the line-based N-Triples serialization.
	FormatNTriples Format = "ntriples"
)

// FormatInfo provides metadata about a serialization format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
}

// ParseFormat resolves a format from a name, MIME type, or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "turtle", "ttl", ".ttl", "text/turtle":
		return FormatTurtle, nil
	case "ntriples", "nt", ".nt", "n-triples", "application/n-triples":
		return FormatNTriples, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (valid: turtle, ntriples)", s)
	}
}

// Parse parses a serialized document in the given format into a new graph
// seeded with the default namespace bindings.
func Parse(data []byte, format Format) (*Graph, error) {
	g := NewGraph()
	for prefix, iri := range defaultPrefixes() {
		g.Bind(prefix, iri)
	}

	switch format {
	case FormatTurtle:
		if err := parseTurtle(g, string(data)); err != nil {
			return nil, err
		}
	case FormatNTriples:
		if err := parseNTriples(g, string(data)); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrParse, format)
	}
	return g, nil
}
