package skos

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/c360studio/termgraph/model"
	"github.com/c360studio/termgraph/rdf"
)

// Session is a vocabulary reading session. It owns the cumulative triple
// graph: each Load merges another document into the same working set, which
// is how a base vocabulary and its extensions end up queryable together.
// The increment from the most recent Load stays addressable separately so
// ingestion can reason about "the vocabulary just loaded".
//
// Sessions are not safe for concurrent use.
type Session struct {
	logger *slog.Logger
	graph  *rdf.Graph
	loaded *rdf.Graph
	closed bool
}

// Open creates a new session with an empty working graph.
func Open(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		logger: logger,
		graph:  rdf.NewGraph(),
	}
}

// Close releases the session. Further use returns ErrClosed.
func (s *Session) Close() error {
	s.closed = true
	s.graph = nil
	s.loaded = nil
	return nil
}

// Graph returns the cumulative working graph, or nil after Close. Callers
// holding a session across Close must nil-check before dereferencing.
func (s *Session) Graph() *rdf.Graph {
	return s.graph
}

// LastLoaded returns the graph increment from the most recent Load, or nil
// when nothing has been loaded yet or the session is closed.
func (s *Session) LastLoaded() *rdf.Graph {
	return s.loaded
}

// Load parses a serialized vocabulary from r and merges it into the working
// graph. Extra namespace bindings apply after the document's own prefix
// directives. A parse failure aborts the whole call and leaves the working
// graph untouched.
func (s *Session) Load(r io.Reader, format rdf.Format, bindings map[string]string) error {
	if s.closed {
		return ErrClosed
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	increment, err := rdf.Parse(data, format)
	if err != nil {
		return fmt.Errorf("parse source: %w", err)
	}
	for prefix, iri := range bindings {
		increment.Bind(prefix, iri)
	}

	s.graph.Merge(increment)
	s.loaded = increment
	s.logger.Debug("loaded vocabulary source",
		slog.String("format", string(format)),
		slog.Int("triples", increment.Len()))
	return nil
}

// LoadFile loads a vocabulary from a local file. An empty format is
// inferred from the file extension.
func (s *Session) LoadFile(path string, format rdf.Format, bindings map[string]string) error {
	if format == "" {
		inferred, err := rdf.ParseFormat(filepath.Ext(path))
		if err != nil {
			return fmt.Errorf("infer format of %s: %w", path, err)
		}
		format = inferred
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	return s.Load(f, format, bindings)
}

// ExpandName expands a prefixed name to a full URI using the working
// graph's bindings. Absolute URIs and unexpandable names pass through
// unchanged.
func (s *Session) ExpandName(name string) string {
	if s.closed {
		return name
	}
	return s.graph.Expand(name)
}

// CompactName abbreviates a URI to a prefixed name when a binding covers
// it; otherwise the URI is returned unchanged.
func (s *Session) CompactName(uri string) string {
	if s.closed {
		return uri
	}
	return s.graph.Compact(uri)
}

// ConceptURIs lists the subjects typed skos:Concept in the working graph,
// sorted ascending. A non-empty scheme restricts the result to concepts
// whose inScheme or topConceptOf matches it.
func (s *Session) ConceptURIs(scheme string) ([]string, error) {
	if s.closed {
		return nil, ErrClosed
	}

	uris := s.graph.SubjectsByType(ConceptType)
	if scheme == "" {
		return uris, nil
	}

	scheme = s.ExpandName(scheme)
	var filtered []string
	for _, uri := range uris {
		if slices.Contains(s.graph.ObjectValues(uri, InScheme), scheme) ||
			slices.Contains(s.graph.ObjectValues(uri, TopConceptOf), scheme) {
			filtered = append(filtered, uri)
		}
	}
	return filtered, nil
}

// Broader returns the direct broader target URIs of a concept, in
// declaration order. A non-empty scheme keeps only targets in that scheme.
func (s *Session) Broader(concept, scheme string) ([]string, error) {
	if s.closed {
		return nil, ErrClosed
	}

	targets := s.graph.ObjectValues(s.ExpandName(concept), Broader)
	if scheme == "" {
		return targets, nil
	}

	scheme = s.ExpandName(scheme)
	var filtered []string
	for _, target := range targets {
		if slices.Contains(s.graph.ObjectValues(target, InScheme), scheme) {
			filtered = append(filtered, target)
		}
	}
	return filtered, nil
}

// Narrower returns the URIs of concepts whose broader link points at the
// given concept, sorted ascending. A non-empty scheme keeps only concepts
// in that scheme.
func (s *Session) Narrower(concept, scheme string) ([]string, error) {
	if s.closed {
		return nil, ErrClosed
	}

	subjects := s.graph.Subjects(Broader, s.ExpandName(concept))
	if scheme == "" {
		return subjects, nil
	}

	scheme = s.ExpandName(scheme)
	var filtered []string
	for _, subject := range subjects {
		if slices.Contains(s.graph.ObjectValues(subject, InScheme), scheme) {
			filtered = append(filtered, subject)
		}
	}
	return filtered, nil
}

// Concept resolves the full record for a concept URI (or prefixed name).
// Missing predicates degrade to empty fields; ErrNotFound is returned only
// when the URI appears in no triple of the working graph at all.
func (s *Session) Concept(name string) (*model.Concept, error) {
	if s.closed {
		return nil, ErrClosed
	}

	uri := s.ExpandName(name)
	if !s.graph.Mentions(uri) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uri)
	}

	labels := s.graph.ObjectValues(uri, PrefLabel)
	labels = append(labels, s.graph.ObjectValues(uri, AltLabel)...)
	labels = append(labels, s.graph.ObjectValues(uri, rdf.RDFSLabel)...)

	definition := strings.TrimSpace(strings.Join(s.graph.ObjectValues(uri, Definition), "\n"))

	narrower, err := s.Narrower(uri, "")
	if err != nil {
		return nil, err
	}

	// inScheme wins over topConceptOf; neither leaves the vocabulary
	// empty, which is legal.
	vocabulary := s.graph.FirstObjectValue(uri, InScheme)
	if vocabulary == "" {
		vocabulary = s.graph.FirstObjectValue(uri, TopConceptOf)
	}

	return &model.Concept{
		URI:        uri,
		Name:       model.LocalName(uri),
		Label:      labels,
		Definition: definition,
		Broader:    s.graph.ObjectValues(uri, Broader),
		Narrower:   narrower,
		Vocabulary: vocabulary,
		History:    s.graph.ObjectValues(uri, HistoryNote),
		Notes:      s.graph.ObjectValues(uri, Note),
		ScopeNote:  s.graph.ObjectValues(uri, ScopeNote),
		Related:    s.graph.ObjectValues(uri, Related),
		Example:    s.graph.ObjectValues(uri, Example),
		ChangeNote: s.graph.ObjectValues(uri, ChangeNote),
	}, nil
}
