// Package ingest turns loaded SKOS vocabularies into persisted terms,
// inferring cross-vocabulary extension relationships along the way.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/c360studio/termgraph/rdf"
	"github.com/c360studio/termgraph/storage"
	"github.com/c360studio/termgraph/vocabulary/skos"
)

// ErrNothingLoaded is returned when Ingest runs before any vocabulary has
// been loaded into the session.
var ErrNothingLoaded = errors.New("no vocabulary loaded")

// Report summarizes one ingestion run.
type Report struct {
	// Scheme is the concept scheme of the ingested vocabulary, empty
	// when the source declared none.
	Scheme string

	// Extends lists the vocabularies the ingested one extends, whether
	// declared in the source or inferred from cross-vocabulary broader
	// links.
	Extends []string

	// Inferred is true when the extension edges were derived rather
	// than declared.
	Inferred bool

	// Terms is the number of terms upserted.
	Terms int
}

// Pipeline ingests the most recently loaded vocabulary of a session into a
// term store. All writes go through the store's Upsert, keyed by URI, so
// re-ingesting an unchanged vocabulary leaves stored state unchanged.
type Pipeline struct {
	logger *slog.Logger
}

// NewPipeline creates a Pipeline.
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger}
}

// Ingest persists the vocabulary from the session's most recent load.
//
// It first identifies the loaded vocabulary by its skos:ConceptScheme
// subject in the just-parsed increment. When present, extension detection
// runs in priority order: an rdfs:subPropertyOf declaration on the
// vocabulary is trusted as-is; otherwise the direct broader targets of the
// increment's concepts are resolved against the whole working graph, and
// every distinct foreign vocabulary found becomes an inferred extension
// edge, written back into the graph so later runs see it as declared. A
// vocabulary with no scheme subject is still ingested term-by-term; only
// inference is skipped.
func (p *Pipeline) Ingest(ctx context.Context, session *skos.Session, store storage.TermStore) (*Report, error) {
	increment := session.LastLoaded()
	if increment == nil {
		return nil, ErrNothingLoaded
	}

	report := &Report{}

	schemes := increment.SubjectsByType(skos.ConceptSchemeType)
	if len(schemes) == 0 {
		p.logger.Warn("loaded vocabulary does not declare a skos:ConceptScheme, skipping extension inference")
	} else {
		report.Scheme = schemes[0]
		p.logger.Info("ingesting vocabulary", slog.String("scheme", report.Scheme))

		extends, inferred, err := p.detectExtensions(session, increment, report.Scheme)
		if err != nil {
			return nil, err
		}
		report.Extends = extends
		report.Inferred = inferred
	}

	count, err := p.persistConcepts(ctx, session, increment, store)
	if err != nil {
		return nil, err
	}
	report.Terms = count
	return report, nil
}

// detectExtensions returns the vocabularies extended by scheme, preferring
// an explicit declaration over inference.
func (p *Pipeline) detectExtensions(session *skos.Session, increment *rdf.Graph, scheme string) ([]string, bool, error) {
	declared := session.Graph().ObjectValues(scheme, rdf.RDFSSubPropertyOf)
	if len(declared) > 0 {
		for _, extended := range declared {
			p.logger.Info("vocabulary declares extension", slog.String("extends", extended))
		}
		return declared, false, nil
	}

	// Collect the direct broader targets of the increment's concepts and
	// resolve each against the whole working graph; a target living in a
	// different vocabulary marks that vocabulary as extended.
	candidates := make(map[string]bool)
	for _, conceptURI := range increment.SubjectsByType(skos.ConceptType) {
		for _, target := range increment.ObjectValues(conceptURI, skos.Broader) {
			concept, err := session.Concept(target)
			if err != nil {
				if errors.Is(err, skos.ErrNotFound) {
					// Dangling broader target, normal condition.
					continue
				}
				return nil, false, fmt.Errorf("resolve broader concept %q: %w", target, err)
			}
			if concept.Vocabulary != "" && concept.Vocabulary != scheme {
				candidates[concept.Vocabulary] = true
			}
		}
	}

	if len(candidates) == 0 {
		// The vocabulary stands alone. Normal terminal case.
		return nil, false, nil
	}

	extends := make([]string, 0, len(candidates))
	for extended := range candidates {
		extends = append(extends, extended)
	}
	sort.Strings(extends)
	for _, extended := range extends {
		p.logger.Info("inferred vocabulary extension", slog.String("extends", extended))
		session.Graph().Add(rdf.Triple{
			Subject:   scheme,
			Predicate: rdf.RDFSSubPropertyOf,
			Object:    rdf.IRIObject(extended),
		})
	}
	return extends, true, nil
}

// persistConcepts maps every concept of the increment to a term and
// upserts it.
func (p *Pipeline) persistConcepts(ctx context.Context, session *skos.Session, increment *rdf.Graph, store storage.TermStore) (int, error) {
	count := 0
	for _, uri := range increment.SubjectsByType(skos.ConceptType) {
		concept, err := session.Concept(uri)
		if err != nil {
			return count, fmt.Errorf("resolve concept %q: %w", uri, err)
		}
		if _, err := store.Upsert(ctx, concept.ToTerm()); err != nil {
			return count, fmt.Errorf("upsert term %q: %w", uri, err)
		}
		count++
	}
	return count, nil
}
