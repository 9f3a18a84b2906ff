package storage

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/c360studio/termgraph/model"
)

// MemoryStore is an in-memory TermStore. It is the default backend for the
// CLI and the reference implementation the traversal tests run against.
// Safe for concurrent readers and a single writer.
type MemoryStore struct {
	mu    sync.RWMutex
	terms map[string]*model.Term
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{terms: make(map[string]*model.Term)}
}

// Upsert inserts or replaces the term keyed by its URI.
func (s *MemoryStore) Upsert(_ context.Context, term *model.Term) (string, error) {
	if term == nil || strings.TrimSpace(term.URI) == "" {
		return "", ErrInvalidTerm
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms[term.URI] = cloneTerm(term)
	return term.URI, nil
}

// Get retrieves the term with the given URI, or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, uri string) (*model.Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term, ok := s.terms[uri]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneTerm(term), nil
}

// ChildrenOf returns every term whose broader list contains uri, ordered
// ascending by URI.
func (s *MemoryStore) ChildrenOf(_ context.Context, uri string) ([]*model.Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var children []*model.Term
	for _, term := range s.terms {
		if slices.Contains(term.Broader, uri) {
			children = append(children, cloneTerm(term))
		}
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].URI < children[j].URI
	})
	return children, nil
}

// SchemeCounts returns the number of terms per scheme.
func (s *MemoryStore) SchemeCounts(_ context.Context) ([]model.SchemeCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, term := range s.terms {
		counts[term.Scheme]++
	}

	result := make([]model.SchemeCount, 0, len(counts))
	for scheme, count := range counts {
		result = append(result, model.SchemeCount{Scheme: scheme, Count: count})
	}
	return result, nil
}

// cloneTerm copies a term so callers can't mutate stored state through
// shared slices or maps.
func cloneTerm(t *model.Term) *model.Term {
	c := &model.Term{
		URI:    t.URI,
		Scheme: t.Scheme,
		Name:   t.Name,
	}
	if t.Broader != nil {
		c.Broader = slices.Clone(t.Broader)
	}
	if t.Properties != nil {
		c.Properties = make(map[string]any, len(t.Properties))
		for k, v := range t.Properties {
			c.Properties[k] = v
		}
	}
	return c
}
