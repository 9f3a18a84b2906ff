// Package graph computes broader and narrower closures over a term store.
// Traversal is read-only and depends only on the storage.TermStore contract,
// so it works unchanged across store backends.
package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/c360studio/termgraph/model"
	"github.com/c360studio/termgraph/storage"
)

// Traversal answers transitive closure queries over a term store. Dangling
// broader references and cycles are normal graph conditions: a visited set
// guarantees termination and missing link targets are skipped, never
// reported as errors.
type Traversal struct {
	store storage.TermStore
}

// NewTraversal creates a Traversal over the given store.
func NewTraversal(store storage.TermStore) *Traversal {
	return &Traversal{store: store}
}

// Broader returns the transitive broader closure of startURI, beginning
// with the start term itself, in breadth-first order: the start term, then
// its parents in declaration order, then their parents, and so on. Each
// term appears once. An unknown start URI yields an empty result.
func (t *Traversal) Broader(ctx context.Context, startURI string) ([]*model.Term, error) {
	start, err := t.store.Get(ctx, startURI)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get start term: %w", err)
	}

	visited := map[string]bool{start.URI: true}
	result := []*model.Term{start}
	frontier := []*model.Term{start}

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		for _, parentURI := range current.Broader {
			if visited[parentURI] {
				continue
			}
			visited[parentURI] = true

			parent, err := t.store.Get(ctx, parentURI)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					// Dangling reference, skip silently.
					continue
				}
				return nil, fmt.Errorf("get broader term %q: %w", parentURI, err)
			}
			result = append(result, parent)
			frontier = append(frontier, parent)
		}
	}

	return result, nil
}

// Narrower returns the transitive narrower closure of startURI. The start
// term itself is not included; output begins with its immediate children.
// Terms are emitted in pre-order: each child's entire subtree precedes the
// next sibling, with siblings ordered by name (URI as tiebreak). An unknown
// start URI, or one with no children, yields an empty result.
//
// The omitted start term and the subtree-before-sibling order reproduce the
// recursive-query behavior this store replaced; both are relied on by
// downstream consumers and are intentionally asymmetric with Broader.
func (t *Traversal) Narrower(ctx context.Context, startURI string) ([]*model.Term, error) {
	visited := map[string]bool{startURI: true}
	var result []*model.Term

	var walk func(uri string) error
	walk = func(uri string) error {
		children, err := t.store.ChildrenOf(ctx, uri)
		if err != nil {
			return fmt.Errorf("children of %q: %w", uri, err)
		}
		sort.Slice(children, func(i, j int) bool {
			if children[i].Name != children[j].Name {
				return children[i].Name < children[j].Name
			}
			return children[i].URI < children[j].URI
		})
		for _, child := range children {
			if visited[child.URI] {
				continue
			}
			visited[child.URI] = true
			result = append(result, child)
			if err := walk(child.URI); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(startURI); err != nil {
		return nil, err
	}
	return result, nil
}

// Schemes returns the number of stored terms per scheme.
func (t *Traversal) Schemes(ctx context.Context) ([]model.SchemeCount, error) {
	return t.store.SchemeCounts(ctx)
}
