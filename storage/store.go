// Package storage provides term persistence for the term graph. It defines
// the store contract the traversal and ingestion layers depend on, plus an
// in-memory implementation and one backed by NATS JetStream KV.
package storage

import (
	"context"

	"github.com/c360studio/termgraph/model"
)

// TermStore is the storage contract for the term graph. Any backend that
// can answer these four operations is pluggable: Upsert is the only write
// path, Get and ChildrenOf are the single-hop primitives traversal builds
// its closures from, and SchemeCounts is the per-scheme aggregate.
type TermStore interface {
	// Upsert inserts or replaces the term keyed by its URI and returns
	// that URI. Re-upserting an unchanged term is a no-op on stored
	// state.
	Upsert(ctx context.Context, term *model.Term) (string, error)

	// Get retrieves the term with the given URI, or ErrNotFound.
	Get(ctx context.Context, uri string) (*model.Term, error)

	// ChildrenOf returns every term whose broader list contains uri,
	// ordered ascending by URI.
	ChildrenOf(ctx context.Context, uri string) ([]*model.Term, error)

	// SchemeCounts returns the number of terms per scheme. Order across
	// schemes is unspecified; each count is exact.
	SchemeCounts(ctx context.Context) ([]model.SchemeCount, error)
}
