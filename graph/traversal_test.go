package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/termgraph/model"
	"github.com/c360studio/termgraph/storage"
)

// referenceStore builds the tree used throughout the traversal tests:
//
//	root <- c1 <- c11 <- c111
//	        ^
//	        +- c12
//	        +- f1 (scheme urn:bar, extends into urn:foo)
func referenceStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()

	terms := []*model.Term{
		{URI: "urn:foo:root", Scheme: "urn:foo", Name: "root"},
		{URI: "urn:foo:c1", Scheme: "urn:foo", Name: "c1", Broader: []string{"urn:foo:root"}},
		{URI: "urn:foo:c11", Scheme: "urn:foo", Name: "c11", Broader: []string{"urn:foo:c1"}},
		{URI: "urn:foo:c111", Scheme: "urn:foo", Name: "c111", Broader: []string{"urn:foo:c11"}},
		{URI: "urn:foo:c12", Scheme: "urn:foo", Name: "c12", Broader: []string{"urn:foo:c1"}},
		{URI: "urn:bar:f1", Scheme: "urn:bar", Name: "f1", Broader: []string{"urn:foo:c1"}},
	}
	for _, term := range terms {
		_, err := store.Upsert(ctx, term)
		require.NoError(t, err)
	}
	return store
}

func names(terms []*model.Term) []string {
	out := make([]string, len(terms))
	for i, term := range terms {
		out[i] = term.Name
	}
	return out
}

func TestBroader_LinearChain(t *testing.T) {
	traversal := NewTraversal(referenceStore(t))

	terms, err := traversal.Broader(context.Background(), "urn:foo:c11")
	require.NoError(t, err)
	assert.Equal(t, []string{"c11", "c1", "root"}, names(terms))
}

func TestBroader_StartsWithStartTerm(t *testing.T) {
	traversal := NewTraversal(referenceStore(t))

	for _, uri := range []string{"urn:foo:root", "urn:foo:c111", "urn:bar:f1"} {
		terms, err := traversal.Broader(context.Background(), uri)
		require.NoError(t, err)
		require.NotEmpty(t, terms)
		assert.Equal(t, uri, terms[0].URI)
	}
}

func TestBroader_UnknownStartYieldsEmpty(t *testing.T) {
	traversal := NewTraversal(referenceStore(t))

	terms, err := traversal.Broader(context.Background(), "urn:foo:nope")
	require.NoError(t, err)
	assert.Empty(t, terms)
}

func TestBroader_CycleTerminates(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	_, err := store.Upsert(ctx, &model.Term{URI: "urn:a", Scheme: "urn:x", Name: "A", Broader: []string{"urn:b"}})
	require.NoError(t, err)
	_, err = store.Upsert(ctx, &model.Term{URI: "urn:b", Scheme: "urn:x", Name: "B", Broader: []string{"urn:a"}})
	require.NoError(t, err)

	terms, err := NewTraversal(store).Broader(ctx, "urn:a")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(terms))
}

func TestBroader_DanglingReferenceStopsSilently(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	_, err := store.Upsert(ctx, &model.Term{
		URI: "urn:foo:orphan", Scheme: "urn:foo", Name: "orphan",
		Broader: []string{"urn:foo:missing"},
	})
	require.NoError(t, err)

	terms, err := NewTraversal(store).Broader(ctx, "urn:foo:orphan")
	require.NoError(t, err)
	assert.Equal(t, []string{"orphan"}, names(terms))
}

func TestBroader_SelfReferenceEmittedOnce(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	_, err := store.Upsert(ctx, &model.Term{
		URI: "urn:self", Scheme: "urn:x", Name: "self",
		Broader: []string{"urn:self"},
	})
	require.NoError(t, err)

	terms, err := NewTraversal(store).Broader(ctx, "urn:self")
	require.NoError(t, err)
	assert.Equal(t, []string{"self"}, names(terms))
}

func TestNarrower_ReferenceOrder(t *testing.T) {
	traversal := NewTraversal(referenceStore(t))

	terms, err := traversal.Narrower(context.Background(), "urn:foo:root")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c11", "c111", "c12", "f1"}, names(terms))
}

func TestNarrower_OmitsStartTerm(t *testing.T) {
	traversal := NewTraversal(referenceStore(t))

	terms, err := traversal.Narrower(context.Background(), "urn:foo:c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c11", "c111", "c12", "f1"}, names(terms))
	for _, term := range terms {
		assert.NotEqual(t, "urn:foo:c1", term.URI)
	}
}

func TestNarrower_LeafAndUnknownYieldEmpty(t *testing.T) {
	traversal := NewTraversal(referenceStore(t))

	terms, err := traversal.Narrower(context.Background(), "urn:foo:c111")
	require.NoError(t, err)
	assert.Empty(t, terms)

	terms, err = traversal.Narrower(context.Background(), "urn:nope")
	require.NoError(t, err)
	assert.Empty(t, terms)
}

func TestNarrower_CycleTerminates(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	_, err := store.Upsert(ctx, &model.Term{URI: "urn:a", Scheme: "urn:x", Name: "A", Broader: []string{"urn:b"}})
	require.NoError(t, err)
	_, err = store.Upsert(ctx, &model.Term{URI: "urn:b", Scheme: "urn:x", Name: "B", Broader: []string{"urn:a"}})
	require.NoError(t, err)

	terms, err := NewTraversal(store).Narrower(ctx, "urn:a")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, names(terms))
}

func TestSchemes(t *testing.T) {
	traversal := NewTraversal(referenceStore(t))

	counts, err := traversal.Schemes(context.Background())
	require.NoError(t, err)

	got := make(map[string]int)
	for _, sc := range counts {
		got[sc.Scheme] = sc.Count
	}
	assert.Equal(t, map[string]int{"urn:foo": 5, "urn:bar": 1}, got)
}
