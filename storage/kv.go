package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/termgraph/model"
)

// BucketTerms is the KV bucket holding term records.
const BucketTerms = "TERMGRAPH_TERMS"

// KVStore is a TermStore backed by NATS JetStream KV. Term URIs contain
// characters that are illegal in KV keys, so each term is stored under the
// hex SHA-256 of its URI; the URI itself lives inside the JSON record.
//
// ChildrenOf and SchemeCounts scan the bucket. That is acceptable at
// controlled-vocabulary scale (thousands of terms, not millions); a backend
// with secondary indexes can replace this one behind the TermStore contract.
type KVStore struct {
	terms jetstream.KeyValue
}

// NewKVStore creates a KVStore, creating the terms bucket if needed.
func NewKVStore(ctx context.Context, js jetstream.JetStream) (*KVStore, error) {
	terms, err := getOrCreateBucket(ctx, js, BucketTerms)
	if err != nil {
		return nil, fmt.Errorf("create terms bucket: %w", err)
	}
	return &KVStore{terms: terms}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "Termgraph vocabulary term storage",
		History:     5, // Keep last 5 revisions
	})
}

// termKey maps a URI to a KV-safe key.
func termKey(uri string) string {
	sum := sha256.Sum256([]byte(uri))
	return hex.EncodeToString(sum[:])
}

// Upsert inserts or replaces the term keyed by its URI.
func (s *KVStore) Upsert(ctx context.Context, term *model.Term) (string, error) {
	if term == nil || strings.TrimSpace(term.URI) == "" {
		return "", ErrInvalidTerm
	}

	data, err := json.Marshal(term)
	if err != nil {
		return "", fmt.Errorf("marshal term: %w", err)
	}

	if _, err := s.terms.Put(ctx, termKey(term.URI), data); err != nil {
		return "", fmt.Errorf("store term: %w", err)
	}
	return term.URI, nil
}

// Get retrieves the term with the given URI, or ErrNotFound.
func (s *KVStore) Get(ctx context.Context, uri string) (*model.Term, error) {
	entry, err := s.terms.Get(ctx, termKey(uri))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get term: %w", err)
	}

	var term model.Term
	if err := json.Unmarshal(entry.Value(), &term); err != nil {
		return nil, fmt.Errorf("unmarshal term: %w", err)
	}
	return &term, nil
}

// ChildrenOf returns every term whose broader list contains uri, ordered
// ascending by URI.
func (s *KVStore) ChildrenOf(ctx context.Context, uri string) ([]*model.Term, error) {
	var children []*model.Term
	err := s.scan(ctx, func(term *model.Term) {
		if slices.Contains(term.Broader, uri) {
			children = append(children, term)
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].URI < children[j].URI
	})
	return children, nil
}

// SchemeCounts returns the number of terms per scheme.
func (s *KVStore) SchemeCounts(ctx context.Context) ([]model.SchemeCount, error) {
	counts := make(map[string]int)
	err := s.scan(ctx, func(term *model.Term) {
		counts[term.Scheme]++
	})
	if err != nil {
		return nil, err
	}

	result := make([]model.SchemeCount, 0, len(counts))
	for scheme, count := range counts {
		result = append(result, model.SchemeCount{Scheme: scheme, Count: count})
	}
	return result, nil
}

// scan visits every stored term. Entries that fail to load or decode are
// skipped, matching the tolerance of the rest of the graph layer.
func (s *KVStore) scan(ctx context.Context, visit func(*model.Term)) error {
	keys, err := s.terms.Keys(ctx)
	if err != nil {
		if err == jetstream.ErrNoKeysFound {
			return nil
		}
		return fmt.Errorf("list term keys: %w", err)
	}

	for _, key := range keys {
		entry, err := s.terms.Get(ctx, key)
		if err != nil {
			continue
		}
		var term model.Term
		if err := json.Unmarshal(entry.Value(), &term); err != nil {
			continue
		}
		visit(&term)
	}
	return nil
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "key not found")
}
