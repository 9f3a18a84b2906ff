// Package model defines the term graph data model: persisted Term vertices
// and the transient Concept records produced by vocabulary ingestion.
package model

import "strings"

// Term is a persisted vocabulary term. Terms form a directed graph through
// their Broader links; links are plain URI strings, not enforced foreign
// keys, so dangling references and cycles are legal graph conditions.
type Term struct {
	// URI identifies the term. Unique across all terms.
	URI string `json:"uri"`

	// Scheme is the vocabulary this term belongs to. A term's broader
	// links may cross into other schemes; that is how one vocabulary
	// extends another.
	Scheme string `json:"scheme"`

	// Name is the local display name, the last path or fragment segment
	// of the URI.
	Name string `json:"name"`

	// Broader lists the URIs of this term's parent terms, in the order
	// they were declared.
	Broader []string `json:"broader,omitempty"`

	// Properties carries opaque metadata (labels, definitions, notes).
	// Graph traversal never interprets it.
	Properties map[string]any `json:"properties,omitempty"`
}

// LocalName returns the last fragment or path segment of a URI. For
// "http://example.org/vocab#soil" and "http://example.org/vocab/soil"
// it returns "soil".
func LocalName(uri string) string {
	if i := strings.LastIndex(uri, "#"); i >= 0 {
		return uri[i+1:]
	}
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

// SchemeCount is one row of the per-scheme term aggregate.
type SchemeCount struct {
	Scheme string `json:"scheme"`
	Count  int    `json:"count"`
}
