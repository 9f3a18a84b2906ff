// Package skos reads SKOS vocabularies from a triple graph. A Session owns
// the cumulative working graph across loads and resolves typed Concept
// records through a fixed set of SKOS predicate lookups; it performs no
// general RDF reasoning.
package skos

import "errors"

// Namespace is the SKOS core namespace.
const Namespace = "http://www.w3.org/2004/02/skos/core#"

// SKOS (Simple Knowledge Organization System) IRIs this reader queries.
//
// Reference: https://www.w3.org/TR/skos-reference/
const (
	// ConceptType marks a resource as a skos:Concept.
	ConceptType = Namespace + "Concept"

	// ConceptSchemeType marks a resource as a skos:ConceptScheme,
	// identifying the vocabulary itself.
	ConceptSchemeType = Namespace + "ConceptScheme"

	// PrefLabel provides the preferred lexical label for a resource.
	PrefLabel = Namespace + "prefLabel"

	// AltLabel provides an alternative lexical label for a resource.
	AltLabel = Namespace + "altLabel"

	// Definition supplies a complete explanation of a concept's meaning.
	Definition = Namespace + "definition"

	// Broader links a concept to a more general one.
	Broader = Namespace + "broader"

	// Narrower links a concept to a more specific one. Vocabularies in
	// the wild rarely declare it; the reader derives narrower links by
	// reverse Broader lookup instead.
	Narrower = Namespace + "narrower"

	// InScheme links a concept to the scheme it belongs to.
	InScheme = Namespace + "inScheme"

	// TopConceptOf links a top-level concept to its scheme. Consulted
	// only when InScheme is absent.
	TopConceptOf = Namespace + "topConceptOf"

	// Note predicates carried through to term properties.
	Note        = Namespace + "note"
	HistoryNote = Namespace + "historyNote"
	ScopeNote   = Namespace + "scopeNote"
	ChangeNote  = Namespace + "changeNote"
	Example     = Namespace + "example"
	Related     = Namespace + "related"
)

// ErrNotFound is returned when a URI appears in no triple of the working
// graph at all. A URI that is mentioned but carries no SKOS properties is
// still considered present.
var ErrNotFound = errors.New("concept not found")

// ErrClosed is returned when a session is used after Close.
var ErrClosed = errors.New("session closed")
