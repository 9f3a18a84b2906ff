// Package rdf provides a small in-memory triple graph with just enough
// machinery for SKOS vocabulary work: Turtle and N-Triples parsing,
// pattern-based triple lookups, namespace bindings with CURIE expansion,
// and serialization back out. It is deliberately not a general RDF engine;
// there is no inference and no SPARQL.
package rdf

import (
	"sort"
	"strings"
)

// ObjectKind distinguishes the three object positions a triple can carry.
type ObjectKind int

const (
	// KindIRI is an absolute IRI object.
	KindIRI ObjectKind = iota
	// KindLiteral is a literal object, optionally tagged with a language
	// or datatype.
	KindLiteral
	// KindBlank is a blank node label.
	KindBlank
)

// Object is the object position of a triple.
type Object struct {
	Value    string
	Kind     ObjectKind
	Lang     string
	Datatype string
}

// IRIObject creates an IRI object.
func IRIObject(iri string) Object {
	return Object{Value: iri, Kind: KindIRI}
}

// LiteralObject creates a plain literal object.
func LiteralObject(value string) Object {
	return Object{Value: value, Kind: KindLiteral}
}

// Triple is one subject-predicate-object statement. Subjects and predicates
// are IRI strings; blank node subjects carry a "_:" prefix.
type Triple struct {
	Subject   string
	Predicate string
	Object    Object
}

// Graph is an in-memory triple set with set semantics (re-adding an
// existing triple is a no-op) and insertion-ordered iteration, so repeated
// loads of the same document leave both content and ordering unchanged.
type Graph struct {
	triples   []Triple
	seen      map[Triple]bool
	bySubject map[string][]int

	prefixes map[string]string
}

// NewGraph creates an empty graph with no namespace bindings.
func NewGraph() *Graph {
	return &Graph{
		seen:      make(map[Triple]bool),
		bySubject: make(map[string][]int),
		prefixes:  make(map[string]string),
	}
}

// Add inserts a triple. Duplicate triples are ignored.
func (g *Graph) Add(t Triple) {
	if g.seen[t] {
		return
	}
	g.seen[t] = true
	g.bySubject[t.Subject] = append(g.bySubject[t.Subject], len(g.triples))
	g.triples = append(g.triples, t)
}

// Merge adds every triple and namespace binding from other into g.
func (g *Graph) Merge(other *Graph) {
	for _, t := range other.triples {
		g.Add(t)
	}
	for prefix, iri := range other.prefixes {
		g.Bind(prefix, iri)
	}
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Triples returns all triples in insertion order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Objects returns the objects of all triples matching the given subject and
// predicate, in insertion order.
func (g *Graph) Objects(subject, predicate string) []Object {
	var out []Object
	for _, i := range g.bySubject[subject] {
		if g.triples[i].Predicate == predicate {
			out = append(out, g.triples[i].Object)
		}
	}
	return out
}

// ObjectValues returns the non-empty object values of triples matching the
// given subject and predicate, whitespace-trimmed, in insertion order.
func (g *Graph) ObjectValues(subject, predicate string) []string {
	var out []string
	for _, o := range g.Objects(subject, predicate) {
		v := strings.TrimSpace(o.Value)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// FirstObjectValue returns the first object value for the subject and
// predicate, or "" when no triple matches.
func (g *Graph) FirstObjectValue(subject, predicate string) string {
	values := g.ObjectValues(subject, predicate)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Subjects returns the distinct subjects of all triples with the given
// predicate and IRI object, sorted ascending.
func (g *Graph) Subjects(predicate, objectIRI string) []string {
	set := make(map[string]bool)
	for _, t := range g.triples {
		if t.Predicate == predicate && t.Object.Kind == KindIRI && t.Object.Value == objectIRI {
			set[t.Subject] = true
		}
	}
	return sortedKeys(set)
}

// SubjectsByType returns the distinct subjects typed rdf:type typeIRI,
// sorted ascending.
func (g *Graph) SubjectsByType(typeIRI string) []string {
	return g.Subjects(RDFType, typeIRI)
}

// Mentions reports whether uri appears anywhere in the graph, as a subject,
// predicate, or IRI object.
func (g *Graph) Mentions(uri string) bool {
	if len(g.bySubject[uri]) > 0 {
		return true
	}
	for _, t := range g.triples {
		if t.Predicate == uri {
			return true
		}
		if t.Object.Kind == KindIRI && t.Object.Value == uri {
			return true
		}
	}
	return false
}

// Bind associates a namespace prefix with an IRI, replacing any previous
// binding for the prefix.
func (g *Graph) Bind(prefix, iri string) {
	g.prefixes[prefix] = iri
}

// Prefixes returns a copy of the current namespace bindings.
func (g *Graph) Prefixes() map[string]string {
	out := make(map[string]string, len(g.prefixes))
	for k, v := range g.prefixes {
		out[k] = v
	}
	return out
}

// Expand resolves a prefixed name ("skos:broader") to a full IRI using the
// graph's bindings. Absolute IRIs and names whose prefix is unbound pass
// through unchanged; expansion never fails.
func (g *Graph) Expand(name string) string {
	if name == "" {
		return name
	}
	if strings.Contains(name, "://") || strings.HasPrefix(name, "urn:") || strings.HasPrefix(name, "_:") {
		return name
	}
	prefix, local, ok := strings.Cut(name, ":")
	if !ok {
		return name
	}
	base, bound := g.prefixes[prefix]
	if !bound {
		return name
	}
	return base + local
}

// Compact abbreviates an IRI to a prefixed name when a binding covers it;
// otherwise the IRI is returned unchanged. The longest matching namespace
// wins.
func (g *Graph) Compact(iri string) string {
	bestPrefix, bestLen := "", 0
	for prefix, base := range g.prefixes {
		if strings.HasPrefix(iri, base) && len(base) > bestLen {
			bestPrefix, bestLen = prefix, len(base)
		}
	}
	if bestLen == 0 || bestLen == len(iri) {
		return iri
	}
	return bestPrefix + ":" + iri[bestLen:]
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
