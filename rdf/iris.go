package rdf

// Core RDF and RDFS IRIs used by the parser and the vocabulary layer.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"

	// RDFType asserts the class of a resource.
	RDFType = RDFNamespace + "type"

	// RDFSLabel provides a human-readable name for a resource.
	RDFSLabel = RDFSNamespace + "label"

	// RDFSSubPropertyOf relates a property to a more general one. The
	// ingestion pipeline also records vocabulary extension edges with it,
	// mirroring how the vocabularies themselves declare extension.
	RDFSSubPropertyOf = RDFSNamespace + "subPropertyOf"
)

// defaultPrefixes returns the namespace bindings every new parse starts
// with. Sources may override them with their own @prefix directives.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":  RDFNamespace,
		"rdfs": RDFSNamespace,
		"owl":  OWLNamespace,
		"xsd":  XSDNamespace,
		"skos": "http://www.w3.org/2004/02/skos/core#",
	}
}
