package model

// Concept is the transient record extracted for a single SKOS concept from
// a loaded vocabulary graph. It is never persisted directly; the ingestion
// pipeline reduces it to a Term.
type Concept struct {
	// URI is the concept's expanded (absolute) identifier.
	URI string `json:"uri"`

	// Name is the last path or fragment segment of the URI.
	Name string `json:"name"`

	// Label collects skos:prefLabel, skos:altLabel and rdfs:label values,
	// in that order.
	Label []string `json:"label,omitempty"`

	// Definition joins all skos:definition values with newlines.
	Definition string `json:"definition,omitempty"`

	// Broader lists the direct skos:broader target URIs.
	Broader []string `json:"broader,omitempty"`

	// Narrower lists concepts whose skos:broader points at this one,
	// resolved by reverse lookup.
	Narrower []string `json:"narrower,omitempty"`

	// Vocabulary is the concept scheme this concept belongs to, taken
	// from skos:inScheme or, failing that, skos:topConceptOf. Empty when
	// the source declares neither.
	Vocabulary string `json:"vocabulary,omitempty"`

	// Note-like predicates carried through to Term properties. Graph
	// logic never reads them.
	History    []string `json:"history,omitempty"`
	Notes      []string `json:"notes,omitempty"`
	ScopeNote  []string `json:"scope_note,omitempty"`
	Related    []string `json:"related,omitempty"`
	Example    []string `json:"example,omitempty"`
	ChangeNote []string `json:"change_note,omitempty"`
}

// ToTerm reduces a Concept to its persisted Term form. Labels and the
// definition always land in Properties; note fields are included only when
// present so unrelated vocabularies don't accumulate empty keys.
func (c *Concept) ToTerm() *Term {
	props := map[string]any{
		"labels":     c.Label,
		"definition": c.Definition,
	}
	if len(c.History) > 0 {
		props["history"] = c.History
	}
	if len(c.Notes) > 0 {
		props["notes"] = c.Notes
	}
	if len(c.ScopeNote) > 0 {
		props["scope_note"] = c.ScopeNote
	}
	if len(c.Related) > 0 {
		props["related"] = c.Related
	}
	if len(c.Example) > 0 {
		props["example"] = c.Example
	}
	if len(c.ChangeNote) > 0 {
		props["change_note"] = c.ChangeNote
	}

	return &Term{
		URI:        c.URI,
		Scheme:     c.Vocabulary,
		Name:       c.Name,
		Broader:    c.Broader,
		Properties: props,
	}
}
