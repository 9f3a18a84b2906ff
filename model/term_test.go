package model

import (
	"reflect"
	"testing"
)

func TestLocalName(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"http://example.org/vocab#soil", "soil"},
		{"http://example.org/vocab/soil", "soil"},
		{"http://example.org/vocab#path/frag", "path/frag"},
		{"urn:example:soil", "urn:example:soil"},
		{"soil", "soil"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := LocalName(tt.uri); got != tt.want {
			t.Errorf("LocalName(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestConceptToTerm(t *testing.T) {
	concept := &Concept{
		URI:        "https://example.org/vocab/v1/rock",
		Name:       "rock",
		Label:      []string{"Rock"},
		Definition: "A solid mineral aggregate.",
		Broader:    []string{"https://example.org/vocab/v1/thing"},
		Vocabulary: "https://example.org/vocab/v1",
		History:    []string{"Added in 0.9"},
	}

	term := concept.ToTerm()

	if term.URI != concept.URI {
		t.Errorf("expected URI %s, got %s", concept.URI, term.URI)
	}
	if term.Scheme != concept.Vocabulary {
		t.Errorf("expected scheme %s, got %s", concept.Vocabulary, term.Scheme)
	}
	if term.Name != "rock" {
		t.Errorf("expected name rock, got %s", term.Name)
	}
	if !reflect.DeepEqual(term.Broader, concept.Broader) {
		t.Errorf("expected broader %v, got %v", concept.Broader, term.Broader)
	}
	if !reflect.DeepEqual(term.Properties["labels"], []string{"Rock"}) {
		t.Errorf("unexpected labels property: %v", term.Properties["labels"])
	}
	if term.Properties["definition"] != "A solid mineral aggregate." {
		t.Errorf("unexpected definition property: %v", term.Properties["definition"])
	}
	if !reflect.DeepEqual(term.Properties["history"], []string{"Added in 0.9"}) {
		t.Errorf("unexpected history property: %v", term.Properties["history"])
	}
	// Empty note fields must not produce keys.
	if _, ok := term.Properties["notes"]; ok {
		t.Error("empty notes should not be carried into properties")
	}
}
