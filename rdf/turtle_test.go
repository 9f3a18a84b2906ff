package rdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTurtle = `# A small SKOS vocabulary.
@prefix skos: <http://www.w3.org/2004/02/skos/core#> .
@prefix ex: <https://example.org/vocab/> .

<https://example.org/vocab/v1> a skos:ConceptScheme ;
    skos:prefLabel "Vocabulary One"@en .

ex:thing a skos:Concept ;
    skos:prefLabel "Thing"@en ;
    skos:altLabel "Item", "Object" ;
    skos:definition "Any material thing." ;
    skos:topConceptOf <https://example.org/vocab/v1> .

ex:rock a skos:Concept ;
    skos:prefLabel "Rock" ;
    skos:broader ex:thing ;
    skos:inScheme <https://example.org/vocab/v1> .
`

func TestParseTurtle_Sample(t *testing.T) {
	g, err := Parse([]byte(sampleTurtle), FormatTurtle)
	require.NoError(t, err)

	schemes := g.SubjectsByType("http://www.w3.org/2004/02/skos/core#ConceptScheme")
	assert.Equal(t, []string{"https://example.org/vocab/v1"}, schemes)

	concepts := g.SubjectsByType("http://www.w3.org/2004/02/skos/core#Concept")
	assert.Equal(t, []string{"https://example.org/vocab/rock", "https://example.org/vocab/thing"}, concepts)

	labels := g.ObjectValues("https://example.org/vocab/thing", "http://www.w3.org/2004/02/skos/core#altLabel")
	assert.Equal(t, []string{"Item", "Object"}, labels)

	broader := g.ObjectValues("https://example.org/vocab/rock", "http://www.w3.org/2004/02/skos/core#broader")
	assert.Equal(t, []string{"https://example.org/vocab/thing"}, broader)
}

func TestParseTurtle_LanguageTagsAndDatatypes(t *testing.T) {
	src := `@prefix ex: <urn:ex:> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
ex:s ex:label "hello"@en ;
    ex:count "42"^^xsd:integer ;
    ex:weight 3.25 ;
    ex:active true .
`
	g, err := Parse([]byte(src), FormatTurtle)
	require.NoError(t, err)

	label := g.Objects("urn:ex:s", "urn:ex:label")
	require.Len(t, label, 1)
	assert.Equal(t, "hello", label[0].Value)
	assert.Equal(t, "en", label[0].Lang)

	count := g.Objects("urn:ex:s", "urn:ex:count")
	require.Len(t, count, 1)
	assert.Equal(t, XSDNamespace+"integer", count[0].Datatype)

	weight := g.Objects("urn:ex:s", "urn:ex:weight")
	require.Len(t, weight, 1)
	assert.Equal(t, "3.25", weight[0].Value)
	assert.Equal(t, XSDNamespace+"decimal", weight[0].Datatype)

	active := g.Objects("urn:ex:s", "urn:ex:active")
	require.Len(t, active, 1)
	assert.Equal(t, "true", active[0].Value)
}

func TestParseTurtle_LongLiteralAndEscapes(t *testing.T) {
	src := "@prefix ex: <urn:ex:> .\n" +
		"ex:s ex:note \"\"\"line one\nline two\"\"\" ;\n" +
		"    ex:quoted \"say \\\"hi\\\"\\n\" .\n"
	g, err := Parse([]byte(src), FormatTurtle)
	require.NoError(t, err)

	note := g.FirstObjectValue("urn:ex:s", "urn:ex:note")
	assert.Equal(t, "line one\nline two", note)

	quoted := g.Objects("urn:ex:s", "urn:ex:quoted")
	require.Len(t, quoted, 1)
	assert.Equal(t, "say \"hi\"\n", quoted[0].Value)
}

func TestParseTurtle_UnicodeEscapes(t *testing.T) {
	src := "@prefix ex: <urn:ex:> .\n" +
		"ex:s ex:short \"caf\\u00E9\" ;\n" +
		"    ex:long \"\\U0001F600\" ;\n" +
		"    ex:iri <urn:ex:caf\\u00E9> .\n"
	g, err := Parse([]byte(src), FormatTurtle)
	require.NoError(t, err)

	assert.Equal(t, "café", g.FirstObjectValue("urn:ex:s", "urn:ex:short"))
	assert.Equal(t, "😀", g.FirstObjectValue("urn:ex:s", "urn:ex:long"))

	iri := g.Objects("urn:ex:s", "urn:ex:iri")
	require.Len(t, iri, 1)
	assert.Equal(t, "urn:ex:café", iri[0].Value)

	for name, bad := range map[string]string{
		"non-hex digit": `<urn:s> <urn:p> "caf\u00G9" .`,
		"truncated":     `<urn:s> <urn:p> "\u00` + `" .`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(bad), FormatTurtle)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParseTurtle_BlankNodesAndCollections(t *testing.T) {
	src := `@prefix ex: <urn:ex:> .
ex:s ex:anon [ ex:inner "v" ] ;
    ex:list ( ex:a ex:b ) .
`
	g, err := Parse([]byte(src), FormatTurtle)
	require.NoError(t, err)

	anon := g.Objects("urn:ex:s", "urn:ex:anon")
	require.Len(t, anon, 1)
	assert.Equal(t, KindBlank, anon[0].Kind)
	assert.Equal(t, "v", g.FirstObjectValue(anon[0].Value, "urn:ex:inner"))

	list := g.Objects("urn:ex:s", "urn:ex:list")
	require.Len(t, list, 1)
	head := list[0].Value
	first := g.Objects(head, RDFFirst)
	require.Len(t, first, 1)
	assert.Equal(t, "urn:ex:a", first[0].Value)

	rest := g.Objects(head, RDFRest)
	require.Len(t, rest, 1)
	second := g.Objects(rest[0].Value, RDFFirst)
	require.Len(t, second, 1)
	assert.Equal(t, "urn:ex:b", second[0].Value)
	tail := g.Objects(rest[0].Value, RDFRest)
	require.Len(t, tail, 1)
	assert.Equal(t, RDFNil, tail[0].Value)
}

func TestParseTurtle_BaseResolution(t *testing.T) {
	src := `@base <https://example.org/vocab> .
@prefix skos: <http://www.w3.org/2004/02/skos/core#> .
<soil> a skos:Concept .
`
	g, err := Parse([]byte(src), FormatTurtle)
	require.NoError(t, err)

	concepts := g.SubjectsByType("http://www.w3.org/2004/02/skos/core#Concept")
	assert.Equal(t, []string{"https://example.org/vocab/soil"}, concepts)
}

func TestParseTurtle_SparqlStyleDirectives(t *testing.T) {
	src := `PREFIX ex: <urn:ex:>
ex:s ex:p ex:o .
`
	g, err := Parse([]byte(src), FormatTurtle)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
}

func TestParseTurtle_Errors(t *testing.T) {
	cases := map[string]string{
		"unbound prefix":      `nope:s nope:p nope:o .`,
		"unterminated string": `<urn:s> <urn:p> "never closed .`,
		"unterminated iri":    `<urn:s> <urn:p> <urn:o .`,
		"missing dot":         `<urn:s> <urn:p> <urn:o>`,
		"dangling predicate":  `<urn:s> <urn:p> .`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src), FormatTurtle)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParseNTriples(t *testing.T) {
	src := `# comment
<urn:ex:s> <urn:ex:p> <urn:ex:o> .

<urn:ex:s> <urn:ex:label> "hello"@en .
`
	g, err := Parse([]byte(src), FormatNTriples)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []string{"hello"}, g.ObjectValues("urn:ex:s", "urn:ex:label"))
}

func TestParseNTriples_Errors(t *testing.T) {
	_, err := Parse([]byte(`<urn:s> <urn:p>`), FormatNTriples)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseNTriples_RejectsTurtleConstructs(t *testing.T) {
	cases := map[string]string{
		"a keyword":           `<urn:s> a <urn:T> .`,
		"prefixed subject":    `ex:s <urn:p> <urn:o> .`,
		"prefixed predicate":  `<urn:s> ex:p <urn:o> .`,
		"blank property list": `<urn:s> <urn:p> [ <urn:q> "v" ] .`,
		"collection":          `<urn:s> <urn:p> ( <urn:a> <urn:b> ) .`,
		"bare boolean":        `<urn:s> <urn:p> true .`,
		"bare number":         `<urn:s> <urn:p> 42 .`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src), FormatNTriples)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, alias := range []string{"turtle", "ttl", ".ttl", "text/turtle", "TURTLE"} {
		format, err := ParseFormat(alias)
		require.NoError(t, err)
		assert.Equal(t, FormatTurtle, format)
	}
	for _, alias := range []string{"ntriples", "nt", ".nt", "application/n-triples"} {
		format, err := ParseFormat(alias)
		require.NoError(t, err)
		assert.Equal(t, FormatNTriples, format)
	}
	_, err := ParseFormat("rdfxml")
	assert.Error(t, err)
}

func TestSerialize_RoundTrip(t *testing.T) {
	original, err := Parse([]byte(sampleTurtle), FormatTurtle)
	require.NoError(t, err)

	for _, format := range []Format{FormatTurtle, FormatNTriples} {
		out, err := Serialize(original, format)
		require.NoError(t, err)

		reparsed, err := Parse([]byte(out), format)
		require.NoError(t, err, "reparse %s output:\n%s", format, out)
		assert.Equal(t, original.Len(), reparsed.Len(), "%s round trip changed triple count", format)

		for _, triple := range original.Triples() {
			values := reparsed.Objects(triple.Subject, triple.Predicate)
			assert.NotEmpty(t, values, "lost triple %v in %s round trip", triple, format)
		}
	}
}

func TestSerialize_Deterministic(t *testing.T) {
	g, err := Parse([]byte(sampleTurtle), FormatTurtle)
	require.NoError(t, err)

	first, err := Serialize(g, FormatTurtle)
	require.NoError(t, err)
	second, err := Serialize(g, FormatTurtle)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "@prefix"))
}
