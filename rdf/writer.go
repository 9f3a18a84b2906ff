package rdf

import (
	"fmt"
	"sort"
	"strings"
)

// Serialize writes the graph in the given format. Turtle output groups
// triples by subject and abbreviates IRIs with the graph's bindings;
// N-Triples output is one absolute triple per line. Both orderings are
// deterministic so serializing the same graph twice yields identical bytes.
func Serialize(g *Graph, format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return serializeTurtle(g), nil
	case FormatNTriples:
		return serializeNTriples(g), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func serializeTurtle(g *Graph) string {
	var sb strings.Builder

	prefixes := g.Prefixes()
	names := make([]string, 0, len(prefixes))
	for name := range prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", name, prefixes[name]))
	}
	if len(names) > 0 {
		sb.WriteString("\n")
	}

	bySubject := make(map[string][]Triple)
	for _, t := range g.Triples() {
		bySubject[t.Subject] = append(bySubject[t.Subject], t)
	}
	subjects := make([]string, 0, len(bySubject))
	for s := range bySubject {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	for _, subject := range subjects {
		triples := bySubject[subject]
		sb.WriteString(turtleNode(g, subject))
		sb.WriteString("\n")
		for i, t := range triples {
			terminator := " ;"
			if i == len(triples)-1 {
				terminator = " ."
			}
			predicate := g.Compact(t.Predicate)
			if predicate == t.Predicate {
				predicate = "<" + t.Predicate + ">"
			}
			if t.Predicate == RDFType {
				predicate = "a"
			}
			sb.WriteString(fmt.Sprintf("    %s %s%s\n", predicate, turtleObject(g, t.Object), terminator))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func turtleNode(g *Graph, node string) string {
	if strings.HasPrefix(node, "_:") {
		return node
	}
	if compact := g.Compact(node); compact != node {
		return compact
	}
	return "<" + node + ">"
}

func turtleObject(g *Graph, o Object) string {
	switch o.Kind {
	case KindIRI:
		return turtleNode(g, o.Value)
	case KindBlank:
		return o.Value
	default:
		return literalString(o, func(datatype string) string {
			return turtleNode(g, datatype)
		})
	}
}

func serializeNTriples(g *Graph) string {
	lines := make([]string, 0, g.Len())
	for _, t := range g.Triples() {
		lines = append(lines, fmt.Sprintf("%s <%s> %s .", ntriplesNode(t.Subject), t.Predicate, ntriplesObject(t.Object)))
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n") + "\n"
}

func ntriplesNode(node string) string {
	if strings.HasPrefix(node, "_:") {
		return node
	}
	return "<" + node + ">"
}

func ntriplesObject(o Object) string {
	switch o.Kind {
	case KindIRI:
		return "<" + o.Value + ">"
	case KindBlank:
		return o.Value
	default:
		return literalString(o, func(datatype string) string {
			return "<" + datatype + ">"
		})
	}
}

// literalString renders a literal with escaping and any language or
// datatype suffix. formatDatatype renders the datatype reference in the
// target syntax.
func literalString(o Object, formatDatatype func(string) string) string {
	escaped := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"\n", "\\n",
		"\r", "\\r",
		"\t", "\\t",
	).Replace(o.Value)

	s := "\"" + escaped + "\""
	if o.Lang != "" {
		return s + "@" + o.Lang
	}
	if o.Datatype != "" {
		return s + "^^" + formatDatatype(o.Datatype)
	}
	return s
}
