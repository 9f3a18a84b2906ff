package rdf

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// RDFNil terminates RDF collections.
const (
	RDFFirst = RDFNamespace + "first"
	RDFRest  = RDFNamespace + "rest"
	RDFNil   = RDFNamespace + "nil"
)

// parseTurtle parses a Turtle document into g. The subset covers what SKOS
// vocabularies in the wild actually use: prefix and base directives (both
// Turtle and SPARQL spellings), predicate-object and object lists, the `a`
// keyword, quoted and long-quoted literals with language tags and datatypes,
// numeric and boolean literals, blank node labels, anonymous blank nodes
// with property lists, and collections.
func parseTurtle(g *Graph, src string) error {
	p := &turtleParser{g: g, src: src, line: 1, prefixes: g.Prefixes()}
	return p.parse()
}

type turtleParser struct {
	g    *Graph
	src  string
	pos  int
	line int

	base     string
	prefixes map[string]string
}

func (p *turtleParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrParse, p.line, fmt.Sprintf(format, args...))
}

func (p *turtleParser) parse() error {
	for {
		p.skipWhitespace()
		if p.eof() {
			return nil
		}
		if err := p.parseStatement(); err != nil {
			return err
		}
	}
}

func (p *turtleParser) parseStatement() error {
	if p.hasKeyword("@prefix") || p.hasKeyword("PREFIX") {
		return p.parsePrefixDirective()
	}
	if p.hasKeyword("@base") || p.hasKeyword("BASE") {
		return p.parseBaseDirective()
	}

	subject, err := p.parseSubject()
	if err != nil {
		return err
	}
	p.skipWhitespace()
	// A blank property list may stand alone as a whole statement.
	if !p.hasPrefix(".") {
		if err := p.parsePredicateObjectList(subject); err != nil {
			return err
		}
		p.skipWhitespace()
	}
	if !p.consume('.') {
		return p.errorf("expected '.' after statement")
	}
	return nil
}

func (p *turtleParser) parsePrefixDirective() error {
	turtleStyle := p.hasKeyword("@prefix")
	p.consumeKeyword()

	p.skipWhitespace()
	name, err := p.readUntil(':')
	if err != nil {
		return p.errorf("malformed prefix name")
	}

	p.skipWhitespace()
	if !p.hasPrefix("<") {
		return p.errorf("expected IRI in prefix directive")
	}
	iri, err := p.parseIRIRef()
	if err != nil {
		return err
	}

	p.prefixes[name] = iri
	p.g.Bind(name, iri)

	if turtleStyle {
		p.skipWhitespace()
		if !p.consume('.') {
			return p.errorf("expected '.' after @prefix directive")
		}
	}
	return nil
}

func (p *turtleParser) parseBaseDirective() error {
	turtleStyle := p.hasKeyword("@base")
	p.consumeKeyword()

	p.skipWhitespace()
	if !p.hasPrefix("<") {
		return p.errorf("expected IRI in base directive")
	}
	iri, err := p.parseIRIRef()
	if err != nil {
		return err
	}
	p.base = iri

	if turtleStyle {
		p.skipWhitespace()
		if !p.consume('.') {
			return p.errorf("expected '.' after @base directive")
		}
	}
	return nil
}

func (p *turtleParser) parseSubject() (string, error) {
	p.skipWhitespace()
	switch {
	case p.hasPrefix("<"):
		return p.parseIRIRef()
	case p.hasPrefix("_:"):
		return p.parseBlankLabel()
	case p.hasPrefix("["):
		return p.parseBlankPropertyList()
	default:
		return p.parsePrefixedName()
	}
}

// parsePredicateObjectList parses `p1 o1, o2 ; p2 o3 ; ...` for a subject.
func (p *turtleParser) parsePredicateObjectList(subject string) error {
	for {
		p.skipWhitespace()

		predicate, err := p.parsePredicate()
		if err != nil {
			return err
		}

		for {
			object, err := p.parseObject()
			if err != nil {
				return err
			}
			p.g.Add(Triple{Subject: subject, Predicate: predicate, Object: object})

			p.skipWhitespace()
			if !p.consume(',') {
				break
			}
		}

		p.skipWhitespace()
		if !p.consume(';') {
			return nil
		}
		// Trailing ';' before '.' or ']' is legal.
		p.skipWhitespace()
		if p.eof() || p.hasPrefix(".") || p.hasPrefix("]") {
			return nil
		}
	}
}

func (p *turtleParser) parsePredicate() (string, error) {
	p.skipWhitespace()
	if p.hasKeyword("a") {
		p.consumeKeyword()
		return RDFType, nil
	}
	if p.hasPrefix("<") {
		return p.parseIRIRef()
	}
	return p.parsePrefixedName()
}

func (p *turtleParser) parseObject() (Object, error) {
	p.skipWhitespace()
	switch {
	case p.hasPrefix("<"):
		iri, err := p.parseIRIRef()
		if err != nil {
			return Object{}, err
		}
		return IRIObject(iri), nil
	case p.hasPrefix("\"") || p.hasPrefix("'"):
		return p.parseLiteral()
	case p.hasPrefix("_:"):
		label, err := p.parseBlankLabel()
		if err != nil {
			return Object{}, err
		}
		return Object{Value: label, Kind: KindBlank}, nil
	case p.hasPrefix("["):
		label, err := p.parseBlankPropertyList()
		if err != nil {
			return Object{}, err
		}
		return Object{Value: label, Kind: KindBlank}, nil
	case p.hasPrefix("("):
		return p.parseCollection()
	case p.hasKeyword("true"), p.hasKeyword("false"):
		word := p.consumeKeyword()
		return Object{Value: word, Kind: KindLiteral, Datatype: XSDNamespace + "boolean"}, nil
	default:
		if p.startsNumber() {
			return p.parseNumber()
		}
		iri, err := p.parsePrefixedName()
		if err != nil {
			return Object{}, err
		}
		return IRIObject(iri), nil
	}
}

// parseBlankPropertyList parses `[ p o ; ... ]`, assigning the anonymous
// node a fresh label, and returns that label.
func (p *turtleParser) parseBlankPropertyList() (string, error) {
	p.consume('[')
	label := "_:b" + uuid.New().String()

	p.skipWhitespace()
	if p.consume(']') {
		return label, nil
	}
	if err := p.parsePredicateObjectList(label); err != nil {
		return "", err
	}
	p.skipWhitespace()
	if !p.consume(']') {
		return "", p.errorf("expected ']' closing blank node")
	}
	return label, nil
}

// parseCollection parses `( o1 o2 ... )` into an rdf:first/rdf:rest chain
// and returns the head node.
func (p *turtleParser) parseCollection() (Object, error) {
	p.consume('(')

	var items []Object
	for {
		p.skipWhitespace()
		if p.consume(')') {
			break
		}
		if p.eof() {
			return Object{}, p.errorf("unterminated collection")
		}
		item, err := p.parseObject()
		if err != nil {
			return Object{}, err
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return IRIObject(RDFNil), nil
	}

	head := "_:b" + uuid.New().String()
	node := head
	for i, item := range items {
		p.g.Add(Triple{Subject: node, Predicate: RDFFirst, Object: item})
		if i == len(items)-1 {
			p.g.Add(Triple{Subject: node, Predicate: RDFRest, Object: IRIObject(RDFNil)})
			break
		}
		next := "_:b" + uuid.New().String()
		p.g.Add(Triple{Subject: node, Predicate: RDFRest, Object: Object{Value: next, Kind: KindBlank}})
		node = next
	}
	return Object{Value: head, Kind: KindBlank}, nil
}

func (p *turtleParser) parseIRIRef() (string, error) {
	p.consume('<')
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated IRI")
		}
		c := p.src[p.pos]
		if c == '>' {
			p.pos++
			break
		}
		if c == '\n' {
			return "", p.errorf("newline in IRI")
		}
		if c == '\\' {
			r, err := p.readEscape()
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
			continue
		}
		sb.WriteByte(c)
		p.pos++
	}
	return p.resolveIRI(sb.String()), nil
}

// resolveIRI resolves a (possibly relative) IRI against the current base.
func (p *turtleParser) resolveIRI(iri string) string {
	if p.base == "" || strings.Contains(iri, "://") || strings.HasPrefix(iri, "urn:") {
		return iri
	}
	if strings.HasPrefix(iri, "#") {
		return strings.TrimSuffix(p.base, "#") + iri
	}
	return strings.TrimSuffix(p.base, "/") + "/" + strings.TrimPrefix(iri, "/")
}

func (p *turtleParser) parseBlankLabel() (string, error) {
	p.pos += 2 // "_:"
	start := p.pos
	for !p.eof() && isPNameChar(rune(p.src[p.pos])) {
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("empty blank node label")
	}
	return "_:" + p.src[start:p.pos], nil
}

func (p *turtleParser) parsePrefixedName() (string, error) {
	start := p.pos
	for !p.eof() {
		c := rune(p.src[p.pos])
		if c == ':' || isPNameChar(c) || c == '.' && p.pos+1 < len(p.src) && isPNameChar(rune(p.src[p.pos+1])) {
			p.pos++
			continue
		}
		break
	}
	name := p.src[start:p.pos]
	if name == "" {
		return "", p.errorf("expected IRI or prefixed name")
	}
	prefix, local, ok := strings.Cut(name, ":")
	if !ok {
		return "", p.errorf("malformed prefixed name %q", name)
	}
	base, bound := p.prefixes[prefix]
	if !bound {
		return "", p.errorf("unbound prefix %q", prefix)
	}
	return base + local, nil
}

func (p *turtleParser) parseLiteral() (Object, error) {
	value, err := p.parseQuotedString()
	if err != nil {
		return Object{}, err
	}

	obj := Object{Value: value, Kind: KindLiteral}
	switch {
	case p.hasPrefix("@"):
		p.pos++
		start := p.pos
		for !p.eof() && (isAlphaNum(rune(p.src[p.pos])) || p.src[p.pos] == '-') {
			p.pos++
		}
		obj.Lang = p.src[start:p.pos]
	case p.hasPrefix("^^"):
		p.pos += 2
		var datatype string
		if p.hasPrefix("<") {
			datatype, err = p.parseIRIRef()
		} else {
			datatype, err = p.parsePrefixedName()
		}
		if err != nil {
			return Object{}, err
		}
		obj.Datatype = datatype
	}
	return obj, nil
}

func (p *turtleParser) parseQuotedString() (string, error) {
	quote := p.src[p.pos]
	long := p.hasPrefix(string([]byte{quote, quote, quote}))
	if long {
		p.pos += 3
	} else {
		p.pos++
	}

	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated string literal")
		}
		c := p.src[p.pos]
		if c == quote {
			if !long {
				p.pos++
				return sb.String(), nil
			}
			if p.hasPrefix(string([]byte{quote, quote, quote})) {
				p.pos += 3
				return sb.String(), nil
			}
		}
		if c == '\n' {
			if !long {
				return "", p.errorf("newline in string literal")
			}
			p.line++
		}
		if c == '\\' {
			r, err := p.readEscape()
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
			continue
		}
		sb.WriteByte(c)
		p.pos++
	}
}

// readEscape decodes a backslash escape starting at p.pos.
func (p *turtleParser) readEscape() (rune, error) {
	p.pos++ // backslash
	if p.eof() {
		return 0, p.errorf("dangling escape")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case '"':
		return '"', nil
	case '\'':
		return '\'', nil
	case '\\':
		return '\\', nil
	case 'u', 'U':
		width := 4
		if c == 'U' {
			width = 8
		}
		if p.pos+width > len(p.src) {
			return 0, p.errorf("truncated unicode escape")
		}
		var r rune
		for i := 0; i < width; i++ {
			d := hexValue(p.src[p.pos+i])
			if d < 0 {
				return 0, p.errorf("invalid unicode escape")
			}
			r = r<<4 | rune(d)
		}
		p.pos += width
		if !utf8.ValidRune(r) {
			return 0, p.errorf("invalid unicode code point")
		}
		return r, nil
	default:
		return 0, p.errorf("unknown escape \\%c", c)
	}
}

// hexValue returns the numeric value of a hex digit byte, or -1 for
// anything else.
func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

func (p *turtleParser) startsNumber() bool {
	if p.eof() {
		return false
	}
	c := p.src[p.pos]
	return c >= '0' && c <= '9' || (c == '+' || c == '-') && p.pos+1 < len(p.src) && p.src[p.pos+1] >= '0' && p.src[p.pos+1] <= '9'
}

func (p *turtleParser) parseNumber() (Object, error) {
	start := p.pos
	if p.src[p.pos] == '+' || p.src[p.pos] == '-' {
		p.pos++
	}
	decimal := false
	for !p.eof() {
		c := p.src[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		// A '.' is part of the number only when digits follow; otherwise
		// it terminates the statement.
		if c == '.' && p.pos+1 < len(p.src) && p.src[p.pos+1] >= '0' && p.src[p.pos+1] <= '9' {
			decimal = true
			p.pos++
			continue
		}
		break
	}
	datatype := XSDNamespace + "integer"
	if decimal {
		datatype = XSDNamespace + "decimal"
	}
	return Object{Value: p.src[start:p.pos], Kind: KindLiteral, Datatype: datatype}, nil
}

// Scanner helpers.

func (p *turtleParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *turtleParser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

// hasKeyword reports whether the input continues with the given word
// followed by a non-name character.
func (p *turtleParser) hasKeyword(word string) bool {
	if !p.hasPrefix(word) {
		return false
	}
	rest := p.src[p.pos+len(word):]
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return !isPNameChar(r) && r != ':'
}

// consumeKeyword consumes the word at the cursor and returns it.
func (p *turtleParser) consumeKeyword() string {
	start := p.pos
	for !p.eof() {
		c := rune(p.src[p.pos])
		if c == '@' || isPNameChar(c) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *turtleParser) consume(c byte) bool {
	if !p.eof() && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *turtleParser) readUntil(c byte) (string, error) {
	start := p.pos
	for !p.eof() {
		if p.src[p.pos] == c {
			s := p.src[start:p.pos]
			p.pos++
			return s, nil
		}
		p.pos++
	}
	return "", fmt.Errorf("%w: unexpected end of input", ErrParse)
}

func (p *turtleParser) skipWhitespace() {
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == '\n':
			p.line++
			p.pos++
		case c == ' ' || c == '\t' || c == '\r':
			p.pos++
		case c == '#':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func isPNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '%'
}

func isAlphaNum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
