package ontology

import (
	"bufio"
	"io"
	"strings"
)

const (
	initialTermCapacity = 4096
	scannerBufferSize   = 1 << 20 // 1 MB
)

// internPool avoids duplicate string allocations for repeated values.
type internPool struct {
	m map[string]string
}

func newInternPool() *internPool {
	return &internPool{m: make(map[string]string, 64)}
}

func (p *internPool) get(s string) string {
	if v, ok := p.m[s]; ok {
		return v
	}
	p.m[s] = s
	return s
}

// ParseOBO parses an OBO 1.2/1.4 ontology (go-basic.obo, SBO_OBO.obo,
// chebi.obo) from the given reader. Only [Term] stanzas are kept.
func ParseOBO(r io.Reader) (*Ontology, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, scannerBufferSize), scannerBufferSize)

	ont := &Ontology{
		Terms: make([]Term, 0, initialTermCapacity),
	}
	pool := newInternPool()

	// Header runs until the first stanza.
	inHeader := true
	for inHeader && scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			continue
		case line == "[Term]":
			ont.Terms = appendTerm(ont.Terms, parseTerm(scanner, pool))
			inHeader = false
		case line[0] == '[':
			inHeader = false
		default:
			parseHeaderLine(ont, line)
		}
	}

	for scanner.Scan() {
		if scanner.Text() == "[Term]" {
			ont.Terms = appendTerm(ont.Terms, parseTerm(scanner, pool))
		}
	}

	return ont, scanner.Err()
}

func appendTerm(terms []Term, t Term) []Term {
	if t.ID == "" {
		return terms
	}
	return append(terms, t)
}

func parseHeaderLine(ont *Ontology, line string) {
	key, val, ok := strings.Cut(line, ": ")
	if !ok {
		return
	}
	switch key {
	case "format-version":
		ont.FormatVersion = val
	case "data-version":
		ont.DataVersion = val
	case "ontology":
		ont.Ontology = val
	}
}

func parseTerm(scanner *bufio.Scanner, pool *internPool) Term {
	var t Term
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}

		key, val, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}

		switch key {
		case "id":
			t.ID = strings.TrimSpace(val)
		case "name":
			t.Name = val
		case "namespace":
			t.Namespace = pool.get(val)
		case "is_a":
			t.Relationships = append(t.Relationships, Relationship{
				Type:     pool.get(RelIsA),
				TargetID: targetID(val),
			})
		case "relationship":
			if rel, ok := parseRelationship(val, pool); ok {
				t.Relationships = append(t.Relationships, rel)
			}
		case "is_obsolete":
			t.IsObsolete = val == "true"
		}
	}
	return t
}

// targetID strips the trailing comment and qualifier block from
// "GO:0008150 {source=\"x\"} ! biological_process".
func targetID(val string) string {
	id, _, _ := strings.Cut(val, " ! ")
	id, _, _ = strings.Cut(id, " {")
	return strings.TrimSpace(id)
}

// parseRelationship parses: "part_of GO:0005737 ! cytoplasm"
func parseRelationship(val string, pool *internPool) (Relationship, bool) {
	typ, rest, ok := strings.Cut(val, " ")
	if !ok {
		return Relationship{}, false
	}
	id := targetID(rest)
	if id == "" {
		return Relationship{}, false
	}
	return Relationship{Type: pool.get(typ), TargetID: id}, true
}
