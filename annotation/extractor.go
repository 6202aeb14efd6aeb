package annotation

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/elliotchance/pie/v2"
)

// DefaultQualifiers are the biology qualifiers whose references count as
// annotations.
var DefaultQualifiers = []string{string(QualifierIs), string(QualifierIsVersionOf)}

// referenceRe matches the three URI shapes in use:
//
//	http(s)://identifiers.org/<kind>/<id>
//	http(s)://identifiers.org/<prefix>:<id>
//	urn:miriam:<kind>:<id>
var referenceRe = regexp.MustCompile(
	`https?://identifiers\.org/([A-Za-z0-9._-]+)/([^"'\s<>]+)` +
		`|https?://identifiers\.org/([A-Za-z][A-Za-z0-9.]*):([^"'\s<>/]+)` +
		`|urn:miriam:([A-Za-z0-9._-]+):([^"'\s<>]+)`)

var (
	digitsRe = regexp.MustCompile(`[0-9]+`)
	goRe     = regexp.MustCompile(`^(?i)GO[:_]?([0-9]+)$`)
	chebiRe  = regexp.MustCompile(`^(?i)(?:CHEBI[:_])?([0-9]+)$`)
)

// Extractor parses annotation markup into records.
type Extractor struct {
	blocks []qualifierBlock
}

type qualifierBlock struct {
	qualifier Qualifier
	re        *regexp.Regexp
}

// NewExtractor returns an extractor that reads the given biology qualifier
// blocks (bqbiol:<name>). With no arguments DefaultQualifiers are used.
func NewExtractor(qualifiers ...string) *Extractor {
	if len(qualifiers) == 0 {
		qualifiers = DefaultQualifiers
	}
	e := &Extractor{}
	var seen []string
	for _, q := range qualifiers {
		if pie.Contains(seen, q) {
			continue
		}
		seen = append(seen, q)
		name := regexp.QuoteMeta(q)
		e.blocks = append(e.blocks, qualifierBlock{
			qualifier: Qualifier(q),
			re:        regexp.MustCompile(fmt.Sprintf(`(?s)<bqbiol:%s[^a-zA-Z].*?</bqbiol:%s>`, name, name)),
		})
	}
	return e
}

// Extract builds the record of one entity. Empty or malformed markup gives
// a record with no references.
func (e *Extractor) Extract(raw RawEntity) Record {
	rec := NewRecord(raw.ID, raw.Kind, e.References(raw.Annotation)...)
	if sbo := FormatSBO(raw.SBOTerm); sbo != "" {
		rec.add(Reference{Resource: SBO, ID: sbo, Qualifier: QualifierSBOTerm})
	}
	return rec
}

// ExtractAll builds one record per entity, in input order.
func (e *Extractor) ExtractAll(raws []RawEntity) []Record {
	return pie.Map(raws, e.Extract)
}

// References extracts the recognized references of the configured
// qualifier blocks, normalized, in document order within each block.
func (e *Extractor) References(markup string) []Reference {
	if strings.TrimSpace(markup) == "" {
		return nil
	}
	var refs []Reference
	for _, b := range e.blocks {
		for _, block := range b.re.FindAllString(markup, -1) {
			for _, m := range referenceRe.FindAllStringSubmatch(block, -1) {
				if ref, ok := toReference(m, b.qualifier); ok {
					refs = append(refs, ref)
				}
			}
		}
	}
	return refs
}

func toReference(m []string, q Qualifier) (Reference, bool) {
	var kind, id string
	compact := false
	switch {
	case m[1] != "":
		kind, id = m[1], m[2]
	case m[3] != "":
		kind, id, compact = m[3], m[4], true
	default:
		kind, id = m[5], m[6]
	}

	res, ok := ResourceFor(kind)
	if !ok {
		res, ok = ResourceFor(strings.ToLower(kind))
		if !ok || !compact {
			return Reference{}, false
		}
	}

	id = strings.TrimSuffix(id, "/")
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}
	if compact && res.DAGBacked() {
		// identifiers.org/GO:0006402 keeps the prefix as part of the id.
		id = kind + ":" + id
	}
	id = Normalize(res, id)
	if id == "" {
		return Reference{}, false
	}
	return Reference{Resource: res, ID: id, Qualifier: q}, true
}

// Normalize rewrites an identifier into the spelling used by the ontology
// graphs: GO and SBO numbers are zero padded to seven digits and bare ChEBI
// numbers get their prefix.
func Normalize(res Resource, id string) string {
	id = strings.TrimSpace(id)
	switch res {
	case GO:
		if m := goRe.FindStringSubmatch(id); m != nil {
			return padded("GO", m[1])
		}
	case SBO:
		return FormatSBO(id)
	case CHEBI:
		if m := chebiRe.FindStringSubmatch(id); m != nil {
			return "CHEBI:" + m[1]
		}
	}
	return id
}

// FormatSBO turns "179", "SBO:179" or "SBO:0000179" into "SBO:0000179".
// It returns "" when no number is present or the number is negative
// (libSBML reports an unset sboTerm as -1).
func FormatSBO(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") {
		return ""
	}
	digits := digitsRe.FindString(s)
	if digits == "" {
		return ""
	}
	return padded("SBO", digits)
}

func padded(prefix, digits string) string {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return prefix + ":" + digits
	}
	return fmt.Sprintf("%s:%07d", prefix, n)
}
