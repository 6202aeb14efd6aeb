package ontology

// Ontology is a parsed OBO or OWL ontology (GO, SBO or ChEBI), reduced to
// what is needed to build an ancestry graph.
type Ontology struct {
	FormatVersion string `json:"format_version,omitempty"`
	DataVersion   string `json:"data_version,omitempty"`
	Ontology      string `json:"ontology,omitempty"`
	Terms         []Term `json:"terms"`
}

// Term is a single ontology class.
type Term struct {
	ID            string         `json:"id"`
	Name          string         `json:"name,omitempty"`
	Namespace     string         `json:"namespace,omitempty"`
	IsObsolete    bool           `json:"is_obsolete,omitempty"`
	Relationships []Relationship `json:"relationships,omitempty"`
}

// Relationship is a typed edge from a term to another term.
type Relationship struct {
	Type     string `json:"type"` // is_a, part_of, has_role, etc.
	TargetID string `json:"target_id"`
}

// Relationship types that carry ancestry.
const (
	RelIsA    = "is_a"
	RelPartOf = "part_of"
)

// TermCount returns the number of non-obsolete terms.
func (o *Ontology) TermCount() int {
	n := 0
	for i := range o.Terms {
		if !o.Terms[i].IsObsolete {
			n++
		}
	}
	return n
}
