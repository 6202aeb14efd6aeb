// Package annotation turns raw SBML annotation markup into per-entity
// records grouped by knowledge resource, and holds the table of which
// ontology branches each entity kind may be annotated with.
package annotation

import "fmt"

// Resource is one of the six canonical knowledge resource categories.
type Resource string

const (
	GO          Resource = "go"
	SBO         Resource = "sbo"
	CHEBI       Resource = "chebi"
	KEGGSpecies Resource = "kegg_species"
	KEGGProcess Resource = "kegg_process"
	UniProt     Resource = "uniprot"
)

// Resources lists every category in canonical order. Calculations that
// iterate categories use this order.
var Resources = []Resource{GO, SBO, CHEBI, KEGGSpecies, KEGGProcess, UniProt}

// surfaceForms maps the resource names found in identifiers.org URIs and
// MIRIAM URNs onto the canonical categories.
var surfaceForms = map[string]Resource{
	"go":     GO,
	"GO":     GO,
	"obo.go": GO,

	"sbo":           SBO,
	"biomodels.sbo": SBO,

	"chebi":     CHEBI,
	"obo.chebi": CHEBI,

	"kegg.compound": KEGGSpecies,
	"kegg.genes":    KEGGSpecies,
	"kegg.drug":     KEGGSpecies,

	"kegg.reaction":  KEGGProcess,
	"kegg.orthology": KEGGProcess,
	"kegg.pathway":   KEGGProcess,

	"uniprot":         UniProt,
	"uniprot.isoform": UniProt,
}

// ResourceFor maps a surface form such as "obo.go" to its category.
func ResourceFor(surface string) (Resource, bool) {
	r, ok := surfaceForms[surface]
	return r, ok
}

// ParseResource parses a canonical category name.
func ParseResource(s string) (Resource, error) {
	for _, r := range Resources {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown resource %q", s)
}

// DAGBacked reports whether the resource is an ontology with a local graph
// (GO, SBO, CHEBI) as opposed to a flat registry (KEGG, UniProt).
func (r Resource) DAGBacked() bool {
	switch r {
	case GO, SBO, CHEBI:
		return true
	}
	return false
}

func (r Resource) String() string { return string(r) }
