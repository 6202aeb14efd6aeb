package store

import "github.com/nodeadmin/sbmate/annotation"

// NoRootLabel is the label of an identifier whose root cannot be found.
// No entity kind accepts it.
const NoRootLabel = "none"

// Root is a designated root of an ontology and its semantic label.
type Root struct {
	ID    string
	Label string
}

// designatedRoots lists the roots of each ontology in priority order. When
// a term reaches several roots the first one listed wins.
var designatedRoots = map[annotation.Resource][]Root{
	annotation.GO: {
		{"GO:0008150", annotation.LabelBiologicalProcess},
		{"GO:0003674", annotation.LabelMolecularFunction},
		{"GO:0005575", annotation.LabelCellularComponent},
	},
	// Children of SBO:0000000.
	annotation.SBO: {
		{"SBO:0000064", "mathematical expression"},
		{"SBO:0000544", "metadata representation"},
		{"SBO:0000004", "modelling framework"},
		{"SBO:0000231", annotation.LabelOccurringEntity},
		{"SBO:0000003", "participant role"},
		{"SBO:0000236", annotation.LabelPhysicalEntity},
		{"SBO:0000545", "systems description parameter"},
	},
	annotation.CHEBI: {
		{"CHEBI:24431", annotation.LabelChemicalEntity},
	},
}

// DesignatedRoots returns the roots of res in priority order.
func DesignatedRoots(res annotation.Resource) []Root {
	roots := designatedRoots[res]
	out := make([]Root, len(roots))
	copy(out, roots)
	return out
}
