package annotation

import (
	"slices"
	"strings"
)

// EntityKind is the SBML component type that carries an annotation.
type EntityKind string

const (
	KindModel       EntityKind = "Model"
	KindReaction    EntityKind = "Reaction"
	KindSpecies     EntityKind = "Species"
	KindCompartment EntityKind = "Compartment"
)

// EntityKinds lists the annotatable kinds.
var EntityKinds = []EntityKind{KindModel, KindReaction, KindSpecies, KindCompartment}

// KindFromElement maps an SBML element local name to its kind.
func KindFromElement(local string) (EntityKind, bool) {
	for _, k := range EntityKinds {
		if strings.EqualFold(string(k), local) {
			return k, true
		}
	}
	return "", false
}

// Semantic root labels. DAG-backed resources resolve to the label of the
// identifier's governing root; registry resources use their own name.
const (
	LabelBiologicalProcess = "biological_process"
	LabelMolecularFunction = "molecular_function"
	LabelCellularComponent = "cellular_component"
	LabelChemicalEntity    = "chemical entity"
	LabelOccurringEntity   = "occurring entity representation"
	LabelPhysicalEntity    = "physical entity representation"
	LabelKEGGSpecies       = string(KEGGSpecies)
	LabelKEGGProcess       = string(KEGGProcess)
	LabelUniProt           = string(UniProt)
)

var (
	processLabels = []string{
		LabelBiologicalProcess,
		LabelMolecularFunction,
		LabelKEGGProcess,
		LabelOccurringEntity,
	}
	speciesLabels = []string{
		LabelCellularComponent,
		LabelChemicalEntity,
		LabelPhysicalEntity,
		LabelKEGGSpecies,
		LabelUniProt,
	}
	compartmentLabels = []string{
		LabelCellularComponent,
		LabelChemicalEntity,
		LabelPhysicalEntity,
	}

	acceptable = map[EntityKind][]string{
		KindModel:       processLabels,
		KindReaction:    processLabels,
		KindSpecies:     speciesLabels,
		KindCompartment: compartmentLabels,
	}
)

// AcceptableLabels returns the root labels legitimate for kind.
func AcceptableLabels(kind EntityKind) []string {
	return slices.Clone(acceptable[kind])
}

// Accepts reports whether label is legitimate for kind.
func Accepts(kind EntityKind, label string) bool {
	return slices.Contains(acceptable[kind], label)
}

// AcceptsAll reports whether every label is legitimate for kind. An empty
// label set is trivially accepted.
func AcceptsAll(kind EntityKind, labels []string) bool {
	for _, l := range labels {
		if !Accepts(kind, l) {
			return false
		}
	}
	return true
}
