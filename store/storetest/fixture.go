// Package storetest provides small GO, SBO and ChEBI graphs with the real
// designated roots, for tests that need an ontology store.
package storetest

import (
	"strings"

	"github.com/nodeadmin/sbmate/annotation"
	"github.com/nodeadmin/sbmate/graph"
	"github.com/nodeadmin/sbmate/ontology"
	"github.com/nodeadmin/sbmate/store"
)

// GOOBO is a cut of the Gene Ontology. GO:0000001 sits under both
// biological_process and molecular_function. GO:0000005 is obsolete.
const GOOBO = `format-version: 1.2
data-version: releases/fixture
ontology: go

[Term]
id: GO:0008150
name: biological_process
namespace: biological_process

[Term]
id: GO:0009056
name: catabolic process
namespace: biological_process
is_a: GO:0008150 ! biological_process

[Term]
id: GO:0006401
name: RNA catabolic process
namespace: biological_process
is_a: GO:0009056 ! catabolic process

[Term]
id: GO:0006402
name: mRNA catabolic process
namespace: biological_process
is_a: GO:0006401 ! RNA catabolic process

[Term]
id: GO:0040029
name: epigenetic regulation of gene expression
namespace: biological_process
is_a: GO:0008150 ! biological_process

[Term]
id: GO:0003674
name: molecular_function
namespace: molecular_function

[Term]
id: GO:0003824
name: catalytic activity
namespace: molecular_function
is_a: GO:0003674 ! molecular_function

[Term]
id: GO:0016740
name: transferase activity
namespace: molecular_function
is_a: GO:0003824 ! catalytic activity

[Term]
id: GO:0016301
name: kinase activity
namespace: molecular_function
is_a: GO:0016740 ! transferase activity

[Term]
id: GO:0004672
name: protein kinase activity
namespace: molecular_function
is_a: GO:0016301 ! kinase activity

[Term]
id: GO:0004708
name: MAP kinase kinase activity
namespace: molecular_function
is_a: GO:0004672 ! protein kinase activity

[Term]
id: GO:0000001
name: bridging fixture term
namespace: biological_process
is_a: GO:0009056 ! catabolic process
is_a: GO:0003824 ! catalytic activity

[Term]
id: GO:0005575
name: cellular_component
namespace: cellular_component

[Term]
id: GO:0110165
name: cellular anatomical entity
namespace: cellular_component
is_a: GO:0005575 ! cellular_component

[Term]
id: GO:0005623
name: obsolete cell
namespace: cellular_component
is_a: GO:0110165 ! cellular anatomical entity

[Term]
id: GO:0005737
name: cytoplasm
namespace: cellular_component
is_a: GO:0110165 ! cellular anatomical entity
relationship: part_of GO:0005623 ! cell

[Term]
id: GO:0000005
name: obsolete ribosomal chaperone activity
namespace: molecular_function
is_obsolete: true

[Typedef]
id: part_of
name: part of
`

// SBOOBO is a cut of the Systems Biology Ontology below SBO:0000000.
const SBOOBO = `format-version: 1.2
ontology: sbo

[Term]
id: SBO:0000000
name: systems biology representation

[Term]
id: SBO:0000064
name: mathematical expression
is_a: SBO:0000000

[Term]
id: SBO:0000001
name: rate law
is_a: SBO:0000064

[Term]
id: SBO:0000544
name: metadata representation
is_a: SBO:0000000

[Term]
id: SBO:0000004
name: modelling framework
is_a: SBO:0000000

[Term]
id: SBO:0000231
name: occurring entity representation
is_a: SBO:0000000

[Term]
id: SBO:0000375
name: process
is_a: SBO:0000231

[Term]
id: SBO:0000167
name: biochemical or transport reaction
is_a: SBO:0000375

[Term]
id: SBO:0000176
name: biochemical reaction
is_a: SBO:0000167

[Term]
id: SBO:0000179
name: degradation
is_a: SBO:0000176

[Term]
id: SBO:0000003
name: participant role
is_a: SBO:0000000

[Term]
id: SBO:0000236
name: physical entity representation
is_a: SBO:0000000

[Term]
id: SBO:0000240
name: material entity
is_a: SBO:0000236

[Term]
id: SBO:0000245
name: macromolecule
is_a: SBO:0000240

[Term]
id: SBO:0000252
name: polypeptide chain
is_a: SBO:0000245

[Term]
id: SBO:0000247
name: simple chemical
is_a: SBO:0000240

[Term]
id: SBO:0000290
name: physical compartment
is_a: SBO:0000240

[Term]
id: SBO:0000545
name: systems description parameter
is_a: SBO:0000000

[Term]
id: SBO:0000002
name: quantitative systems description parameter
is_a: SBO:0000545
`

// ChEBIOBO is a cut of ChEBI. The has_role edge is not an ancestry
// relation and must be ignored.
const ChEBIOBO = `format-version: 1.2
ontology: chebi

[Term]
id: CHEBI:24431
name: chemical entity

[Term]
id: CHEBI:23367
name: molecular entity
is_a: CHEBI:24431

[Term]
id: CHEBI:25367
name: molecule
is_a: CHEBI:23367

[Term]
id: CHEBI:18154
name: polysaccharide
is_a: CHEBI:25367

[Term]
id: CHEBI:28087
name: glycogen
is_a: CHEBI:18154
relationship: has_role CHEBI:33284

[Term]
id: CHEBI:33699
name: messenger RNA
is_a: CHEBI:25367

[Term]
id: CHEBI:50906
name: role

[Term]
id: CHEBI:33284
name: nutrient
is_a: CHEBI:50906
`

// Graph parses one of the fixture documents and builds its graph with the
// default ancestry relations.
func Graph(doc string) *graph.DAG {
	ont, err := ontology.ParseOBO(strings.NewReader(doc))
	if err != nil {
		panic(err)
	}
	return graph.Build(ont, store.DefaultRelations)
}

// New returns a store over the three fixture ontologies.
func New() *store.Store {
	s, err := store.New(map[annotation.Resource]*graph.DAG{
		annotation.GO:    Graph(GOOBO),
		annotation.SBO:   Graph(SBOOBO),
		annotation.CHEBI: Graph(ChEBIOBO),
	})
	if err != nil {
		panic(err)
	}
	return s
}
