package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const speciesMarkup = `<annotation>
  <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:bqbiol="http://biomodels.net/biology-qualifiers/">
    <rdf:Description rdf:about="#meta_s1">
      <bqbiol:is>
        <rdf:Bag>
          <rdf:li rdf:resource="http://identifiers.org/chebi/CHEBI:28087"/>
          <rdf:li rdf:resource="https://identifiers.org/CHEBI:17234"/>
          <rdf:li rdf:resource="http://identifiers.org/kegg.compound/C00182"/>
          <rdf:li rdf:resource="http://identifiers.org/chebi/CHEBI:28087"/>
          <rdf:li rdf:resource="http://identifiers.org/reactome/R-HSA-70171"/>
        </rdf:Bag>
      </bqbiol:is>
      <bqbiol:isVersionOf>
        <rdf:Bag>
          <rdf:li rdf:resource="urn:miriam:uniprot:P0DP23"/>
          <rdf:li rdf:resource="urn:miriam:obo.go:GO%3A5737"/>
        </rdf:Bag>
      </bqbiol:isVersionOf>
      <bqbiol:hasPart>
        <rdf:Bag>
          <rdf:li rdf:resource="http://identifiers.org/uniprot/P12345"/>
        </rdf:Bag>
      </bqbiol:hasPart>
      <bqbiol:isDescribedBy>
        <rdf:Bag>
          <rdf:li rdf:resource="http://identifiers.org/go/GO:0008150"/>
        </rdf:Bag>
      </bqbiol:isDescribedBy>
    </rdf:Description>
  </rdf:RDF>
</annotation>`

func TestExtractor_Extract(t *testing.T) {
	rec := NewExtractor().Extract(RawEntity{
		ID:         "s1",
		Kind:       KindSpecies,
		SBOTerm:    "SBO:0000247",
		Annotation: speciesMarkup,
	})

	assert.Equal(t, "s1", rec.ObjectID())
	assert.Equal(t, KindSpecies, rec.Kind())
	assert.Equal(t, []string{"CHEBI:28087", "CHEBI:17234"}, rec.IDs(CHEBI))
	assert.Equal(t, []string{"C00182"}, rec.IDs(KEGGSpecies))
	assert.Equal(t, []string{"P0DP23"}, rec.IDs(UniProt))
	assert.Equal(t, []string{"GO:0005737"}, rec.IDs(GO))
	assert.Equal(t, []string{"SBO:0000247"}, rec.IDs(SBO))
	assert.Empty(t, rec.IDs(KEGGProcess))
	assert.Equal(t, []Resource{GO, SBO, CHEBI, KEGGSpecies, UniProt}, rec.Populated())

	refs := rec.References(UniProt)
	require.Len(t, refs, 1)
	assert.Equal(t, QualifierIsVersionOf, refs[0].Qualifier)
	assert.Equal(t, QualifierSBOTerm, rec.References(SBO)[0].Qualifier)
}

func TestExtractor_CustomQualifiers(t *testing.T) {
	rec := NewExtractor("hasPart", "hasPart").Extract(RawEntity{ID: "s1", Kind: KindSpecies, Annotation: speciesMarkup})

	assert.Equal(t, []string{"P12345"}, rec.IDs(UniProt))
	assert.Empty(t, rec.IDs(CHEBI))
}

func TestExtractor_QualifierPrefixIsNotAMatch(t *testing.T) {
	// bqbiol:is must not pick up bqbiol:isDescribedBy.
	rec := NewExtractor("is").Extract(RawEntity{ID: "s1", Kind: KindSpecies, Annotation: speciesMarkup})
	assert.NotContains(t, rec.IDs(GO), "GO:0008150")
}

func TestExtractor_EmptyAndMalformed(t *testing.T) {
	e := NewExtractor()

	tests := map[string]string{
		"empty":          "",
		"whitespace":     "  \n ",
		"unclosed block": `<annotation><bqbiol:is><rdf:li rdf:resource="http://identifiers.org/go/GO:0006402"/>`,
		"garbage":        "<<<not xml",
	}
	for name, markup := range tests {
		t.Run(name, func(t *testing.T) {
			rec := e.Extract(RawEntity{ID: "x", Kind: KindReaction, Annotation: markup})
			assert.False(t, rec.Annotated())
			assert.Empty(t, rec.Populated())
			for _, res := range Resources {
				assert.Empty(t, rec.IDs(res))
			}
		})
	}
}

func TestExtractor_SBOTermOnly(t *testing.T) {
	rec := NewExtractor().Extract(RawEntity{ID: "r1", Kind: KindReaction, SBOTerm: "179"})

	assert.True(t, rec.Annotated())
	assert.Equal(t, []string{"SBO:0000179"}, rec.IDs(SBO))
}

func TestExtractor_SBOTermMergesWithMarkup(t *testing.T) {
	markup := `<bqbiol:is><rdf:li rdf:resource="http://identifiers.org/biomodels.sbo/SBO:0000179"/>
<rdf:li rdf:resource="http://identifiers.org/sbo/SBO:0000176"/></bqbiol:is>`

	rec := NewExtractor().Extract(RawEntity{ID: "r1", Kind: KindReaction, SBOTerm: "SBO:0000176", Annotation: markup})

	assert.Equal(t, []string{"SBO:0000179", "SBO:0000176"}, rec.IDs(SBO))
}

func TestExtractAll(t *testing.T) {
	recs := NewExtractor().ExtractAll([]RawEntity{
		{ID: "a", Kind: KindModel},
		{ID: "b", Kind: KindReaction, SBOTerm: "SBO:0000176"},
	})
	require.Len(t, recs, 2)
	assert.Equal(t, "a", recs[0].ObjectID())
	assert.Equal(t, "b", recs[1].ObjectID())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		res  Resource
		in   string
		want string
	}{
		{GO, "GO:0006402", "GO:0006402"},
		{GO, "GO:6402", "GO:0006402"},
		{GO, "go:0006402", "GO:0006402"},
		{SBO, "SBO:179", "SBO:0000179"},
		{SBO, "179", "SBO:0000179"},
		{CHEBI, "28087", "CHEBI:28087"},
		{CHEBI, "CHEBI:28087", "CHEBI:28087"},
		{UniProt, " P0DP23 ", "P0DP23"},
		{KEGGSpecies, "C00031", "C00031"},
	}
	for _, tt := range tests {
		t.Run(string(tt.res)+"/"+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.res, tt.in))
		})
	}
}

func TestFormatSBO(t *testing.T) {
	assert.Equal(t, "SBO:0000290", FormatSBO("290"))
	assert.Equal(t, "SBO:0000290", FormatSBO("SBO:0000290"))
	assert.Empty(t, FormatSBO(""))
	assert.Empty(t, FormatSBO("-1"))
	assert.Empty(t, FormatSBO("SBO:"))
}

func TestResourceFor(t *testing.T) {
	tests := map[string]Resource{
		"go":              GO,
		"GO":              GO,
		"obo.go":          GO,
		"biomodels.sbo":   SBO,
		"obo.chebi":       CHEBI,
		"kegg.genes":      KEGGSpecies,
		"kegg.drug":       KEGGSpecies,
		"kegg.orthology":  KEGGProcess,
		"kegg.pathway":    KEGGProcess,
		"uniprot.isoform": UniProt,
	}
	for surface, want := range tests {
		got, ok := ResourceFor(surface)
		assert.True(t, ok, surface)
		assert.Equal(t, want, got, surface)
	}

	_, ok := ResourceFor("reactome")
	assert.False(t, ok)

	_, err := ParseResource("kegg")
	assert.Error(t, err)
	r, err := ParseResource("kegg_process")
	require.NoError(t, err)
	assert.Equal(t, KEGGProcess, r)
}

func TestCompatibility(t *testing.T) {
	assert.True(t, Accepts(KindReaction, LabelMolecularFunction))
	assert.True(t, Accepts(KindModel, LabelKEGGProcess))
	assert.False(t, Accepts(KindReaction, LabelChemicalEntity))
	assert.True(t, Accepts(KindSpecies, LabelUniProt))
	assert.False(t, Accepts(KindCompartment, LabelUniProt))
	assert.False(t, Accepts(KindCompartment, LabelKEGGSpecies))
	assert.False(t, Accepts(KindSpecies, "none"))

	assert.True(t, AcceptsAll(KindSpecies, nil))
	assert.False(t, AcceptsAll(KindSpecies, []string{LabelChemicalEntity, LabelBiologicalProcess}))

	labels := AcceptableLabels(KindModel)
	labels[0] = "mutated"
	assert.True(t, Accepts(KindModel, LabelBiologicalProcess))
}

func TestKindFromElement(t *testing.T) {
	k, ok := KindFromElement("species")
	require.True(t, ok)
	assert.Equal(t, KindSpecies, k)

	_, ok = KindFromElement("speciesReference")
	assert.False(t, ok)
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord("m", KindModel,
		Reference{Resource: GO, ID: "GO:0008150", Qualifier: QualifierIs},
		Reference{Resource: GO, ID: "GO:0008150", Qualifier: QualifierIsVersionOf},
		Reference{Resource: GO, ID: ""},
	)
	assert.Equal(t, []string{"GO:0008150"}, rec.IDs(GO))
	assert.Equal(t, QualifierIs, rec.References(GO)[0].Qualifier)

	ids := rec.IDs(GO)
	ids[0] = "changed"
	assert.Equal(t, []string{"GO:0008150"}, rec.IDs(GO))
}
