package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodeadmin/sbmate/annotation"
	"github.com/nodeadmin/sbmate/graph"
	"github.com/nodeadmin/sbmate/store"
	"github.com/nodeadmin/sbmate/store/storetest"
)

func TestStore_FindRoot(t *testing.T) {
	s := storetest.New()

	tests := []struct {
		name   string
		res    annotation.Resource
		term   string
		root   string
		wantOK bool
	}{
		{"molecular function descendant", annotation.GO, "GO:0004708", "GO:0003674", true},
		{"biological process descendant", annotation.GO, "GO:0006402", "GO:0008150", true},
		{"part_of reaches cellular component", annotation.GO, "GO:0005737", "GO:0005575", true},
		{"root reaches itself", annotation.GO, "GO:0003674", "GO:0003674", true},
		{"priority order picks biological process", annotation.GO, "GO:0000001", "GO:0008150", true},
		{"obsolete term is absent", annotation.GO, "GO:0000005", "", false},
		{"unknown term", annotation.GO, "GO:9999999", "", false},
		{"sbo occurring entity", annotation.SBO, "SBO:0000179", "SBO:0000231", true},
		{"sbo physical entity", annotation.SBO, "SBO:0000252", "SBO:0000236", true},
		{"sbo top term has no designated root", annotation.SBO, "SBO:0000000", "", false},
		{"chebi molecule", annotation.CHEBI, "CHEBI:28087", "CHEBI:24431", true},
		{"chebi role branch", annotation.CHEBI, "CHEBI:33284", "", false},
		{"registry resource has no graph", annotation.UniProt, "P0DP23", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, ok := s.FindRoot(tt.res, tt.term)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.root, root)
		})
	}
}

func TestStore_FindRootDoesNotRewriteIDs(t *testing.T) {
	s := storetest.New()

	_, ok := s.FindRoot(annotation.GO, "GO:4708")
	assert.False(t, ok)
	_, ok = s.FindRoot(annotation.CHEBI, "28087")
	assert.False(t, ok)
}

func TestStore_RootLabel(t *testing.T) {
	s := storetest.New()

	assert.Equal(t, annotation.LabelMolecularFunction, s.RootLabel("GO:0003674"))
	assert.Equal(t, annotation.LabelOccurringEntity, s.RootLabel("SBO:0000231"))
	assert.Equal(t, "participant role", s.RootLabel("SBO:0000003"))
	assert.Equal(t, annotation.LabelChemicalEntity, s.RootLabel("CHEBI:24431"))
	assert.Equal(t, store.NoRootLabel, s.RootLabel("GO:0006402"))
	assert.Equal(t, store.NoRootLabel, s.RootLabel(""))
}

func TestStore_Roots(t *testing.T) {
	s := storetest.New()

	assert.Equal(t, []string{"GO:0008150", "GO:0003674", "GO:0005575"}, s.Roots(annotation.GO))
	assert.Len(t, s.Roots(annotation.SBO), 7)
	assert.Equal(t, []string{"CHEBI:24431"}, s.Roots(annotation.CHEBI))
	assert.Empty(t, s.Roots(annotation.KEGGSpecies))
}

func TestStore_SubtreeSize(t *testing.T) {
	s := storetest.New()

	assert.Equal(t, 6, s.SubtreeSize(annotation.GO, "GO:0008150"))
	assert.Equal(t, 7, s.SubtreeSize(annotation.GO, "GO:0003674"))
	assert.Equal(t, 1, s.SubtreeSize(annotation.GO, "GO:0004708"))
	assert.Equal(t, 6, s.SubtreeSize(annotation.CHEBI, "CHEBI:24431"))
	assert.Equal(t, 5, s.SubtreeSize(annotation.SBO, "SBO:0000231"))
	assert.Zero(t, s.SubtreeSize(annotation.GO, "GO:9999999"))
	assert.Zero(t, s.SubtreeSize(annotation.UniProt, "P0DP23"))
}

func TestStore_Lineage(t *testing.T) {
	s := storetest.New()

	assert.Equal(t,
		[]string{"GO:0006402", "GO:0006401", "GO:0009056", "GO:0008150"},
		s.Lineage(annotation.GO, "GO:0006402"))
	assert.Equal(t,
		[]string{"GO:0005737", "GO:0110165", "GO:0005575"},
		s.Lineage(annotation.GO, "GO:0005737"))
	assert.Nil(t, s.Lineage(annotation.CHEBI, "CHEBI:33284"))
}

func TestStore_Graph(t *testing.T) {
	s := storetest.New()

	g, err := s.Graph(annotation.CHEBI)
	require.NoError(t, err)
	assert.Equal(t, 8, g.NodeCount())

	_, err = s.Graph(annotation.KEGGProcess)
	assert.ErrorIs(t, err, store.ErrUnknownOntology)
}

func TestNew_RejectsRegistryResource(t *testing.T) {
	_, err := store.New(map[annotation.Resource]*graph.DAG{
		annotation.UniProt: storetest.Graph(storetest.ChEBIOBO),
	})
	assert.ErrorIs(t, err, store.ErrUnknownOntology)
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	sources := map[annotation.Resource]store.Source{
		annotation.GO:    {Path: writeFixture(t, dir, "go.obo", storetest.GOOBO)},
		annotation.SBO:   {Path: writeFixture(t, dir, "sbo.obo", storetest.SBOOBO)},
		annotation.CHEBI: {Path: writeFixture(t, dir, "chebi.obo", storetest.ChEBIOBO)},
	}

	t.Run("loads all three", func(t *testing.T) {
		s, err := store.Load(context.Background(), sources, nil)
		require.NoError(t, err)

		root, ok := s.FindRoot(annotation.GO, "GO:0004708")
		require.True(t, ok)
		assert.Equal(t, "GO:0003674", root)

		stats := s.Stats()
		require.Contains(t, stats, annotation.GO)
		assert.Equal(t, "releases/fixture", stats[annotation.GO].DataVersion)
		assert.Equal(t, 16, stats[annotation.GO].Nodes)
		assert.Equal(t, 15, stats[annotation.GO].Edges)
	})

	t.Run("is_a only", func(t *testing.T) {
		only := map[annotation.Resource]store.Source{}
		for k, v := range sources {
			v.Relations = []string{"is_a"}
			only[k] = v
		}
		s, err := store.Load(context.Background(), only, nil)
		require.NoError(t, err)
		assert.Equal(t, 14, s.Stats()[annotation.GO].Edges)
	})

	t.Run("missing source", func(t *testing.T) {
		partial := map[annotation.Resource]store.Source{annotation.GO: sources[annotation.GO]}
		_, err := store.Load(context.Background(), partial, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no source configured")
	})

	t.Run("unreadable file", func(t *testing.T) {
		broken := map[annotation.Resource]store.Source{}
		for k, v := range sources {
			broken[k] = v
		}
		broken[annotation.SBO] = store.Source{Path: filepath.Join(dir, "missing.obo")}
		_, err := store.Load(context.Background(), broken, nil)
		require.Error(t, err)
	})
}
