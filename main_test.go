package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodeadmin/sbmate/annotation"
	"github.com/nodeadmin/sbmate/config"
	"github.com/nodeadmin/sbmate/ontology"
	"github.com/nodeadmin/sbmate/pipeline"
	"github.com/nodeadmin/sbmate/store/storetest"
)

func TestSnapshotCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "go.obo")
	out := filepath.Join(dir, "go.json")
	require.NoError(t, os.WriteFile(in, []byte(storetest.GOOBO), 0o644))

	cmd := rootCmd()
	cmd.SetArgs([]string{"snapshot", in, out})
	require.NoError(t, cmd.Execute())

	ont, err := ontology.LoadFile(out, "")
	require.NoError(t, err)
	assert.Equal(t, "releases/fixture", ont.DataVersion)
	assert.Equal(t, 16, ont.TermCount())
}

func TestInjector(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	for name, doc := range map[string]string{"go.obo": storetest.GOOBO, "sbo.obo": storetest.SBOOBO, "chebi.obo": storetest.ChEBIOBO} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644))
	}
	cfg.Ontologies.GO.Path = filepath.Join(dir, "go.obo")
	cfg.Ontologies.SBO.Path = filepath.Join(dir, "sbo.obo")
	cfg.Ontologies.ChEBI.Path = filepath.Join(dir, "chebi.obo")

	sources := ontologySources(cfg)
	assert.Len(t, sources, 3)
	assert.Equal(t, cfg.Ontologies.SBO.Path, sources[annotation.SBO].Path)

	di := newInjector(context.Background(), cfg)
	defer func() { _ = di.Shutdown() }()

	svc, err := do.Invoke[*pipeline.Service](di)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestScoreCommand_MissingConfig(t *testing.T) {
	cmd := rootCmd()
	cmd.SetArgs([]string{"score", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, cmd.Execute())
}
