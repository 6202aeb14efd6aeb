package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"

	"github.com/nodeadmin/sbmate/annotation"
	"github.com/nodeadmin/sbmate/graph"
	"github.com/nodeadmin/sbmate/ontology"
)

// DefaultRelations are the relationship types that make up ancestry.
var DefaultRelations = []string{ontology.RelIsA, ontology.RelPartOf}

// Source tells Load where an ontology lives.
type Source struct {
	Path      string
	Format    string
	Relations []string
}

// Load parses the configured ontologies concurrently and builds the store.
// Every DAG-backed resource must have a source.
func Load(ctx context.Context, sources map[annotation.Resource]Source, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	errb := oops.In("store").Code("ontology_load")

	for _, res := range annotation.Resources {
		if !res.DAGBacked() {
			continue
		}
		if _, ok := sources[res]; !ok {
			return nil, errb.With("ontology", res).Errorf("no source configured for %s", res)
		}
	}

	var (
		mu     sync.Mutex
		graphs = make(map[annotation.Resource]*graph.DAG, len(sources))
		stats  = make(map[annotation.Resource]Stats, len(sources))
	)

	g, ctx := errgroup.WithContext(ctx)
	for res, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			ont, err := ontology.LoadFile(src.Path, src.Format)
			if err != nil {
				return errb.With("ontology", res, "path", src.Path).Wrapf(err, "load %s", res)
			}
			parseTime := time.Since(start)

			relations := src.Relations
			if len(relations) == 0 {
				relations = DefaultRelations
			}
			start = time.Now()
			dag := graph.Build(ont, relations)
			buildTime := time.Since(start)

			st := Stats{
				Path:        src.Path,
				DataVersion: ont.DataVersion,
				Terms:       ont.TermCount(),
				Nodes:       dag.NodeCount(),
				Edges:       dag.EdgeCount(),
				ParseTime:   parseTime,
				BuildTime:   buildTime,
			}
			logger.Info("Loaded ontology",
				"ontology", res,
				"path", src.Path,
				"terms", st.Terms,
				"edges", st.Edges,
				"parse_time", parseTime,
				"build_time", buildTime)

			mu.Lock()
			graphs[res] = dag
			stats[res] = st
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s, err := New(graphs)
	if err != nil {
		return nil, errb.Wrap(err)
	}
	for res, st := range stats {
		s.stats[res] = st
	}
	return s, nil
}
