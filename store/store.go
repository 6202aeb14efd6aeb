// Package store holds the read-only GO, SBO and ChEBI graphs and answers
// root and subtree queries against them.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/nodeadmin/sbmate/annotation"
	"github.com/nodeadmin/sbmate/graph"
)

// ErrUnknownOntology is returned for a resource that has no graph.
var ErrUnknownOntology = errors.New("unknown ontology")

// Stats describes one loaded ontology.
type Stats struct {
	Path        string        `json:"path,omitempty"`
	DataVersion string        `json:"data_version,omitempty"`
	Terms       int           `json:"terms"`
	Nodes       int           `json:"nodes"`
	Edges       int           `json:"edges"`
	ParseTime   time.Duration `json:"parse_time"`
	BuildTime   time.Duration `json:"build_time"`
}

// Store is the set of ontology graphs used by the analyzers. It is built
// once and only read afterwards, so it is safe for concurrent use.
type Store struct {
	graphs map[annotation.Resource]*graph.DAG
	labels map[string]string
	stats  map[annotation.Resource]Stats
}

// New builds a store from already built graphs. Only DAG-backed resources
// are accepted; missing ones simply never resolve a root.
func New(graphs map[annotation.Resource]*graph.DAG) (*Store, error) {
	s := &Store{
		graphs: make(map[annotation.Resource]*graph.DAG, len(graphs)),
		labels: make(map[string]string),
		stats:  make(map[annotation.Resource]Stats, len(graphs)),
	}
	for res, g := range graphs {
		if !res.DAGBacked() {
			return nil, fmt.Errorf("%w: %s has no ancestry graph", ErrUnknownOntology, res)
		}
		s.graphs[res] = g
		s.stats[res] = Stats{Nodes: g.NodeCount(), Edges: g.EdgeCount()}
	}
	for _, roots := range designatedRoots {
		for _, r := range roots {
			s.labels[r.ID] = r.Label
		}
	}
	return s, nil
}

// Graph returns the graph of res.
func (s *Store) Graph(res annotation.Resource) (*graph.DAG, error) {
	g, ok := s.graphs[res]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOntology, res)
	}
	return g, nil
}

// FindRoot returns the designated root governing term. Roots are tried in
// their fixed priority order, so the answer is deterministic when several
// are reachable. ok is false when the term is not in the graph or reaches
// no designated root. The term must already be normalized.
func (s *Store) FindRoot(res annotation.Resource, term string) (root string, ok bool) {
	g, has := s.graphs[res]
	if !has || !g.Has(term) {
		return "", false
	}
	for _, r := range designatedRoots[res] {
		if g.HasPath(term, r.ID) {
			return r.ID, true
		}
	}
	return "", false
}

// RootLabel maps a root id to its semantic label, or NoRootLabel.
func (s *Store) RootLabel(root string) string {
	if l, ok := s.labels[root]; ok {
		return l
	}
	return NoRootLabel
}

// Roots returns the designated root ids of res in priority order.
func (s *Store) Roots(res annotation.Resource) []string {
	roots := designatedRoots[res]
	ids := make([]string, len(roots))
	for i, r := range roots {
		ids[i] = r.ID
	}
	return ids
}

// SubtreeSize returns the term plus every node classified under it, or 0
// when the term is unknown.
func (s *Store) SubtreeSize(res annotation.Resource, term string) int {
	g, ok := s.graphs[res]
	if !ok {
		return 0
	}
	return g.SubtreeSize(term)
}

// Lineage returns a shortest chain from term to its governing root.
func (s *Store) Lineage(res annotation.Resource, term string) []string {
	root, ok := s.FindRoot(res, term)
	if !ok {
		return nil
	}
	return s.graphs[res].Lineage(term, root)
}

// Stats returns load statistics per ontology.
func (s *Store) Stats() map[annotation.Resource]Stats {
	out := make(map[annotation.Resource]Stats, len(s.stats))
	for k, v := range s.stats {
		out[k] = v
	}
	return out
}
