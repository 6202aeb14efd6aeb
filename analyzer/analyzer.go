// Package analyzer judges whether a group of identifiers of one resource is
// consistent with the kind of entity it annotates and how specific it is.
package analyzer

import (
	"context"
	"fmt"

	"github.com/nodeadmin/sbmate/annotation"
)

// Verdict is the consistency outcome of one identifier group.
type Verdict int

const (
	Inconsistent Verdict = iota
	Consistent
	// Indeterminate means an existence lookup failed and nothing proved the
	// group wrong. It is reported, never counted as consistent.
	Indeterminate
)

func (v Verdict) String() string {
	switch v {
	case Consistent:
		return "consistent"
	case Indeterminate:
		return "indeterminate"
	}
	return "inconsistent"
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Result is the consistency judgement of one identifier group.
type Result struct {
	Resource annotation.Resource
	Kind     annotation.EntityKind
	Verdict  Verdict
	IDs      []string
	// Roots maps each identifier to its governing root. Only DAG-backed
	// results fill it, and only when consistent.
	Roots map[string]string
	// Labels holds the root label resolved for each identifier.
	Labels map[string]string
	// Unresolved lists identifiers an existence lookup could not answer.
	Unresolved []string
	Err        error
}

// Analyzer is implemented by DAG and Registry.
type Analyzer interface {
	Resource() annotation.Resource
	Consistency(ctx context.Context, kind annotation.EntityKind, ids []string) Result
	// Specificity scores a consistent result in [0, 1]. ok is false when
	// the score is undefined for the result.
	Specificity(r Result) (score float64, ok bool)
}

// Set selects the analyzer of each resource.
type Set map[annotation.Resource]Analyzer

// NewSet builds one analyzer per resource: DAG analyzers over the graphs for
// GO, SBO and CHEBI and registry analyzers for KEGG and UniProt.
func NewSet(graphs Graphs, oracle Oracle, opts ...RegistryOption) Set {
	set := make(Set, len(annotation.Resources))
	for _, res := range annotation.Resources {
		if res.DAGBacked() {
			set[res] = NewDAG(res, graphs)
		} else {
			set[res] = NewRegistry(res, oracle, opts...)
		}
	}
	return set
}

// For returns the analyzer of res.
func (s Set) For(res annotation.Resource) (Analyzer, error) {
	a, ok := s[res]
	if !ok {
		return nil, fmt.Errorf("no analyzer for resource %q", res)
	}
	return a, nil
}
