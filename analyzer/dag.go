package analyzer

import (
	"context"
	"math"

	"github.com/elliotchance/pie/v2"

	"github.com/nodeadmin/sbmate/annotation"
)

// Graphs is the part of the ontology store the DAG analyzer needs.
type Graphs interface {
	FindRoot(res annotation.Resource, term string) (string, bool)
	RootLabel(root string) string
	SubtreeSize(res annotation.Resource, term string) int
}

// DAG analyzes identifiers of an ontology with a local graph. A group is
// consistent when the root label of every identifier is acceptable for the
// entity kind.
type DAG struct {
	res    annotation.Resource
	graphs Graphs
}

func NewDAG(res annotation.Resource, graphs Graphs) *DAG {
	return &DAG{res: res, graphs: graphs}
}

func (d *DAG) Resource() annotation.Resource { return d.res }

// Consistency resolves the root of every identifier and checks the set of
// root labels against the kind. Identifiers without a root get the "none"
// label, which no kind accepts. An empty group is inconsistent.
func (d *DAG) Consistency(_ context.Context, kind annotation.EntityKind, ids []string) Result {
	r := Result{Resource: d.res, Kind: kind, Verdict: Inconsistent, IDs: ids}
	if len(ids) == 0 {
		return r
	}

	roots := make(map[string]string, len(ids))
	r.Labels = make(map[string]string, len(ids))
	for _, id := range ids {
		root, ok := d.graphs.FindRoot(d.res, id)
		if ok {
			roots[id] = root
		}
		r.Labels[id] = d.graphs.RootLabel(root)
	}

	if !annotation.AcceptsAll(kind, pie.Values(r.Labels)) {
		return r
	}
	r.Verdict = Consistent
	r.Roots = roots
	return r
}

// Specificity is the mean over identifiers of |ln(n/N)| / |ln(1/N)|, where
// n is the subtree size of the identifier and N that of its root. A root
// scores 0 and a leaf 1.
func (d *DAG) Specificity(r Result) (float64, bool) {
	if r.Verdict != Consistent || len(r.IDs) == 0 {
		return 0, false
	}
	scores := make([]float64, 0, len(r.IDs))
	for _, id := range r.IDs {
		root, ok := r.Roots[id]
		if !ok {
			return 0, false
		}
		s, ok := d.termSpecificity(id, root)
		if !ok {
			return 0, false
		}
		scores = append(scores, s)
	}
	return pie.Average(scores), true
}

func (d *DAG) termSpecificity(term, root string) (float64, bool) {
	n := d.graphs.SubtreeSize(d.res, term)
	total := d.graphs.SubtreeSize(d.res, root)
	if n == 0 || total == 0 || n > total {
		return 0, false
	}
	if total == 1 {
		return 0, true
	}
	return math.Abs(math.Log(float64(n)/float64(total))) / math.Abs(math.Log(1/float64(total))), true
}

// TermSpecificity scores a single identifier against its governing root.
func (d *DAG) TermSpecificity(term string) (float64, bool) {
	root, ok := d.graphs.FindRoot(d.res, term)
	if !ok {
		return 0, false
	}
	return d.termSpecificity(term, root)
}
