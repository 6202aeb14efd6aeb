package graph

import (
	"slices"
	"sync"

	"github.com/nodeadmin/sbmate/ontology"
)

// DAG is an immutable ancestry graph. Edges point from a term to its
// parents along the relations the graph was built with.
type DAG struct {
	st       *SymbolTable
	parents  [][]NodeID
	children [][]NodeID
	edges    int

	// subtree sizes, memoized on first request
	sizes sync.Map
}

// Build creates a DAG from the parsed ontology. Obsolete terms are skipped
// and only relationships whose type is listed in relations become edges.
// Relationship targets that are not terms themselves are still added as nodes.
func Build(ont *ontology.Ontology, relations []string) *DAG {
	st := NewSymbolTable(len(ont.Terms))

	for i := range ont.Terms {
		if !ont.Terms[i].IsObsolete {
			st.Intern(ont.Terms[i].ID)
		}
	}

	type edge struct{ child, parent NodeID }
	var pending []edge
	for i := range ont.Terms {
		t := &ont.Terms[i]
		if t.IsObsolete {
			continue
		}
		child, _ := st.Lookup(t.ID)
		for _, rel := range t.Relationships {
			if !slices.Contains(relations, rel.Type) || rel.TargetID == t.ID {
				continue
			}
			pending = append(pending, edge{child, st.Intern(rel.TargetID)})
		}
	}

	n := st.Count()
	d := &DAG{
		st:       st,
		parents:  make([][]NodeID, n),
		children: make([][]NodeID, n),
	}
	for _, e := range pending {
		if slices.Contains(d.parents[e.child], e.parent) {
			continue
		}
		d.parents[e.child] = append(d.parents[e.child], e.parent)
		d.children[e.parent] = append(d.children[e.parent], e.child)
		d.edges++
	}
	return d
}

// Has reports whether term is a node of the graph.
func (d *DAG) Has(term string) bool {
	_, ok := d.st.Lookup(term)
	return ok
}

func (d *DAG) NodeCount() int { return d.st.Count() }
func (d *DAG) EdgeCount() int { return d.edges }

// HasPath reports whether target can be reached from source by following
// parent edges. A node always reaches itself.
func (d *DAG) HasPath(source, target string) bool {
	from, ok := d.st.Lookup(source)
	if !ok {
		return false
	}
	to, ok := d.st.Lookup(target)
	if !ok {
		return false
	}
	if from == to {
		return true
	}

	found := false
	d.walk(from, d.parents, func(id NodeID) bool {
		if id == to {
			found = true
			return false
		}
		return true
	})
	return found
}

// SubtreeSize returns 1 plus the number of nodes from which term can be
// reached, i.e. the term together with everything classified under it.
// It returns 0 when the term is not in the graph.
func (d *DAG) SubtreeSize(term string) int {
	id, ok := d.st.Lookup(term)
	if !ok {
		return 0
	}
	if v, ok := d.sizes.Load(id); ok {
		return v.(int)
	}

	n := 1
	d.walk(id, d.children, func(NodeID) bool {
		n++
		return true
	})
	d.sizes.Store(id, n)
	return n
}

// walk visits every node reachable from start over adj, excluding start,
// until visit returns false.
func (d *DAG) walk(start NodeID, adj [][]NodeID, visit func(NodeID) bool) {
	seen := make(map[NodeID]struct{}, 64)
	seen[start] = struct{}{}
	queue := []NodeID{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			if !visit(next) {
				return
			}
			queue = append(queue, next)
		}
	}
}
