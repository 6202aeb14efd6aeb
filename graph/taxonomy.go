package graph

// Parents returns the direct parents of term.
func (d *DAG) Parents(term string) []string {
	return d.names(term, d.parents)
}

// Children returns the direct children of term.
func (d *DAG) Children(term string) []string {
	return d.names(term, d.children)
}

func (d *DAG) names(term string, adj [][]NodeID) []string {
	id, ok := d.st.Lookup(term)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(adj[id]))
	for _, n := range adj[id] {
		out = append(out, d.st.Name(n))
	}
	return out
}

// Lineage returns one shortest parent chain from term up to target, both
// included. It returns nil when target is not reachable.
func (d *DAG) Lineage(term, target string) []string {
	from, ok := d.st.Lookup(term)
	if !ok {
		return nil
	}
	to, ok := d.st.Lookup(target)
	if !ok {
		return nil
	}
	if from == to {
		return []string{term}
	}

	// BFS over parents: the first time target is seen the chain is a shortest one.
	prev := map[NodeID]NodeID{}
	found := false
	seen := map[NodeID]struct{}{from: {}}
	queue := []NodeID{from}
	for len(queue) > 0 && !found {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range d.parents[cur] {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			prev[p] = cur
			if p == to {
				found = true
				break
			}
			queue = append(queue, p)
		}
	}
	if !found {
		return nil
	}

	var chain []string
	for n := to; n != from; n = prev[n] {
		chain = append(chain, d.st.Name(n))
	}
	chain = append(chain, term)
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
