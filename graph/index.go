package graph

// NodeID is an integer identifier for an ontology term.
type NodeID uint32

// SymbolTable maps term ids (GO:0008150) to dense integer ids so that the
// graph walks operate on slices instead of string maps.
type SymbolTable struct {
	termToID map[string]NodeID
	idToTerm []string
}

func NewSymbolTable(capacity int) *SymbolTable {
	return &SymbolTable{
		termToID: make(map[string]NodeID, capacity),
		idToTerm: make([]string, 0, capacity),
	}
}

// Intern returns the NodeID for the given term, creating one if needed.
func (st *SymbolTable) Intern(term string) NodeID {
	if id, ok := st.termToID[term]; ok {
		return id
	}
	id := NodeID(len(st.idToTerm))
	st.termToID[term] = id
	st.idToTerm = append(st.idToTerm, term)
	return id
}

// Lookup returns the NodeID of a term that was interned before.
func (st *SymbolTable) Lookup(term string) (NodeID, bool) {
	id, ok := st.termToID[term]
	return id, ok
}

func (st *SymbolTable) Count() int { return len(st.idToTerm) }

// Name returns the term id for a NodeID.
func (st *SymbolTable) Name(id NodeID) string {
	if int(id) < len(st.idToTerm) {
		return st.idToTerm[id]
	}
	return ""
}
