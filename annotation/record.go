package annotation

import "slices"

// Qualifier names where an identifier was found.
type Qualifier string

const (
	QualifierIs          Qualifier = "is"
	QualifierIsVersionOf Qualifier = "isVersionOf"
	QualifierSBOTerm     Qualifier = "sboTerm"
)

// RawEntity is what the model reader hands over for one entity: its id and
// kind, the native sboTerm attribute and the raw <annotation> markup.
type RawEntity struct {
	ID         string
	Kind       EntityKind
	SBOTerm    string
	Annotation string
}

// Reference is one identifier of one resource together with the qualifier
// it came from.
type Reference struct {
	Resource  Resource  `json:"resource"`
	ID        string    `json:"id"`
	Qualifier Qualifier `json:"qualifier"`
}

// Record holds the identifiers of one entity grouped by resource. Records
// are built by the Extractor and not modified afterwards; accessors return
// copies.
type Record struct {
	objectID string
	kind     EntityKind
	refs     map[Resource][]Reference
}

// NewRecord builds a record from references, dropping duplicates of the
// same (resource, id) pair. It is mainly useful for tests and callers that
// bring their own extraction.
func NewRecord(objectID string, kind EntityKind, refs ...Reference) Record {
	r := Record{objectID: objectID, kind: kind, refs: make(map[Resource][]Reference)}
	for _, ref := range refs {
		r.add(ref)
	}
	return r
}

func (r *Record) add(ref Reference) {
	if ref.ID == "" {
		return
	}
	for _, have := range r.refs[ref.Resource] {
		if have.ID == ref.ID {
			return
		}
	}
	r.refs[ref.Resource] = append(r.refs[ref.Resource], ref)
}

func (r Record) ObjectID() string { return r.objectID }

func (r Record) Kind() EntityKind { return r.kind }

// IDs returns the identifiers of one resource in first-seen order.
func (r Record) IDs(res Resource) []string {
	refs := r.refs[res]
	if len(refs) == 0 {
		return nil
	}
	ids := make([]string, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}
	return ids
}

// References returns the references of one resource.
func (r Record) References(res Resource) []Reference {
	return slices.Clone(r.refs[res])
}

// Populated returns the resources that have at least one identifier, in
// canonical order.
func (r Record) Populated() []Resource {
	var out []Resource
	for _, res := range Resources {
		if len(r.refs[res]) > 0 {
			out = append(out, res)
		}
	}
	return out
}

// Annotated reports whether any resource has an identifier.
func (r Record) Annotated() bool {
	return len(r.Populated()) > 0
}
