package sat

import (
	"sort"

	"github.com/google/uuid"
)

// Document is the result of one parse. It is not modified after Parse
// returns and is safe for concurrent reads.
type Document struct {
	ID       uuid.UUID      `json:"id"`
	Path     string         `json:"path"`
	Header   *Header        `json:"header"`
	Entities map[int]Entity `json:"-"`
	Skipped  []*RecordError `json:"skipped,omitempty"`

	// ReadError is set when reading stopped before the end marker, e.g. on a
	// line longer than the configured maximum. Entities read so far are kept.
	ReadError string `json:"read_error,omitempty"`
}

func newDocument(id uuid.UUID, path string, h *Header) *Document {
	return &Document{
		ID:       id,
		Path:     path,
		Header:   h,
		Entities: make(map[int]Entity),
	}
}

// GetEntity looks up an entity by index.
func (d *Document) GetEntity(index int) (Entity, bool) {
	e, ok := d.Entities[index]
	return e, ok
}

// Resolve follows a reference field. A nil reference resolves to nothing.
func (d *Document) Resolve(ref *int) (Entity, bool) {
	if ref == nil {
		return nil, false
	}
	return d.GetEntity(*ref)
}

// Indices returns every entity index in ascending order.
func (d *Document) Indices() []int {
	out := make([]int, 0, len(d.Entities))
	for idx := range d.Entities {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Ordered returns every entity sorted by index.
func (d *Document) Ordered() []Entity {
	idx := d.Indices()
	out := make([]Entity, len(idx))
	for i, n := range idx {
		out[i] = d.Entities[n]
	}
	return out
}

func ofKind[T Entity](d *Document) []T {
	var out []T
	for _, e := range d.Ordered() {
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Bodies returns every body, sorted by index.
func (d *Document) Bodies() []*Body {
	return ofKind[*Body](d)
}

// Faces returns every face, sorted by index.
func (d *Document) Faces() []*Face {
	return ofKind[*Face](d)
}

// OfType returns entities whose type keyword equals typ, sorted by index.
func (d *Document) OfType(typ string) []Entity {
	var out []Entity
	for _, e := range d.Ordered() {
		if e.Type() == typ {
			out = append(out, e)
		}
	}
	return out
}

// Counts returns the number of entities per type keyword.
func (d *Document) Counts() map[string]int {
	out := make(map[string]int)
	for _, e := range d.Entities {
		out[e.Type()]++
	}
	return out
}

// DanglingReference is a non-null reference whose target is not in the document.
type DanglingReference struct {
	From   int    `json:"from"`
	Name   string `json:"name"`
	Target int    `json:"target"`
}

// DanglingReferences lists references to indices that were never parsed or
// were skipped, ordered by source index.
func (d *Document) DanglingReferences() []DanglingReference {
	var out []DanglingReference
	for _, e := range d.Ordered() {
		for _, r := range e.References() {
			if r.Target == nil {
				continue
			}
			if _, ok := d.Entities[*r.Target]; !ok {
				out = append(out, DanglingReference{From: e.Index(), Name: r.Name, Target: *r.Target})
			}
		}
	}
	return out
}
