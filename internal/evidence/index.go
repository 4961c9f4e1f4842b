// Package evidence resolves the short reference IDs a brief uses to cite its
// evidence index, and classifies indexed sources by how much weight they carry.
package evidence

import (
	"strings"

	"github.com/ppiankov/briefcheck/internal/model"
)

// Index is a read-only view over a brief's evidence index. Lookups never
// fail: unknown, blank or missing IDs simply do not resolve.
type Index struct {
	entries model.EvidenceIndex
}

// NewIndex wraps an evidence index; a nil index resolves nothing
func NewIndex(entries model.EvidenceIndex) *Index {
	return &Index{entries: entries}
}

// Resolve returns the entry for id, if the index has one
func (x *Index) Resolve(id string) (model.EvidenceEntry, bool) {
	if x == nil || len(x.entries) == 0 {
		return model.EvidenceEntry{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return model.EvidenceEntry{}, false
	}
	entry, ok := x.entries[id]
	return entry, ok
}

// Has reports whether id resolves
func (x *Index) Has(id string) bool {
	_, ok := x.Resolve(id)
	return ok
}

// TierOf returns the source tier of id, or TierUnknown when id does not resolve
func (x *Index) TierOf(id string) model.SourceTier {
	entry, ok := x.Resolve(id)
	if !ok {
		return model.TierUnknown
	}
	return entry.SourceTier
}

// Label returns a short human label for id: its title, else its URL
func (x *Index) Label(id string) string {
	entry, ok := x.Resolve(id)
	if !ok {
		return ""
	}
	if entry.Title != "" {
		return entry.Title
	}
	return entry.URL
}

// ResolveAll returns the distinct resolvable IDs across all groups, in the
// order they first appear. Dangling references are dropped.
func (x *Index) ResolveAll(groups ...model.Refs) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, group := range groups {
		for _, ref := range group {
			id := strings.TrimSpace(ref)
			if seen[id] || !x.Has(id) {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// Len returns the number of indexed entries
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.entries)
}
