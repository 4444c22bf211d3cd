package consolidate

import "sort"

// RenameMap maps an old class name to its canonical name. Canonical names
// are never keys.
type RenameMap map[string]string

// Rename is one entry of a RenameMap.
type Rename struct {
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
}

// NewRenameMap builds the map from groups.
func NewRenameMap(groups []Group) RenameMap {
	m := make(RenameMap)
	for _, g := range groups {
		for _, alias := range g.Aliases() {
			m[alias] = g.Canonical
		}
	}
	return m
}

// Sorted returns the entries ordered by old name.
func (m RenameMap) Sorted() []Rename {
	out := make([]Rename, 0, len(m))
	for old, to := range m {
		out = append(out, Rename{Old: old, New: to})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Old < out[j].Old })
	return out
}
