//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package score

// Tree holds the sparse counts for one feature, keyed by position
// relative to the feature start and then by fragment size group.
type Tree struct {
	counts map[int]map[int]int
}

// NewTree returns an empty count tree.
func NewTree() *Tree {
	return &Tree{counts: make(map[int]map[int]int)}
}

// Add records n events for the group at the relative position.
func (t *Tree) Add(position, group, n int) {
	m, ok := t.counts[position]
	if !ok {
		m = make(map[int]int)
		t.counts[position] = m
	}
	m[group] += n
}

// Get returns the count recorded for the group at the relative position,
// zero when nothing was recorded there.
func (t *Tree) Get(position, group int) int {
	return t.counts[position][group]
}
