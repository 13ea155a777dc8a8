//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

// Package bins parses fragment size bin groups and assigns aligned
// fragments to them by template length.
package bins

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/biogo/store/interval"
)

// Range is a closed range of fragment lengths.
type Range struct {
	Min, Max int
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Group is one or more fragment length ranges scored together at a common
// resolution. In the extended region around a feature, cut point or
// midpoint counts are summed every Resolution bases; within the feature
// itself every base is scored on its own.
type Group struct {
	Ranges     []Range
	Resolution int
}

// Key returns the group's name in aggregate output, each range as min_max,
// joined with commas.
func (g Group) Key() string {
	parts := make([]string, len(g.Ranges))
	for i, r := range g.Ranges {
		parts[i] = fmt.Sprintf("%d_%d", r.Min, r.Max)
	}
	return strings.Join(parts, ",")
}

// LowerBound returns the smallest fragment length covered by the group.
func (g Group) LowerBound() int {
	lb := g.Ranges[0].Min
	for _, r := range g.Ranges[1:] {
		if r.Min < lb {
			lb = r.Min
		}
	}
	return lb
}

// Spec is an ordered list of bin groups. Fragment lengths not covered by
// any group are excluded from scoring.
type Spec struct {
	Groups []Group

	tree      *interval.IntTree
	maxLength int
}

// Parse reads a bin specification such as
//
//	(36-149 1) (150-224 225-324 2) (325-400 5)
//
// where each parenthesized group lists one or more min-max fragment length
// ranges followed by the group's resolution. Ranges given backward are
// corrected with a warning, and ranges may not overlap, even across groups.
func Parse(s string) (*Spec, error) {
	var groups []Group
	rest := s
	iGroup := 0
	for {
		open := strings.IndexByte(rest, '(')
		if open == -1 {
			if trailing := strings.TrimSpace(rest); trailing != "" {
				return nil, fmt.Errorf("Unexpected %q in bins", trailing)
			}
			break
		}
		if lead := strings.TrimSpace(rest[:open]); lead != "" {
			return nil, fmt.Errorf("Unexpected %q in bins", lead)
		}
		length := strings.IndexByte(rest[open:], ')')
		if length == -1 {
			return nil, fmt.Errorf("Unbalanced parenthesis in bins")
		}
		group, err := parseGroup(rest[open+1:open+length], iGroup)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
		rest = rest[open+length+1:]
		iGroup++
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("No bins specified")
	}

	for _, g := range groups[1:] {
		if g.Resolution != groups[0].Resolution {
			fmt.Fprintln(os.Stderr, "Warning: We've found we usually get better results using the same resolution in each bin.")
			break
		}
	}

	// Flatten ranges across groups, sort, check for overlaps.
	var flat []Range
	for _, g := range groups {
		flat = append(flat, g.Ranges...)
	}
	sort.Slice(flat, func(i, j int) bool {
		if flat[i].Min != flat[j].Min {
			return flat[i].Min < flat[j].Min
		}
		return flat[i].Max < flat[j].Max
	})
	for i := 1; i < len(flat); i++ {
		if flat[i].Min <= flat[i-1].Max {
			return nil, fmt.Errorf("Bin %d-%d overlaps %d-%d.", flat[i].Min, flat[i].Max, flat[i-1].Min, flat[i-1].Max)
		}
	}

	sp := &Spec{Groups: groups, tree: &interval.IntTree{}}
	var uid uintptr
	for gi, g := range groups {
		for _, r := range g.Ranges {
			iv := lengthInterval{start: r.Min, end: r.Max + 1, uid: uid, group: gi}
			if err := sp.tree.Insert(iv, false); err != nil {
				return nil, err
			}
			uid++
			if r.Max > sp.maxLength {
				sp.maxLength = r.Max
			}
		}
	}
	sp.tree.AdjustRanges()
	return sp, nil
}

func parseGroup(body string, iGroup int) (Group, error) {
	fields := strings.Fields(body)
	if len(fields) < 2 {
		return Group{}, fmt.Errorf("Bin group %d is malformed.", iGroup)
	}
	resolution, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil || resolution < 1 {
		return Group{}, fmt.Errorf("Resolution in bin group %d is not a positive integer.", iGroup)
	}
	ranges := make([]Range, 0, len(fields)-1)
	for i, f := range fields[:len(fields)-1] {
		parts := strings.Split(f, "-")
		if len(parts) != 2 {
			return Group{}, fmt.Errorf("Bin %d in group %d is malformed.", i, iGroup)
		}
		lo, err1 := strconv.Atoi(parts[0])
		hi, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return Group{}, fmt.Errorf("Bin %d in group %d is malformed.", i, iGroup)
		}
		if lo > hi {
			lo, hi = hi, lo
			fmt.Fprintf(os.Stderr, "Bin %s specified backward; corrected to %d-%d\n", f, lo, hi)
		}
		ranges = append(ranges, Range{Min: lo, Max: hi})
	}
	return Group{Ranges: ranges, Resolution: resolution}, nil
}

// Validate checks that every group's resolution divides the extension
// evenly, so that reduced flanking windows line up with the feature
// boundary.
func (sp *Spec) Validate(extension int) error {
	for _, g := range sp.Groups {
		for _, r := range g.Ranges {
			if extension%g.Resolution != 0 {
				return fmt.Errorf("Bin %d-%d resolution %d is not a divisor of extension %d", r.Min, r.Max, g.Resolution, extension)
			}
		}
	}
	return nil
}

// Assign returns the index of the group covering the fragment length.
func (sp *Spec) Assign(length int) (int, bool) {
	q := lengthInterval{start: length, end: length + 1}
	for _, iv := range sp.tree.Get(q) {
		return iv.(lengthInterval).group, true
	}
	return 0, false
}

// MaxLength returns the largest fragment length covered by any group.
func (sp *Spec) MaxLength() int {
	return sp.maxLength
}
