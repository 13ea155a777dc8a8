//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package score

import (
	"github.com/biogo/hts/sam"

	"github.com/ParkerLab/atactk/lib/feature"
)

// DefaultCutPointOffset is the distance from a read's 5' end to the
// estimated transposase insertion, in bases.
const DefaultCutPointOffset = 4

// CutPoint returns the position of the record's ATAC-seq cut point: offset
// bases inside its 5' end. End is one past the last aligned base, hence
// the extra one on the reverse strand.
func CutPoint(r *sam.Record, offset int) int {
	if r.Flags&sam.Reverse != 0 {
		return r.End() - (offset + 1)
	}
	return r.Start() + offset
}

// FragmentCutPoints returns the positions of both of the cut points in the
// record's fragment, leftmost first. Either mate yields the same pair: the
// far cut point is derived from the template length or the mate start.
func FragmentCutPoints(r *sam.Record, offset int) (int, int) {
	if r.Flags&sam.Reverse != 0 {
		return r.MatePos + offset, r.End() - (offset + 1)
	}
	return r.Start() + offset, r.Start() + r.TempLen - (offset + 1)
}

// RelativeSide classifies the record's fragment against the feature
// center: "L" when both of its cut points map before the center, "R" when
// both map after, and "O" when they span it. Sides swap on reverse-strand
// features so they stay biological.
func RelativeSide(r *sam.Record, offset int, feat feature.ExtendedFeature) string {
	left, right := FragmentCutPoints(r, offset)
	lo, hi := left, right
	if hi < lo {
		lo, hi = hi, lo
	}
	center := feat.Center()
	switch {
	case center > hi:
		if feat.IsReverse() {
			return "R"
		}
		return "L"
	case center < lo:
		if feat.IsReverse() {
			return "L"
		}
		return "R"
	}
	return "O"
}
