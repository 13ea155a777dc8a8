//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package score

import (
	"github.com/ParkerLab/atactk/lib/bins"
	"github.com/ParkerLab/atactk/lib/feature"
)

// ReduceScores sums every resolution consecutive scores. A trailing
// window shorter than the resolution is summed as is. At resolution 1 the
// scores are returned unchanged.
func ReduceScores(scores []int, resolution int) []int {
	if resolution == 1 {
		return scores
	}
	reduced := make([]int, 0, (len(scores)+resolution-1)/resolution)
	for i := 0; i < len(scores); i += resolution {
		sum := 0
		for j := i; j < i+resolution && j < len(scores); j++ {
			sum += scores[j]
		}
		reduced = append(reduced, sum)
	}
	return reduced
}

// GroupRow returns the counts recorded in the tree for one fragment size
// group around the feature: the upstream flank reduced at the group's
// resolution, then the feature body at single base resolution, then the
// downstream flank reduced again.
func GroupRow(t *Tree, group bins.Group, iGroup int, feat feature.ExtendedFeature) []int {
	ext := feat.Extension
	length := feat.Length()
	nFlank := (ext + group.Resolution - 1) / group.Resolution
	row := make([]int, 0, 2*nFlank+length)
	flank := make([]int, ext)
	for i := 0; i < ext; i++ {
		flank[i] = t.Get(i-ext, iGroup)
	}
	row = append(row, ReduceScores(flank, group.Resolution)...)
	for p := 0; p < length; p++ {
		row = append(row, t.Get(p, iGroup))
	}
	for i := 0; i < ext; i++ {
		flank[i] = t.Get(length+i, iGroup)
	}
	return append(row, ReduceScores(flank, group.Resolution)...)
}
