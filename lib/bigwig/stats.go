//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package bigwig

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the signal over the covered bases of a region.
type Stats struct {
	Mean     float64
	Median   float64
	Min      float64
	Max      float64
	Std      float64
	Coverage float64
}

// Summarize computes summary statistics over the covered bases of values,
// NaN marking the uncovered ones. Coverage is the covered fraction of the
// region. The second return is false when no base is covered.
func Summarize(values []float64) (Stats, bool) {
	covered := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			covered = append(covered, v)
		}
	}
	if len(covered) == 0 {
		return Stats{}, false
	}
	sort.Float64s(covered)
	return Stats{
		Mean:     stat.Mean(covered, nil),
		Median:   median(covered),
		Min:      floats.Min(covered),
		Max:      floats.Max(covered),
		Std:      stat.PopStdDev(covered, nil),
		Coverage: float64(len(covered)) / float64(len(values)),
	}, true
}

// median of a sorted slice, the mean of the middle pair when even.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
