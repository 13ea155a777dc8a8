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
	"gopkg.in/fatih/set.v0"

	"github.com/ParkerLab/atactk/lib/esam"
	"github.com/ParkerLab/atactk/lib/feature"
)

// Midpoint returns the position of the center of the record's fragment:
// the leftmost fragment position plus half the fragment length, rounded
// down. Both mates of a pair report the same midpoint. TempLen is negative
// on the rightmost mate, placing the fragment start left of the alignment
// end.
func Midpoint(r *sam.Record) int {
	if r.Flags&sam.Reverse != 0 {
		return r.End() + halfFloor(r.TempLen)
	}
	return r.Start() + halfFloor(r.TempLen)
}

func halfFloor(n int) int {
	if n >= 0 {
		return n / 2
	}
	return -((1 - n) / 2)
}

// Observation describes one distinct fragment whose midpoint fell in the
// extended region around a feature.
type Observation struct {
	FeatureCenter int
	Midpoint      int
	Distance      int
	FragmentSize  int
	Side          string
}

// Observe reports every qualifying fragment around the feature: its
// midpoint, the midpoint's distance to the feature center, its length,
// and the side of the center its cut points map to. Distances are negated
// on reverse-strand features so that negative always means upstream.
// Fragments are counted once, whichever mate is seen first.
func Observe(src RegionSource, flt esam.Filter, offset int, feat feature.ExtendedFeature) ([]Observation, error) {
	recs, err := src.Query(feat.Chrom, feat.RegionStart(), feat.RegionEnd())
	if err != nil {
		return nil, err
	}
	center := feat.Center()
	seen := set.New(set.NonThreadSafe)
	var obs []Observation
	for _, r := range recs {
		if !flt.Keep(r) {
			continue
		}
		if seen.Has(r.Name) {
			continue
		}
		seen.Add(r.Name)
		midpoint := Midpoint(r)
		if midpoint < feat.RegionStart() || midpoint >= feat.RegionEnd() {
			continue
		}
		distance := midpoint - center
		if feat.IsReverse() {
			distance = -distance
		}
		obs = append(obs, Observation{
			FeatureCenter: center,
			Midpoint:      midpoint,
			Distance:      distance,
			FragmentSize:  abs(r.TempLen),
			Side:          RelativeSide(r, offset, feat),
		})
	}
	return obs, nil
}
