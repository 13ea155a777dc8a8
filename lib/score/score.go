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

	"github.com/ParkerLab/atactk/lib/bins"
	"github.com/ParkerLab/atactk/lib/esam"
	"github.com/ParkerLab/atactk/lib/feature"
)

const (
	ModeCut = iota
	ModeMidpoint
)

// RegionSource supplies the aligned records overlapping a region of a
// reference sequence.
type RegionSource interface {
	Query(chrom string, start, end int) ([]*sam.Record, error)
}

// Scorer counts fragment cut points or midpoints around features.
type Scorer struct {
	Mode   int
	Offset int
	Bins   *bins.Spec
	Filter esam.Filter
}

// Score builds the count tree for one feature from the records src
// returns for its extended region. In midpoint mode the query is widened
// by half the largest binned fragment length, so fragments reaching into
// the region from an alignment outside it still contribute.
func (s *Scorer) Score(src RegionSource, feat feature.ExtendedFeature) (*Tree, error) {
	start, end := feat.RegionStart(), feat.RegionEnd()
	qstart, qend := start, end
	if s.Mode == ModeMidpoint {
		w := s.Bins.MaxLength() / 2
		qstart -= w
		qend += w
	}
	recs, err := src.Query(feat.Chrom, qstart, qend)
	if err != nil {
		return nil, err
	}
	tree := NewTree()
	var seen set.Interface
	if s.Mode == ModeMidpoint {
		// Both mates report the same midpoint; count each fragment once.
		seen = set.New(set.NonThreadSafe)
	}
	for _, r := range recs {
		if !s.Filter.Keep(r) {
			continue
		}
		if seen != nil {
			if seen.Has(r.Name) {
				continue
			}
			seen.Add(r.Name)
		}
		group, ok := s.Bins.Assign(abs(r.TempLen))
		if !ok {
			continue
		}
		var p int
		if s.Mode == ModeMidpoint {
			p = Midpoint(r)
		} else {
			p = CutPoint(r, s.Offset)
		}
		if p < start || p >= end {
			continue
		}
		tree.Add(feat.Position(p), group, 1)
	}
	return tree, nil
}

// Result carries one scored feature from a worker back to the writer.
type Result struct {
	Feature feature.ExtendedFeature
	Tree    *Tree
	Err     error
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
