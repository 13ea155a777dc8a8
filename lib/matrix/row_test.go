//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package matrix

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/ParkerLab/atactk/lib/bins"
	"github.com/ParkerLab/atactk/lib/feature"
	"github.com/ParkerLab/atactk/lib/score"
)

func testFeature(start, end int, strand string, extension int) feature.ExtendedFeature {
	return feature.ExtendedFeature{
		Feature:   feature.Feature{Chrom: "chr1", Start: start, End: end, Name: "m", Score: "0", Strand: strand},
		Extension: extension,
	}
}

func testBins(c *qt.C, s string) *bins.Spec {
	sp, err := bins.Parse(s)
	c.Assert(err, qt.IsNil)
	return sp
}

func TestRowConcatenatesGroups(t *testing.T) {
	c := qt.New(t)

	sp := testBins(c, "(36-149 1) (150-324 2)")
	feat := testFeature(1000, 1005, "+", 10)

	tree := score.NewTree()
	tree.Add(0, 0, 3)
	tree.Add(0, 1, 5)
	tree.Add(-10, 1, 7)

	row := Row(tree, sp, feat)
	// Group one at resolution 1 takes 25 columns, group two at
	// resolution 2 takes 15.
	c.Assert(row, qt.HasLen, 40)
	c.Assert(row[10], qt.Equals, 3)
	c.Assert(row[25], qt.Equals, 7)
	c.Assert(row[30], qt.Equals, 5)
}

// A feature with no qualifying fragments still yields a full row, all
// zero.
func TestRowEmptyTree(t *testing.T) {
	c := qt.New(t)

	sp := testBins(c, "(36-149 1) (150-324 2)")
	row := Row(score.NewTree(), sp, testFeature(1000, 1005, "+", 10))
	c.Assert(row, qt.DeepEquals, make([]int, 40))
}

func TestFormatRow(t *testing.T) {
	c := qt.New(t)

	c.Assert(FormatRow([]int{0, 1, 12}), qt.Equals, "0\t1\t12")
	c.Assert(FormatRow(nil), qt.Equals, "")
}
