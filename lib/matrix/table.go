//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package matrix

import (
	"fmt"
	"io"
	"math/big"
	"sort"

	"github.com/ParkerLab/atactk/lib/bins"
	"github.com/ParkerLab/atactk/lib/feature"
	"github.com/ParkerLab/atactk/lib/score"
)

type cellKey struct {
	position int
	group    int
}

type cell struct {
	count  int64
	motifs int64
}

// Table accumulates the aggregate matrix: for every position around the
// scored features and every fragment size group, the total event count
// and the number of features whose extended region covered the position.
type Table struct {
	sp    *bins.Spec
	cells map[cellKey]*cell
}

// NewTable returns an empty aggregate table for the bin groups of sp.
func NewTable(sp *bins.Spec) *Table {
	return &Table{sp: sp, cells: make(map[cellKey]*cell)}
}

// Add folds one scored feature into the table. Every position and group
// pair of the feature's region is visited, so rows exist even where no
// event was ever counted.
func (t *Table) Add(tree *score.Tree, feat feature.ExtendedFeature) {
	for p := -feat.Extension; p < feat.Length()+feat.Extension; p++ {
		for g := range t.sp.Groups {
			k := cellKey{p, g}
			cl, ok := t.cells[k]
			if !ok {
				cl = &cell{}
				t.cells[k] = cl
			}
			cl.count += int64(tree.Get(p, g))
			cl.motifs++
		}
	}
}

// WriteTo writes the table as tab-separated text: a header, then one row
// per position and fragment size group, sorted by position and then by
// the group's lowest fragment length. Count fractions are exact
// rationals printed with six decimals.
func (t *Table) WriteTo(w io.Writer) error {
	keys := make([]cellKey, 0, len(t.cells))
	for k := range t.cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].position != keys[j].position {
			return keys[i].position < keys[j].position
		}
		return t.sp.Groups[keys[i].group].LowerBound() < t.sp.Groups[keys[j].group].LowerBound()
	})
	if _, err := io.WriteString(w, "Position\tFragmentSizeBin\tCount\tCountFraction\n"); err != nil {
		return err
	}
	frac := new(big.Rat)
	for _, k := range keys {
		cl := t.cells[k]
		frac.SetFrac64(cl.count, cl.motifs)
		_, err := fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", k.position, t.sp.Groups[k.group].Key(), cl.count, frac.FloatString(6))
		if err != nil {
			return err
		}
	}
	return nil
}
