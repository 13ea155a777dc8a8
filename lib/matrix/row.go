//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package matrix

import (
	"strconv"
	"strings"

	"github.com/ParkerLab/atactk/lib/bins"
	"github.com/ParkerLab/atactk/lib/feature"
	"github.com/ParkerLab/atactk/lib/score"
)

// Row returns the discrete matrix row for one feature: the counts of each
// fragment size group around the feature, concatenated in bin group
// order.
func Row(tree *score.Tree, sp *bins.Spec, feat feature.ExtendedFeature) []int {
	var row []int
	for i, group := range sp.Groups {
		row = append(row, score.GroupRow(tree, group, i, feat)...)
	}
	return row
}

// FormatRow renders a row as a tab-separated line without the newline.
func FormatRow(row []int) string {
	fields := make([]string, len(row))
	for i, n := range row {
		fields[i] = strconv.Itoa(n)
	}
	return strings.Join(fields, "\t")
}
