//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package bins

import (
	"fmt"

	"github.com/biogo/store/interval"
)

// Integer-specific intervals over fragment lengths

type lengthInterval struct {
	start, end int
	uid        uintptr
	group      int
}

func (i lengthInterval) Overlap(b interval.IntRange) bool {
	// Half-open interval indexing.
	return i.end > b.Start && i.start < b.End
}

func (i lengthInterval) ID() uintptr {
	return i.uid
}

func (i lengthInterval) Range() interval.IntRange {
	return interval.IntRange{Start: i.start, End: i.end}
}

func (i lengthInterval) String() string {
	return fmt.Sprintf("[%d,%d)#%d", i.start, i.end, i.group)
}
