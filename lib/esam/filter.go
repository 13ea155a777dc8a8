//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package esam

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/biogo/hts/sam"
)

// Filter selects aligned records by SAM flag and mapping quality. A record
// is kept when its mapping quality is at least MinQuality, all the bits of
// at least one Include flag are set on it, and no bit of any Exclude flag
// is.
type Filter struct {
	Include    []sam.Flags
	Exclude    []sam.Flags
	MinQuality byte
}

// Keep reports whether the record passes the filter.
func (flt Filter) Keep(r *sam.Record) bool {
	if r.MapQ < flt.MinQuality {
		return false
	}
	included := false
	for _, f := range flt.Include {
		if r.Flags&f == f {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, f := range flt.Exclude {
		if r.Flags&f != 0 {
			return false
		}
	}
	return true
}

// ParseFlags parses a comma separated list of SAM flag combinations, e.g.
// "83,99,147,163".
func ParseFlags(s string) ([]sam.Flags, error) {
	if s == "" {
		return nil, nil
	}
	var flags []sam.Flags
	for _, raw := range strings.Split(s, ",") {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 0xffff {
			return nil, fmt.Errorf("Invalid SAM flag %q", raw)
		}
		flags = append(flags, sam.Flags(v))
	}
	return flags, nil
}
