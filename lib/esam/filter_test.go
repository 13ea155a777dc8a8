//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package esam

import (
	"testing"

	"github.com/biogo/hts/sam"

	qt "github.com/frankban/quicktest"
)

func defaultFilter() Filter {
	return Filter{
		Include:    []sam.Flags{83, 99, 147, 163},
		Exclude:    []sam.Flags{sam.Unmapped, sam.MateUnmapped},
		MinQuality: 30,
	}
}

func TestFilterKeep(t *testing.T) {
	c := qt.New(t)

	flt := defaultFilter()
	tests := []struct {
		name  string
		flags sam.Flags
		mapQ  byte
		keep  bool
	}{
		{"proper forward read1", 99, 60, true},
		{"proper forward read2", 163, 60, true},
		{"proper reverse read1", 83, 60, true},
		{"proper reverse read2", 147, 60, true},
		{"quality at threshold", 99, 30, true},
		{"low quality", 99, 29, false},
		{"unpaired forward", 0, 60, false},
		{"paired but not proper", sam.Paired | sam.MateReverse | sam.Read1, 60, false},
		{"duplicate bit tolerated", 99 | sam.Duplicate, 60, true},
		{"unmapped", 99 | sam.Unmapped, 60, false},
		{"mate unmapped", 83 | sam.MateUnmapped, 60, false},
	}
	for _, tt := range tests {
		r := &sam.Record{Name: "read", Flags: tt.flags, MapQ: tt.mapQ}
		c.Assert(flt.Keep(r), qt.Equals, tt.keep, qt.Commentf("%s", tt.name))
	}
}

func TestFilterEmptyInclude(t *testing.T) {
	c := qt.New(t)

	// With no include flags nothing matches.
	flt := Filter{MinQuality: 0}
	r := &sam.Record{Name: "read", Flags: 99, MapQ: 60}
	c.Assert(flt.Keep(r), qt.IsFalse)
}

func TestParseFlags(t *testing.T) {
	c := qt.New(t)

	flags, err := ParseFlags("83,99,147,163")
	c.Assert(err, qt.IsNil)
	c.Assert(flags, qt.DeepEquals, []sam.Flags{83, 99, 147, 163})

	flags, err = ParseFlags("4,8")
	c.Assert(err, qt.IsNil)
	c.Assert(flags, qt.DeepEquals, []sam.Flags{sam.Unmapped, sam.MateUnmapped})

	flags, err = ParseFlags("")
	c.Assert(err, qt.IsNil)
	c.Assert(flags, qt.IsNil)

	for _, bad := range []string{"x", "83,", "-1", "65536"} {
		_, err = ParseFlags(bad)
		c.Assert(err, qt.IsNotNil, qt.Commentf("flags %q", bad))
	}
}
