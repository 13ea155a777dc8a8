//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package feature

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	qt "github.com/frankban/quicktest"
)

func TestParseFeature(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		line string
		want Feature
	}{
		{
			line: "chr1\t1000\t1010",
			want: Feature{Chrom: "chr1", Start: 1000, End: 1010},
		},
		{
			line: "chr1\t1000\t1010\tCTCF",
			want: Feature{Chrom: "chr1", Start: 1000, End: 1010, Name: "CTCF"},
		},
		{
			line: "chr1\t1000\t1010\tCTCF\t17.5\t-",
			want: Feature{Chrom: "chr1", Start: 1000, End: 1010, Name: "CTCF", Score: "17.5", Strand: "-"},
		},
		{
			line: "chrX\t5\t25\tJUND\t.\t+\textra\tfields\tignored",
			want: Feature{Chrom: "chrX", Start: 5, End: 25, Name: "JUND", Score: ".", Strand: "+"},
		},
	}
	for _, tt := range tests {
		feat, err := parseFeature(tt.line)
		c.Assert(err, qt.IsNil)
		c.Assert(feat, qt.Equals, tt.want)
	}

	for _, line := range []string{
		"chr1\t1000",
		"chr1\tstart\t1010",
		"chr1\t1000\tend",
		"chr1\t1010\t1000",
	} {
		_, err := parseFeature(line)
		c.Assert(err, qt.IsNotNil, qt.Commentf("line %q", line))
	}
}

func TestFeatureGeometry(t *testing.T) {
	c := qt.New(t)

	feat := ExtendedFeature{
		Feature:   Feature{Chrom: "chr1", Start: 1000, End: 1010, Strand: "+"},
		Extension: 100,
	}
	c.Assert(feat.Length(), qt.Equals, 10)
	c.Assert(feat.Center(), qt.Equals, 1005)
	c.Assert(feat.RegionStart(), qt.Equals, 900)
	c.Assert(feat.RegionEnd(), qt.Equals, 1110)
	c.Assert(feat.RegionLength(), qt.Equals, 210)

	// Half bases round to even.
	centers := []struct {
		length int
		offset int
	}{
		{length: 3, offset: 2},
		{length: 5, offset: 2},
		{length: 7, offset: 4},
		{length: 8, offset: 4},
	}
	for _, tt := range centers {
		f := Feature{Chrom: "chr1", Start: 1000, End: 1000 + tt.length}
		c.Assert(f.Center(), qt.Equals, 1000+tt.offset, qt.Commentf("length %d", tt.length))
	}
}

func TestPosition(t *testing.T) {
	c := qt.New(t)

	fwd := ExtendedFeature{
		Feature:   Feature{Chrom: "chr1", Start: 1000, End: 1010, Strand: "+"},
		Extension: 100,
	}
	c.Assert(fwd.Position(1000), qt.Equals, 0)
	c.Assert(fwd.Position(1009), qt.Equals, 9)
	c.Assert(fwd.Position(900), qt.Equals, -100)
	c.Assert(fwd.Position(1109), qt.Equals, 109)

	rev := fwd
	rev.Strand = "-"
	c.Assert(rev.Position(1009), qt.Equals, 0)
	c.Assert(rev.Position(1000), qt.Equals, 9)
	c.Assert(rev.Position(1109), qt.Equals, -100)
	c.Assert(rev.Position(900), qt.Equals, 109)

	// The same absolute position maps to mirrored keys on the two strands.
	for pos := fwd.RegionStart(); pos < fwd.RegionEnd(); pos++ {
		c.Assert(rev.Position(pos), qt.Equals, fwd.Length()-1-fwd.Position(pos))
	}
}

func TestRead(t *testing.T) {
	c := qt.New(t)

	dir := c.TempDir()
	path := filepath.Join(dir, "features.bed")
	content := "chr1\t1000\t1010\tCTCF\t200\t+\n" +
		"\n" +
		"chr2\t500\t520\tJUND\t100\t-\n" +
		"chr2\tnot-a-number\t600\n" +
		"chr3\t30\t45\n"
	c.Assert(os.WriteFile(path, []byte(content), 0644), qt.IsNil)

	features, skipped, err := Read(path, 100)
	c.Assert(err, qt.IsNil)
	c.Assert(skipped, qt.Equals, 1)
	c.Assert(features, qt.HasLen, 3)
	c.Assert(features[0].Name, qt.Equals, "CTCF")
	c.Assert(features[0].Extension, qt.Equals, 100)
	c.Assert(features[1].IsReverse(), qt.IsTrue)
	c.Assert(features[2].Feature, qt.Equals, Feature{Chrom: "chr3", Start: 30, End: 45})
}

func TestReadGzipped(t *testing.T) {
	c := qt.New(t)

	dir := c.TempDir()
	path := filepath.Join(dir, "features.bed.gz")
	f, err := os.Create(path)
	c.Assert(err, qt.IsNil)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte("chr1\t1000\t1010\tCTCF\t200\t+\nchr1\t2000\t2012\n"))
	c.Assert(err, qt.IsNil)
	c.Assert(zw.Close(), qt.IsNil)
	c.Assert(f.Close(), qt.IsNil)

	features, skipped, err := Read(path, 50)
	c.Assert(err, qt.IsNil)
	c.Assert(skipped, qt.Equals, 0)
	c.Assert(features, qt.HasLen, 2)
	c.Assert(features[1].RegionStart(), qt.Equals, 1950)
	c.Assert(features[1].RegionEnd(), qt.Equals, 2062)
}
