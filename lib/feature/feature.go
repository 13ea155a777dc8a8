//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

// Package feature reads the BED-like files naming the genomic intervals,
// usually transcription factor motifs, around which aligned fragments are
// counted.
package feature

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/brentp/xopen"
)

// Feature is one record of a BED-like file: the three required fields and
// the first three optional ones. Score and Strand are kept verbatim so
// records can be echoed back in reports.
type Feature struct {
	Chrom  string
	Start  int
	End    int
	Name   string
	Score  string
	Strand string
}

// Length returns the length of the feature
func (feat Feature) Length() int {
	return feat.End - feat.Start
}

// IsReverse reports whether the feature lies on the reverse strand.
func (feat Feature) IsReverse() bool {
	return feat.Strand == "-"
}

// Center returns the reference position of the feature's middle base. For
// odd lengths the half base rounds to even, so a feature and its
// reverse-strand twin share the same center.
func (feat Feature) Center() int {
	return feat.Start + int(math.RoundToEven(float64(feat.Length())/2.0))
}

// ExtendedFeature is a feature plus the fixed number of bases scored on
// either side of it.
type ExtendedFeature struct {
	Feature
	Extension int
}

// RegionStart returns the start of the extended region. It can be negative
// near the start of a reference sequence; alignment queries clamp it.
func (feat ExtendedFeature) RegionStart() int {
	return feat.Start - feat.Extension
}

// RegionEnd returns the end of the extended region, one past its last base.
func (feat ExtendedFeature) RegionEnd() int {
	return feat.End + feat.Extension
}

// RegionLength returns the length of the extended region.
func (feat ExtendedFeature) RegionLength() int {
	return feat.Length() + 2*feat.Extension
}

// Position translates an absolute reference position into the feature's
// frame: 0 is the feature's first base, negative positions are upstream of
// it. On reverse-strand features upstream and downstream swap, keeping
// positions biological.
func (feat ExtendedFeature) Position(pos int) int {
	if feat.IsReverse() {
		return (feat.End - 1) - pos
	}
	return pos - feat.Start
}

func (feat ExtendedFeature) String() string {
	return fmt.Sprintf("%s:%d-%d", feat.Chrom, feat.Start, feat.End)
}

// Read parses features from a tab-separated BED-like file. The file may be
// gzipped, and "-" reads from standard input. The three required fields and
// up to three optional ones are used; extra fields are ignored. Malformed
// records are skipped with a warning and counted in skipped.
func Read(path string, extension int) (features []ExtendedFeature, skipped int, err error) {
	r, err := xopen.Ropen(path)
	if err != nil {
		return nil, 0, err
	}
	defer r.Close()

	iLine := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		iLine++
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		feat, perr := parseFeature(line)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping feature on line %d: %v\n", iLine, perr)
			skipped++
			continue
		}
		features = append(features, ExtendedFeature{Feature: feat, Extension: extension})
	}
	if err = scanner.Err(); err != nil {
		return nil, skipped, err
	}
	return features, skipped, nil
}

func parseFeature(line string) (Feature, error) {
	var feat Feature
	var err error
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return feat, fmt.Errorf("%d field(s), expected at least 3", len(fields))
	}
	feat.Chrom = fields[0]
	if feat.Start, err = strconv.Atoi(fields[1]); err != nil {
		return feat, fmt.Errorf("bad start %q", fields[1])
	}
	if feat.End, err = strconv.Atoi(fields[2]); err != nil {
		return feat, fmt.Errorf("bad end %q", fields[2])
	}
	if feat.End < feat.Start {
		return feat, fmt.Errorf("end %d before start %d", feat.End, feat.Start)
	}
	if len(fields) > 3 {
		feat.Name = fields[3]
	}
	if len(fields) > 4 {
		feat.Score = fields[4]
	}
	if len(fields) > 5 {
		feat.Strand = fields[5]
	}
	return feat, nil
}
