//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package bigwig

import (
	"fmt"
	"math"
	"os"

	"github.com/pbenner/gonetics"
)

// File provides per-base signal values from a bigWig file.
type File struct {
	path string
	f    *os.File
	r    *gonetics.BigWigReader
}

// Open opens a bigWig file for region queries.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := gonetics.NewBigWigReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("The signal file %s is not a valid bigWig file. (%v)", path, err)
	}
	return &File{path: path, f: f, r: r}, nil
}

// Values returns the signal at each base of [start, end), NaN at bases
// the file does not cover. Coordinates are clamped to the sequence
// bounds.
func (bw *File) Values(chrom string, start, end int) ([]float64, error) {
	length, err := bw.r.Genome.SeqLength(chrom)
	if err != nil {
		return nil, fmt.Errorf("could not find reference %q in %s", chrom, bw.path)
	}
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	if start >= end {
		return nil, nil
	}
	values, _, err := bw.r.QuerySlice(chrom, start, end, gonetics.BinMean, 1, 0, math.NaN())
	if err != nil {
		return nil, err
	}
	return values, nil
}

// Close closes the underlying file.
func (bw *File) Close() error {
	return bw.f.Close()
}
