//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

// Package esam provides indexed access to the aligned reads of a BAM file.
package esam

import (
	"fmt"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
)

// File is a BAM/BAI reader answering region queries. It is not safe for
// concurrent use; open one File per worker.
type File struct {
	path string
	f    *os.File
	r    *bam.Reader
	idx  *bam.Index
	refs map[string]*sam.Reference
}

// Open opens path and its index at path.bai.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := bam.NewReader(f, 1)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("The alignments file %s is not in BAM format. Please supply an indexed BAM file.", path)
	}
	ir, err := os.Open(path + ".bai")
	if err != nil {
		r.Close()
		f.Close()
		return nil, fmt.Errorf("The alignment file %s is not usable. Please supply an indexed BAM file.", path)
	}
	idx, err := bam.ReadIndex(ir)
	ir.Close()
	if err != nil {
		r.Close()
		f.Close()
		return nil, fmt.Errorf("The alignment file %s is not usable. Please supply an indexed BAM file.", path)
	}

	refs := make(map[string]*sam.Reference)
	for _, ref := range r.Header().Refs() {
		refs[ref.Name()] = ref
	}
	return &File{path: path, f: f, r: r, idx: idx, refs: refs}, nil
}

// Query returns the records overlapping the zero-based half-open interval
// from start to end on the named reference. Bounds outside the reference
// are clamped.
func (af *File) Query(chrom string, start, end int) ([]*sam.Record, error) {
	ref, ok := af.refs[chrom]
	if !ok {
		return nil, fmt.Errorf("could not find reference %q in %s", chrom, af.path)
	}
	if start < 0 {
		start = 0
	}
	if end > ref.Len() {
		end = ref.Len()
	}
	if start >= end {
		return nil, nil
	}
	chunks, err := af.idx.Chunks(ref, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get chunks for %s:%d-%d: %v", chrom, start, end, err)
	}
	it, err := bam.NewIterator(af.r, chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to create iterator for %s:%d-%d: %v", chrom, start, end, err)
	}
	var recs []*sam.Record
	for it.Next() {
		rec := it.Record()
		// Chunks can cover records outside the interval proper.
		if rec.Start() < end && rec.End() > start {
			recs = append(recs, rec)
		}
	}
	return recs, it.Close()
}

// Close closes the BAM reader and its file.
func (af *File) Close() error {
	err := af.r.Close()
	if err != nil {
		return err
	}
	return af.f.Close()
}
