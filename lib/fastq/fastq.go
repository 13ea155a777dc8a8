//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package fastq

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"
)

// Pair holds the two mates of one sequenced fragment.
type Pair struct {
	R1, R2 *linear.QSeq
}

// PairScanner reads two FASTQ streams in step, pairing mates by record
// order, the convention of read files split by mate.
type PairScanner struct {
	s1, s2 *seqio.Scanner
	pair   Pair
	err    error
}

// NewPairScanner returns a scanner pairing the records of r1 and r2.
func NewPairScanner(r1, r2 io.Reader) *PairScanner {
	return &PairScanner{
		s1: seqio.NewScanner(fastq.NewReader(r1, linear.NewQSeq("", nil, alphabet.DNAredundant, alphabet.Sanger))),
		s2: seqio.NewScanner(fastq.NewReader(r2, linear.NewQSeq("", nil, alphabet.DNAredundant, alphabet.Sanger))),
	}
}

// Next advances both streams one record, returning false at the end of
// either stream or on error.
func (ps *PairScanner) Next() bool {
	if ps.err != nil {
		return false
	}
	ok1 := ps.s1.Next()
	ok2 := ps.s2.Next()
	if !ok1 || !ok2 {
		if err := ps.s1.Error(); err != nil {
			ps.err = err
		} else if err := ps.s2.Error(); err != nil {
			ps.err = err
		} else if ok1 != ok2 {
			ps.err = fmt.Errorf("Unequal numbers of reads in the paired FASTQ files.")
		}
		return false
	}
	ps.pair = Pair{
		R1: ps.s1.Seq().(*linear.QSeq),
		R2: ps.s2.Seq().(*linear.QSeq),
	}
	return true
}

// Pair returns the pair read by the last call to Next.
func (ps *PairScanner) Pair() Pair { return ps.pair }

// Error returns the first error encountered while scanning. It is nil
// when both streams ended cleanly together.
func (ps *PairScanner) Error() error { return ps.err }

// RevComp returns the reverse complement of s, qualities reversed along
// with the letters. The argument is not modified.
func RevComp(s *linear.QSeq) *linear.QSeq {
	rc := s.Clone().(*linear.QSeq)
	rc.RevComp()
	return rc
}
