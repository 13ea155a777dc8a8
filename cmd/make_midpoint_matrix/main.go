//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/ParkerLab/atactk/lib/bins"
	"github.com/ParkerLab/atactk/lib/cli"
	"github.com/ParkerLab/atactk/lib/esam"
	"github.com/ParkerLab/atactk/lib/feature"
	"github.com/ParkerLab/atactk/lib/matrix"
	"github.com/ParkerLab/atactk/lib/pool"
	"github.com/ParkerLab/atactk/lib/score"
)

var version = "DEV"

func main() {
	// Arguments: General
	var nWorker int
	var verbose, printVersion bool
	flag.IntVar(&nWorker, "parallel", 1, "Number of parallel scoring worker(s)")
	flag.BoolVar(&verbose, "verbose", false, "Verbose")
	flag.BoolVar(&printVersion, "version", false, "Print version and quit")
	// Arguments: Input
	var pathBAM, pathFeatures string
	flag.StringVar(&pathBAM, "path_bam", "", "Path to indexed BAM file with aligned reads")
	flag.StringVar(&pathFeatures, "path_features", "", "Path to BED file with features to score (stdin with -)")
	// Arguments: Read selection
	var includeFlagsRaw, excludeFlagsRaw string
	var minQuality int
	flag.StringVar(&includeFlagsRaw, "include_flags", "83,99,147,163", "SAM flag(s) a read must match to be scored (comma separated)")
	flag.StringVar(&excludeFlagsRaw, "exclude_flags", "4,8", "SAM flag(s) excluding a read from scoring (comma separated)")
	flag.IntVar(&minQuality, "quality", 30, "Minimum mapping quality of a scored read")
	// Arguments: Scoring
	var binsRaw string
	var extension int
	var discrete, aggregate bool
	flag.StringVar(&binsRaw, "bins", "", "Fragment size bin groups and resolutions, e.g. '(36-149 1) (150-224 225-324 2) (325-400 5)'")
	flag.IntVar(&extension, "extension", 100, "Number of bases scored on each side of the features")
	flag.BoolVar(&discrete, "discrete", false, "Write the discrete matrix: one row of counts per feature")
	flag.BoolVar(&aggregate, "aggregate", false, "Write the aggregate matrix: counts summed over all features")
	// Arguments: Output
	var pathOutput, outputZip string
	flag.StringVar(&pathOutput, "path_output", "-", "Path to output matrix (stdout with -)")
	flag.StringVar(&outputZip, "output_zip", "", "Compress output: 'gz', 'lz4' or 'lz4hc' (default by path suffix)")
	// Arguments: Parse
	flag.Parse()

	// Version
	if printVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Max CPU
	runtime.GOMAXPROCS(nWorker * 2)

	// Time start
	var timeStart time.Time
	if verbose {
		timeStart = time.Now()
	}

	// Check arguments
	if len(pathBAM) == 0 {
		log.Fatal("No BAM input")
	} else if _, err := os.Stat(pathBAM); os.IsNotExist(err) {
		log.Fatalln(pathBAM, "not found")
	}
	if len(pathFeatures) == 0 {
		log.Fatal("No feature input")
	}
	if discrete == aggregate {
		log.Fatal("Exactly one of -discrete or -aggregate is required")
	}

	// Parse raw arguments
	sp, err := bins.Parse(binsRaw)
	if err != nil {
		log.Fatal(err)
	}
	if err = sp.Validate(extension); err != nil {
		log.Fatal(err)
	}
	flt := esam.Filter{MinQuality: byte(minQuality)}
	if flt.Include, err = esam.ParseFlags(includeFlagsRaw); err != nil {
		log.Fatal(err)
	}
	if flt.Exclude, err = esam.ParseFlags(excludeFlagsRaw); err != nil {
		log.Fatal(err)
	}

	// Read features
	features, _, err := feature.Read(pathFeatures, extension)
	if err != nil {
		log.Fatal(err)
	}
	if verbose {
		timeNow := time.Now()
		fmt.Fprintf(os.Stderr, "%.1fmin - Read %d features from %s\n", timeNow.Sub(timeStart).Minutes(), len(features), pathFeatures)
	}

	// Open one alignment file handle per worker
	if nWorker < 1 {
		nWorker = 1
	}
	afs := make([]*esam.File, nWorker)
	for i := range afs {
		if afs[i], err = esam.Open(pathBAM); err != nil {
			log.Fatal(err)
		}
		defer afs[i].Close()
	}

	// Open output
	out, err := matrix.Open(pathOutput, outputZip)
	if err != nil {
		log.Fatal(err)
	}

	scorer := &score.Scorer{Mode: score.ModeMidpoint, Bins: sp, Filter: flt}

	var table *matrix.Table
	if aggregate {
		table = matrix.NewTable(sp)
	}

	ctx, stop := cli.SignalContext(cli.DefaultGrace)
	defer stop()

	// Score features
	var nDone, nFailed int
	timeLog := timeStart
	err = pool.Map(ctx, nWorker, features,
		func(ctx context.Context, iWorker int, feat feature.ExtendedFeature) (score.Result, error) {
			tree, err := scorer.Score(afs[iWorker], feat)
			return score.Result{Feature: feat, Tree: tree, Err: err}, nil
		},
		func(res score.Result) error {
			nDone++
			if res.Err != nil {
				nFailed++
				fmt.Fprintf(os.Stderr, "Warning: could not score feature %s: %v\n", res.Feature, res.Err)
				return nil
			}
			if aggregate {
				table.Add(res.Tree, res.Feature)
			} else if _, err := out.WriteString(matrix.FormatRow(matrix.Row(res.Tree, sp, res.Feature)) + "\n"); err != nil {
				return err
			}
			if verbose {
				timeNow := time.Now()
				if timeNow.Sub(timeLog).Minutes() > 1. {
					fmt.Fprintf(os.Stderr, "%.1fmin - %d of %d features scored\n", timeNow.Sub(timeStart).Minutes(), nDone, len(features))
					timeLog = timeNow
				}
			}
			return nil
		})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Fatal("Interrupted")
		}
		log.Fatal(err)
	}

	if aggregate {
		if err = table.WriteTo(out); err != nil {
			log.Fatal(err)
		}
	}
	if err = out.Close(); err != nil {
		log.Fatal(err)
	}

	if nFailed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d features could not be scored\n", nFailed, len(features))
	}
	if verbose {
		timeEnd := time.Now()
		fmt.Fprintf(os.Stderr, "%.1fmin - Done %d features\n", timeEnd.Sub(timeStart).Minutes(), nDone)
	}
}
