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

	"github.com/ParkerLab/atactk/lib/bigwig"
	"github.com/ParkerLab/atactk/lib/cli"
	"github.com/ParkerLab/atactk/lib/feature"
	"github.com/ParkerLab/atactk/lib/matrix"
	"github.com/ParkerLab/atactk/lib/pool"
)

var version = "DEV"

type result struct {
	feature feature.ExtendedFeature
	stats   bigwig.Stats
	covered bool
	err     error
}

func main() {
	// Arguments: General
	var nWorker int
	var verbose, printVersion bool
	flag.IntVar(&nWorker, "parallel", 1, "Number of parallel measuring worker(s)")
	flag.BoolVar(&verbose, "verbose", false, "Verbose")
	flag.BoolVar(&printVersion, "version", false, "Print version and quit")
	// Arguments: Input
	var pathBigWig, pathFeatures string
	flag.StringVar(&pathBigWig, "path_bigwig", "", "Path to bigWig file with coverage signal")
	flag.StringVar(&pathFeatures, "path_features", "", "Path to BED file with features to measure (stdin with -)")
	// Arguments: Output
	var pathOutput, outputZip string
	flag.StringVar(&pathOutput, "path_output", "-", "Path to output report (stdout with -)")
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
	if len(pathBigWig) == 0 {
		log.Fatal("No bigWig input")
	} else if _, err := os.Stat(pathBigWig); os.IsNotExist(err) {
		log.Fatalln(pathBigWig, "not found")
	}
	if len(pathFeatures) == 0 {
		log.Fatal("No feature input")
	}

	// Read features
	features, _, err := feature.Read(pathFeatures, 0)
	if err != nil {
		log.Fatal(err)
	}
	if verbose {
		timeNow := time.Now()
		fmt.Fprintf(os.Stderr, "%.1fmin - Read %d features from %s\n", timeNow.Sub(timeStart).Minutes(), len(features), pathFeatures)
	}

	// Open one signal file handle per worker
	if nWorker < 1 {
		nWorker = 1
	}
	bws := make([]*bigwig.File, nWorker)
	for i := range bws {
		if bws[i], err = bigwig.Open(pathBigWig); err != nil {
			log.Fatal(err)
		}
		defer bws[i].Close()
	}

	// Open output
	out, err := matrix.Open(pathOutput, outputZip)
	if err != nil {
		log.Fatal(err)
	}
	if _, err = out.WriteString("Chrom\tStart\tEnd\tName\tScore\tStrand\tMean\tMedian\tMin\tMax\tStd\tCoverage\n"); err != nil {
		log.Fatal(err)
	}

	ctx, stop := cli.SignalContext(cli.DefaultGrace)
	defer stop()

	// Measure features
	var nDone, nFailed int
	timeLog := timeStart
	err = pool.Map(ctx, nWorker, features,
		func(ctx context.Context, iWorker int, feat feature.ExtendedFeature) (result, error) {
			values, err := bws[iWorker].Values(feat.Chrom, feat.Start, feat.End)
			if err != nil {
				return result{feature: feat, err: err}, nil
			}
			stats, covered := bigwig.Summarize(values)
			return result{feature: feat, stats: stats, covered: covered}, nil
		},
		func(res result) error {
			nDone++
			feat := res.feature
			if res.err != nil {
				nFailed++
				fmt.Fprintf(os.Stderr, "Warning: could not measure feature %s: %v\n", feat, res.err)
			}
			var err error
			if res.err != nil || !res.covered {
				_, err = fmt.Fprintf(out, "%s\t%d\t%d\t%s\t%s\t%s\tNA\tNA\tNA\tNA\tNA\tNA\n", feat.Chrom, feat.Start, feat.End, feat.Name, feat.Score, feat.Strand)
			} else {
				st := res.stats
				_, err = fmt.Fprintf(out, "%s\t%d\t%d\t%s\t%s\t%s\t%g\t%g\t%g\t%g\t%g\t%g\n", feat.Chrom, feat.Start, feat.End, feat.Name, feat.Score, feat.Strand, st.Mean, st.Median, st.Min, st.Max, st.Std, st.Coverage)
			}
			if err != nil {
				return err
			}
			if verbose {
				timeNow := time.Now()
				if timeNow.Sub(timeLog).Minutes() > 1. {
					fmt.Fprintf(os.Stderr, "%.1fmin - %d of %d features measured\n", timeNow.Sub(timeStart).Minutes(), nDone, len(features))
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

	if err = out.Close(); err != nil {
		log.Fatal(err)
	}

	if nFailed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d features could not be measured\n", nFailed, len(features))
	}
	if verbose {
		timeEnd := time.Now()
		fmt.Fprintf(os.Stderr, "%.1fmin - Done %d features\n", timeEnd.Sub(timeStart).Minutes(), nDone)
	}
}
