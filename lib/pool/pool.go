//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package pool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type task[T any] struct {
	seq  int
	item T
}

type result[R any] struct {
	seq int
	val R
}

// Map runs work over items on nWorker goroutines and hands every value to
// emit in input order, regardless of which worker finished first. Workers
// are told their index so each can own long-lived resources, alignment
// file handles for one. The first work or emit error cancels the
// remaining work and is returned.
func Map[T, R any](ctx context.Context, nWorker int, items []T, work func(ctx context.Context, iWorker int, item T) (R, error), emit func(R) error) error {
	if nWorker < 1 {
		nWorker = 1
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	chItem := make(chan task[T], nWorker*10)
	chResult := make(chan result[R], nWorker*10)

	g.Go(func() error {
		defer close(chItem)
		for i, item := range items {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case chItem <- task[T]{seq: i, item: item}:
			}
		}
		return nil
	})

	g.Go(func() error {
		defer close(chResult)
		wg, wgctx := errgroup.WithContext(gctx)
		for i := 0; i < nWorker; i++ {
			iWorker := i
			wg.Go(func() error {
				for t := range chItem {
					val, err := work(wgctx, iWorker, t.item)
					if err != nil {
						return err
					}
					select {
					case <-wgctx.Done():
						return wgctx.Err()
					case chResult <- result[R]{seq: t.seq, val: val}:
					}
				}
				return nil
			})
		}
		return wg.Wait()
	})

	// Reorder by sequence number, emitting as far as the stream is
	// contiguous.
	var emitErr error
	pending := make(map[int]R)
	next := 0
	for r := range chResult {
		if emitErr != nil {
			continue
		}
		pending[r.seq] = r.val
		for {
			val, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			if err := emit(val); err != nil {
				emitErr = err
				cancel()
				break
			}
			next++
		}
	}

	if err := g.Wait(); err != nil && emitErr == nil {
		return err
	}
	return emitErr
}
