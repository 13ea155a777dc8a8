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
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

// Workers finishing out of order must not reorder the output.
func TestMapOrder(t *testing.T) {
	c := qt.New(t)

	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}
	var got []int
	err := Map(context.Background(), 8, items,
		func(ctx context.Context, iWorker, item int) (int, error) {
			// Stagger completion so later items often finish first.
			time.Sleep(time.Duration(item%7) * time.Millisecond)
			return item, nil
		},
		func(item int) error {
			got = append(got, item)
			return nil
		})
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, items)
}

// The emitted stream is byte-identical whatever the parallelism degree.
func TestMapParallelDegrees(t *testing.T) {
	c := qt.New(t)

	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}
	var outputs []string
	for _, nWorker := range []int{1, 2, 8} {
		var buf strings.Builder
		err := Map(context.Background(), nWorker, items,
			func(ctx context.Context, iWorker, item int) (string, error) {
				time.Sleep(time.Duration((item*3)%5) * time.Millisecond)
				return fmt.Sprintf("%d\t%d\n", item, item*item), nil
			},
			func(line string) error {
				_, err := buf.WriteString(line)
				return err
			})
		c.Assert(err, qt.IsNil, qt.Commentf("%d workers", nWorker))
		outputs = append(outputs, buf.String())
	}
	c.Assert(outputs[1], qt.Equals, outputs[0])
	c.Assert(outputs[2], qt.Equals, outputs[0])
}

func TestMapWorkerIndex(t *testing.T) {
	c := qt.New(t)

	items := make([]int, 40)
	err := Map(context.Background(), 4, items,
		func(ctx context.Context, iWorker, item int) (int, error) {
			return iWorker, nil
		},
		func(iWorker int) error {
			if iWorker < 0 || iWorker > 3 {
				return fmt.Errorf("worker index %d out of range", iWorker)
			}
			return nil
		})
	c.Assert(err, qt.IsNil)
}

func TestMapWorkError(t *testing.T) {
	c := qt.New(t)

	items := make([]int, 20)
	for i := range items {
		items[i] = i
	}
	var got []int
	err := Map(context.Background(), 2, items,
		func(ctx context.Context, iWorker, item int) (int, error) {
			if item == 5 {
				return 0, errors.New("spurious alignment")
			}
			return item, nil
		},
		func(item int) error {
			got = append(got, item)
			return nil
		})
	c.Assert(err, qt.ErrorMatches, "spurious alignment")
	// Emission is sequential, so nothing past the failed item appears.
	c.Assert(got, qt.DeepEquals, items[:len(got)])
	c.Assert(len(got) <= 5, qt.IsTrue)
}

func TestMapEmitError(t *testing.T) {
	c := qt.New(t)

	items := make([]int, 20)
	for i := range items {
		items[i] = i
	}
	var got []int
	err := Map(context.Background(), 2, items,
		func(ctx context.Context, iWorker, item int) (int, error) {
			return item, nil
		},
		func(item int) error {
			got = append(got, item)
			if len(got) == 4 {
				return errors.New("broken pipe")
			}
			return nil
		})
	c.Assert(err, qt.ErrorMatches, "broken pipe")
	c.Assert(got, qt.DeepEquals, []int{0, 1, 2, 3})
}

func TestMapCanceled(t *testing.T) {
	c := qt.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Map(ctx, 2, []int{1, 2, 3},
		func(ctx context.Context, iWorker, item int) (int, error) {
			return item, nil
		},
		func(item int) error {
			return nil
		})
	c.Assert(errors.Is(err, context.Canceled), qt.IsTrue)
}
