//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package cli

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestSignalContextStop(t *testing.T) {
	c := qt.New(t)

	ctx, stop := SignalContext(time.Hour)
	c.Assert(ctx.Err(), qt.IsNil)
	stop()
	c.Assert(errors.Is(ctx.Err(), context.Canceled), qt.IsTrue)
	// A second stop is harmless.
	stop()
}

func TestSignalContextInterrupt(t *testing.T) {
	c := qt.New(t)

	ctx, stop := SignalContext(time.Hour)
	defer stop()

	c.Assert(syscall.Kill(syscall.Getpid(), syscall.SIGINT), qt.IsNil)
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		c.Fatal("context not canceled after SIGINT")
	}
	c.Assert(errors.Is(ctx.Err(), context.Canceled), qt.IsTrue)
}
