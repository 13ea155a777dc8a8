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
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// DefaultGrace is how long a job gets to wind down after an interrupt
// before it is terminated outright.
const DefaultGrace = 10 * time.Second

// SignalContext returns a context canceled by SIGINT or SIGTERM. After
// the first signal the job gets grace to drain its workers; a second
// signal, or the grace running out, terminates the process immediately.
// The returned stop function releases the signal handler and cancels the
// context.
func SignalContext(grace time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case <-ch:
			cancel()
		case <-done:
			return
		}
		select {
		case <-ch:
		case <-time.After(grace):
		case <-done:
			return
		}
		fmt.Fprintln(os.Stderr, "Exiting forcefully.")
		os.Exit(1)
	}()
	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
			cancel()
		})
	}
	return ctx, stop
}
