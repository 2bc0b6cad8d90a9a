package main

// Notes:
// - notifyContext: only observable behavior is tested (stop() and parent
//   cancellation). Real signal delivery is not exercised.

import (
	"context"
	"testing"
)

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("starts live and stop cancels", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		if ctx.Err() != nil {
			t.Fatalf("fresh context already done: %v", ctx.Err())
		}

		stop()
		<-ctx.Done()
	})

	t.Run("follows parent cancellation", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()

		select {
		case <-ctx.Done():
		default:
			t.Fatal("context should be canceled with its parent")
		}
	})
}
