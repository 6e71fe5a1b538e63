package dispatch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDispatcherRunsSubmittedJobs(t *testing.T) {
	d := New(2, 8, zerolog.Nop())
	d.Start()
	defer d.Stop()

	done := make(chan struct{})
	d.Submit("test-job", func(ctx context.Context) {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("submitted job never ran")
	}
}

func TestDispatcherQueuesBeforeStart(t *testing.T) {
	d := New(1, 4, zerolog.Nop())

	var ran atomic.Int32
	done := make(chan struct{})
	d.Submit("early-job", func(ctx context.Context) {
		ran.Add(1)
		close(done)
	})

	d.Start()
	defer d.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job queued before Start never ran")
	}
	if ran.Load() != 1 {
		t.Errorf("job ran %d times, want 1", ran.Load())
	}
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	d := New(1, 1, zerolog.Nop())

	// Not started, so nothing drains the queue. The first job fills it,
	// the second is dropped without blocking.
	d.Submit("fills-queue", func(ctx context.Context) {})

	submitted := make(chan struct{})
	go func() {
		d.Submit("dropped", func(ctx context.Context) {})
		close(submitted)
	}()

	select {
	case <-submitted:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a full queue")
	}
}

func TestDispatcherStop(t *testing.T) {
	d := New(1, 4, zerolog.Nop())
	d.Start()
	d.Stop()

	// Stop is idempotent and later submissions are dropped, not panics.
	d.Stop()
	d.Submit("after-stop", func(ctx context.Context) {
		t.Error("job ran after Stop")
	})
}

func TestDispatcherStopDrainsWithLiveContext(t *testing.T) {
	d := New(1, 4, zerolog.Nop())
	d.Start()

	var ctxErr atomic.Value
	d.Submit("queued", func(ctx context.Context) {
		// Hold the worker briefly so Stop is already running when the
		// context error is recorded.
		time.Sleep(50 * time.Millisecond)
		ctxErr.Store(ctx.Err() == nil)
	})

	d.Stop()

	live, ok := ctxErr.Load().(bool)
	if !ok {
		t.Fatal("queued job did not run before Stop returned")
	}
	if !live {
		t.Error("queued job observed a canceled context during Stop")
	}
}

func TestDispatcherSubmitDuringStop(t *testing.T) {
	d := New(2, 4, zerolog.Nop())
	d.Start()

	// Hammering Submit while Stop closes the queue must never panic;
	// late submissions are simply dropped.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			d.Submit("concurrent", func(ctx context.Context) {})
		}
	}()

	time.Sleep(time.Millisecond)
	d.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Submit blocked during Stop")
	}
}

func TestDispatcherRecoversPanics(t *testing.T) {
	d := New(1, 4, zerolog.Nop())
	d.Start()
	defer d.Stop()

	d.Submit("panics", func(ctx context.Context) {
		panic("boom")
	})

	done := make(chan struct{})
	d.Submit("survivor", func(ctx context.Context) {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive a panicking job")
	}
}
