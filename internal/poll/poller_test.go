package poll

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExecutesImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ran := make(chan struct{})
	var once atomic.Bool
	go New("test", time.Hour).Run(ctx, func(context.Context) error {
		if once.CompareAndSwap(false, true) {
			close(ran)
		}
		return nil
	})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run on start")
	}
}

func TestRunTicksOnInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	go New("test", 5*time.Millisecond).Run(ctx, func(context.Context) error {
		runs.Add(1)
		return nil
	})

	require.Eventually(t, func() bool {
		return runs.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRunStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		New("test", 5*time.Millisecond).Run(ctx, func(context.Context) error {
			return nil
		})
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancellation")
	}
}

func TestRunKeepsGoingAfterTaskErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	go New("test", 5*time.Millisecond).Run(ctx, func(context.Context) error {
		runs.Add(1)
		return assert.AnError
	})

	require.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestNewDefaultsNonPositiveInterval(t *testing.T) {
	p := New("test", 0)
	assert.Equal(t, 10*time.Second, p.interval)

	p = New("test", -time.Second)
	assert.Equal(t, 10*time.Second, p.interval)
}
