package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunOnce(t *testing.T) {
	t.Parallel()

	s := NewScheduler()
	ran := 0
	s.AddJob("count", time.Hour, func(_ context.Context) error {
		ran++
		return nil
	})

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, 1, ran)
}

func TestScheduler_RunOnceReturnsJobError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	s := NewScheduler()
	s.AddJob("failing", time.Hour, func(_ context.Context) error {
		return boom
	})

	err := s.RunOnce(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failing")
}

func TestScheduler_DuplicateJobNamePanics(t *testing.T) {
	t.Parallel()

	s := NewScheduler()
	s.AddJob("rollover", time.Hour, func(_ context.Context) error { return nil })
	assert.Panics(t, func() {
		s.AddJob("rollover", time.Minute, func(_ context.Context) error { return nil })
	})
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	t.Parallel()

	s := NewScheduler()
	ran := make(chan struct{}, 1)
	s.AddJob("immediate", time.Hour, func(_ context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run at start")
	}
	s.Stop()
}

func TestScheduler_PanickingJobIsContained(t *testing.T) {
	t.Parallel()

	s := NewScheduler()
	s.AddJob("panicky", time.Hour, func(_ context.Context) error {
		panic("kaboom")
	})

	// Start + Stop must survive the panic inside the job goroutine.
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()
}
