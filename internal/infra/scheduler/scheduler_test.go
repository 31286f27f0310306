package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
)

type countingCompleter struct {
	calls chan struct{}
	err   error
}

func (c *countingCompleter) CompleteFinished(ctx context.Context) (int64, error) {
	select {
	case c.calls <- struct{}{}:
	default:
	}
	return 2, c.err
}

func TestRunBookingCompletion_CallsCompleter(t *testing.T) {
	c := &countingCompleter{calls: make(chan struct{}, 1)}

	RunBookingCompletion(context.Background(), c, logger.NewDiscard())

	assert.Len(t, c.calls, 1)
}

func TestRunBookingCompletion_ErrorIsLogged(t *testing.T) {
	c := &countingCompleter{calls: make(chan struct{}, 1), err: errors.New("db down")}

	assert.NotPanics(t, func() {
		RunBookingCompletion(context.Background(), c, logger.NewDiscard())
	})
}

func TestScheduler_RunsBookingCompletionJob(t *testing.T) {
	s, err := New(logger.NewDiscard())
	require.NoError(t, err)

	c := &countingCompleter{calls: make(chan struct{}, 1)}
	require.NoError(t, s.AddBookingCompletion(20*time.Millisecond, c))

	s.Start()
	defer func() { _ = s.Shutdown() }()

	select {
	case <-c.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("booking completion job did not run")
	}
}
