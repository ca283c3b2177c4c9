package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/configd/internal/config"
)

// fakeRunner blocks in Start until Shutdown is called, or fails immediately with startErr.
type fakeRunner struct {
	startErr  error
	stopped   chan struct{}
	shutdowns atomic.Int32
}

func newFakeRunner(startErr error) *fakeRunner {
	return &fakeRunner{startErr: startErr, stopped: make(chan struct{})}
}

func (f *fakeRunner) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return nil
}

func (f *fakeRunner) Shutdown(ctx context.Context) error {
	if f.shutdowns.Add(1) == 1 && f.startErr == nil {
		close(f.stopped)
	}
	return nil
}

func TestServe(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{ShutdownTimeout: time.Second}

	t.Run("shuts-down-on-cancel", func(t *testing.T) {
		api := newFakeRunner(nil)
		metricsRunner := newFakeRunner(nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- serve(ctx, cfg, logger, api, metricsRunner)
		}()

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("serve did not return after cancellation")
		}

		assert.Equal(t, int32(1), api.shutdowns.Load())
		assert.Equal(t, int32(1), metricsRunner.shutdowns.Load())
	})

	t.Run("stops-all-when-one-fails", func(t *testing.T) {
		api := newFakeRunner(nil)
		broken := newFakeRunner(errors.New("address already in use"))

		done := make(chan error, 1)
		go func() {
			done <- serve(context.Background(), cfg, logger, api, broken)
		}()

		select {
		case err := <-done:
			require.Error(t, err)
			assert.Contains(t, err.Error(), "address already in use")
		case <-time.After(5 * time.Second):
			t.Fatal("serve did not return after a server failure")
		}

		assert.Equal(t, int32(1), api.shutdowns.Load())
	})
}
