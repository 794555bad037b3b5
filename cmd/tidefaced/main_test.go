package main

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seamarker/tideface/internal/clock"
	"github.com/seamarker/tideface/internal/config"
	"github.com/seamarker/tideface/internal/lunar"
	"github.com/seamarker/tideface/internal/models"
	"github.com/seamarker/tideface/internal/sched"
	"github.com/seamarker/tideface/internal/tide"
)

// chanRenderer hands each rendered report to the test goroutine, which makes
// the loop's progress observable without sleeps.
type chanRenderer struct {
	ch chan models.FaceReport
}

func (c chanRenderer) Render(r models.FaceReport) error {
	c.ch <- r
	return nil
}

func newTestEngine(t *testing.T) *sched.Scheduler {
	t.Helper()
	cfg := config.New()

	predictor, err := tide.NewPredictor(cfg.Tidal)
	require.NoError(t, err)
	classifier, err := lunar.NewClassifier(cfg.Lunar)
	require.NoError(t, err)
	engine, err := sched.New(predictor, classifier, cfg.RefreshIntervalSeconds)
	require.NoError(t, err)
	return engine
}

func TestRunLoop(t *testing.T) {
	engine := newTestEngine(t)
	clk := clock.NewFake(0)
	tick := make(chan time.Time)
	sig := make(chan os.Signal, 1)
	renderer := chanRenderer{ch: make(chan models.FaceReport, 1)}

	done := make(chan error, 1)
	go func() {
		done <- runLoop(engine, renderer, clk, tick, sig)
	}()

	// First tick: stale scheduler, recompute fires.
	tick <- time.Now()
	report := <-renderer.ch
	assert.Equal(t, models.EpochSeconds(0), report.Epoch)
	assert.Equal(t, int64(14805), report.SecondsUntil)

	// Mid-slot tick: gated, nothing rendered.
	clk.Set(1)
	tick <- time.Now()

	// Next slot boundary: recompute fires again. If the gated tick above had
	// rendered, this would observe epoch 1 instead.
	clk.Set(60)
	tick <- time.Now()
	report = <-renderer.ch
	assert.Equal(t, models.EpochSeconds(60), report.Epoch)

	sig <- syscall.SIGTERM
	require.NoError(t, <-done)
}
