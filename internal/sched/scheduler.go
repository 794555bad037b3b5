// Package sched decides when the face must be recomputed. Ticks arrive about
// once a second; actual recomputation happens only when a deadline on a fixed
// time grid has passed, which bounds how often the models run on battery.
package sched

import (
	"fmt"

	"github.com/seamarker/tideface/internal/lunar"
	"github.com/seamarker/tideface/internal/models"
	"github.com/seamarker/tideface/internal/tide"
)

// Scheduler gates the two models behind a recompute deadline. The deadline is
// the only mutable state and belongs to whichever single goroutine handles
// ticks; Compute alone is safe to call from other goroutines.
type Scheduler struct {
	tide     *tide.Predictor
	lunar    *lunar.Classifier
	interval int64

	fresh         bool
	nextRecompute models.EpochSeconds
}

func New(predictor *tide.Predictor, classifier *lunar.Classifier, refreshInterval int64) (*Scheduler, error) {
	if refreshInterval <= 0 {
		return nil, fmt.Errorf("invalid refresh interval: %d", refreshInterval)
	}
	return &Scheduler{
		tide:     predictor,
		lunar:    classifier,
		interval: refreshInterval,
	}, nil
}

// MaybeRecompute runs the models if no valid computation exists yet or the
// grid deadline has passed, and returns the fresh report. Otherwise it
// returns nil, false and the display keeps whatever it last showed.
func (s *Scheduler) MaybeRecompute(now models.EpochSeconds) (*models.FaceReport, bool) {
	if s.fresh && now < s.nextRecompute {
		return nil, false
	}
	report := s.Compute(now)
	s.nextRecompute = nextGridEpoch(now, s.interval)
	s.fresh = true
	return report, true
}

// Compute runs both models at now without touching the schedule.
func (s *Scheduler) Compute(now models.EpochSeconds) *models.FaceReport {
	event := s.tide.NextEvent(now)
	return &models.FaceReport{
		Epoch:        now,
		NextIsHigh:   event.IsHigh,
		SecondsUntil: event.SecondsUntil,
		Hours:        event.Hours(),
		Minutes:      event.Minutes(),
		Range:        s.lunar.Classify(now),
		Height:       s.tide.Height(now),
		Rising:       s.tide.Rising(now),
		MoonAngle:    s.lunar.MoonAngle(now),
	}
}

// Reset discards the schedule so the next tick recomputes immediately, as on
// face activation.
func (s *Scheduler) Reset() {
	s.fresh = false
	s.nextRecompute = 0
}

// NextRecompute reports the current deadline. Meaningful only after the first
// successful MaybeRecompute.
func (s *Scheduler) NextRecompute() models.EpochSeconds {
	return s.nextRecompute
}

// RefreshInterval reports the grid size in seconds.
func (s *Scheduler) RefreshInterval() int64 {
	return s.interval
}

// nextGridEpoch returns the smallest multiple of interval strictly greater
// than now, even when now is itself an exact multiple. Go's % keeps the sign
// of the dividend, so negative epochs need the same remainder correction as
// the angle wrap.
func nextGridEpoch(now models.EpochSeconds, interval int64) models.EpochSeconds {
	rem := int64(now) % interval
	if rem < 0 {
		rem += interval
	}
	return now - models.EpochSeconds(rem) + models.EpochSeconds(interval)
}
