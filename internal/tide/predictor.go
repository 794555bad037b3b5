// Package tide implements the semi-diurnal phase model: a single dominant
// constituent approximated as a sine wave with a configurable period and a
// local lunitidal lag. It is a first-order approximation, not a tide table.
package tide

import (
	"fmt"
	"math"

	"github.com/seamarker/tideface/internal/astro"
	"github.com/seamarker/tideface/internal/models"
)

// The model crests at phase π/2 and troughs at 3π/2, so elevation tracks
// sin(φ). In the time domain those targets sit a quarter and three quarters of
// the way through the cycle. The convention is a modeling choice carried over
// from the watch face, not a physical truth.
const (
	highCycleFraction = 0.25
	lowCycleFraction  = 0.75
)

// Predictor evaluates the tide wave at a given epoch. It is a pure function
// of epoch plus its constants; construction validates the constants once so
// prediction itself can never fail.
type Predictor struct {
	period float64 // half tide period, seconds
	omega  float64 // angular velocity, rad/s
	shift  int64   // lunitidal interval, seconds
}

func NewPredictor(c models.TidalConstants) (*Predictor, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("tidal constants: %w", err)
	}
	return &Predictor{
		period: float64(c.HalfTidePeriodSeconds),
		omega:  astro.TwoPi / float64(c.HalfTidePeriodSeconds),
		shift:  c.PhaseShiftSeconds,
	}, nil
}

// cyclePosition returns how far into the current tide cycle the shifted epoch
// sits, in seconds in [0, period). The lag is applied as a plain time
// translation before wrapping. Working in whole seconds here keeps the result
// exact for every representable epoch, where wrapping a large angle would
// smear the low bits.
func (p *Predictor) cyclePosition(epoch models.EpochSeconds) float64 {
	return astro.NormalizeMod(float64(int64(epoch)+p.shift), p.period)
}

// Phase returns the tide wave phase at epoch, in [0, 2π).
func (p *Predictor) Phase(epoch models.EpochSeconds) float64 {
	return astro.NormalizeAngle(p.cyclePosition(epoch) * p.omega)
}

// NextEvent reports whichever extremum comes first at epoch and how many
// whole seconds remain until it. Exactly on an extremum the remaining time is
// zero, never a full period; a tie between high and low goes to high.
func (p *Predictor) NextEvent(epoch models.EpochSeconds) models.TideEvent {
	pos := p.cyclePosition(epoch)

	toHigh := astro.NormalizeMod(highCycleFraction*p.period-pos, p.period)
	toLow := astro.NormalizeMod(lowCycleFraction*p.period-pos, p.period)

	isHigh := toHigh <= toLow
	seconds := toLow
	if isHigh {
		seconds = toHigh
	}

	// Round to the nearest second and clamp: float noise at an exact event
	// boundary can land a hair below zero or a hair under a full cycle.
	rounded := int64(math.Floor(seconds + 0.5))
	if rounded < 0 {
		rounded = 0
	}
	if rounded >= int64(p.period) {
		rounded = 0
	}
	return models.TideEvent{IsHigh: isHigh, SecondsUntil: rounded}
}

// Height returns the normalized tidal elevation at epoch in [0, 1], with 1 at
// high water. The watch face shows this as a 00–100 percentage.
func (p *Predictor) Height(epoch models.EpochSeconds) float64 {
	return (1 + math.Sin(p.Phase(epoch))) / 2
}

// Rising reports whether the water level is heading toward high water at
// epoch. It agrees with NextEvent by construction: the level is rising exactly
// when the next extremum is a high tide.
func (p *Predictor) Rising(epoch models.EpochSeconds) bool {
	return p.NextEvent(epoch).IsHigh
}
