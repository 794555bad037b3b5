// Package lunar classifies the tidal range from the position within the
// synodic month.
package lunar

import (
	"fmt"
	"math"

	"github.com/seamarker/tideface/internal/astro"
	"github.com/seamarker/tideface/internal/models"
)

// Classifier labels epochs as spring or neap. Like the tide predictor it is a
// pure function of epoch plus constants validated at construction.
type Classifier struct {
	referenceNewMoon int64
	month            float64
	threshold        float64
}

func NewClassifier(c models.LunarConstants) (*Classifier, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("lunar constants: %w", err)
	}
	return &Classifier{
		referenceNewMoon: int64(c.ReferenceNewMoonEpoch),
		month:            c.SynodicMonthSeconds,
		threshold:        c.SpringThreshold,
	}, nil
}

// Age returns the lunar age at epoch: seconds since the most recent new moon,
// in [0, month). Epochs before the reference new moon wrap the same way.
func (c *Classifier) Age(epoch models.EpochSeconds) float64 {
	return astro.NormalizeMod(float64(int64(epoch)-c.referenceNewMoon), c.month)
}

// MoonAngle returns the position within the synodic month at epoch as an
// angle in [0, 2π): 0 at new moon, π at full moon.
func (c *Classifier) MoonAngle(epoch models.EpochSeconds) float64 {
	return astro.NormalizeAngle(c.Age(epoch) / c.month * astro.TwoPi)
}

// Classify labels the tidal range at epoch. Within about 45° of a new or full
// moon the solar and lunar pulls reinforce and ranges run large (spring);
// around the quarter moons they oppose (neap). The |cos| threshold is an
// empirical cutoff, not derived from any force superposition.
func (c *Classifier) Classify(epoch models.EpochSeconds) models.RangeClass {
	if math.Abs(math.Cos(c.MoonAngle(epoch))) > c.threshold {
		return models.RangeSpring
	}
	return models.RangeNeap
}
