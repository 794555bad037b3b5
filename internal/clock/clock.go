// Package clock abstracts the tick-time source so the engine runs against the
// system clock in production and a scripted clock in tests.
package clock

import (
	"time"

	"github.com/seamarker/tideface/internal/models"
)

// Clock supplies the current absolute time in epoch seconds.
type Clock interface {
	Now() models.EpochSeconds
}

// System reads the operating system clock.
type System struct{}

func (System) Now() models.EpochSeconds {
	return models.EpochSeconds(time.Now().Unix())
}

// Fake is a manually advanced clock for tests.
type Fake struct {
	current models.EpochSeconds
}

func NewFake(start models.EpochSeconds) *Fake {
	return &Fake{current: start}
}

func (f *Fake) Now() models.EpochSeconds { return f.current }

func (f *Fake) Set(t models.EpochSeconds) { f.current = t }

func (f *Fake) Advance(seconds int64) {
	f.current += models.EpochSeconds(seconds)
}
