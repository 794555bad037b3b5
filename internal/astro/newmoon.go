package astro

import (
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonphase"
)

// NearestNewMoon returns the instant of the new moon closest to t, from the
// Meeus lunar phase series. The series yields dynamical time, which this
// treats as UTC; the difference is around a minute in recent decades, which is
// far below the resolution of the range classifier this seeds.
func NearestNewMoon(t time.Time) time.Time {
	year := base.JDEToJulianYear(julian.TimeToJD(t))
	return julian.JDToTime(moonphase.New(year))
}
