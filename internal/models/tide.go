package models

import (
	"fmt"
)

// EpochSeconds counts whole seconds since the Unix reference instant. It is
// the only time representation the prediction engine consumes; conversion from
// calendar fields is the caller's responsibility.
type EpochSeconds int64

type RangeClass string

const (
	RangeSpring RangeClass = "SPRING"
	RangeNeap   RangeClass = "NEAP"
)

// TideEvent represents the next predicted extremum: which one it is and how
// many seconds remain until it.
type TideEvent struct {
	IsHigh       bool  `json:"isHigh"`
	SecondsUntil int64 `json:"secondsUntil"`
}

// Hours returns the whole hours of the countdown, clamped to the two digits
// the display has for it.
func (e TideEvent) Hours() int {
	h := int(e.SecondsUntil / 3600)
	if h > 99 {
		h = 99
	}
	return h
}

// Minutes returns the minutes part of the countdown, always in 0–59.
func (e TideEvent) Minutes() int {
	return int(e.SecondsUntil % 3600 / 60)
}

// TidalConstants is the immutable calibration of the semi-diurnal model.
// PhaseShiftSeconds is the local lunitidal interval and may be negative.
type TidalConstants struct {
	HalfTidePeriodSeconds int64 `json:"halfTidePeriodSeconds"`
	PhaseShiftSeconds     int64 `json:"phaseShiftSeconds"`
}

// Validate checks if a TidalConstants' fields are valid
func (c TidalConstants) Validate() error {
	if c.HalfTidePeriodSeconds <= 0 {
		return fmt.Errorf("invalid half tide period: %d", c.HalfTidePeriodSeconds)
	}
	return nil
}

// LunarConstants is the immutable calibration of the spring/neap classifier.
// SpringThreshold is compared against |cos(moon angle)|; the default of
// cos 45° marks roughly the week around each new and full moon as spring.
type LunarConstants struct {
	ReferenceNewMoonEpoch EpochSeconds `json:"referenceNewMoonEpoch"`
	SynodicMonthSeconds   float64      `json:"synodicMonthSeconds"`
	SpringThreshold       float64      `json:"springThreshold"`
}

// Validate checks if a LunarConstants' fields are valid
func (c LunarConstants) Validate() error {
	if c.SynodicMonthSeconds <= 0 {
		return fmt.Errorf("invalid synodic month: %f", c.SynodicMonthSeconds)
	}
	if c.SpringThreshold <= 0 || c.SpringThreshold >= 1 {
		return fmt.Errorf("invalid spring threshold: %f", c.SpringThreshold)
	}
	return nil
}

// FaceReport is the full tuple handed to renderers on every recompute: the
// next extremum and countdown, the range class, and the derived extras the
// watch face can show alongside them (normalized height and direction).
type FaceReport struct {
	Epoch        EpochSeconds `json:"epoch"`
	NextIsHigh   bool         `json:"nextIsHigh"`
	SecondsUntil int64        `json:"secondsUntil"`
	Hours        int          `json:"hours"`
	Minutes      int          `json:"minutes"`
	Range        RangeClass   `json:"range"`
	Height       float64      `json:"height"`
	Rising       bool         `json:"rising"`
	MoonAngle    float64      `json:"moonAngle"`
}

// Validate checks if a FaceReport's fields are valid
func (r *FaceReport) Validate() error {
	if r.SecondsUntil < 0 {
		return fmt.Errorf("invalid seconds until: %d", r.SecondsUntil)
	}

	if r.Hours < 0 || r.Hours > 99 {
		return fmt.Errorf("invalid hours: %d", r.Hours)
	}

	if r.Minutes < 0 || r.Minutes > 59 {
		return fmt.Errorf("invalid minutes: %d", r.Minutes)
	}

	switch r.Range {
	case RangeSpring, RangeNeap:
		// Valid class
	default:
		return fmt.Errorf("invalid range class: %s", r.Range)
	}

	if r.Height < 0 || r.Height > 1 {
		return fmt.Errorf("invalid height: %f", r.Height)
	}

	return nil
}
