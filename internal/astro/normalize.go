// Package astro holds the modular arithmetic both tidal models share, plus a
// thin ephemeris wrapper for deriving a reference new moon.
//
// The models wrap values in two domains, time (seconds modulo a period) and
// phase (radians modulo 2π). Both wraps go through NormalizeMod so the
// negative-remainder correction lives in exactly one place.
package astro

import "math"

// TwoPi is one full turn in radians.
const TwoPi = 2 * math.Pi

// NormalizeMod maps x into [0, m) for positive m. Go's math.Mod keeps the sign
// of x, so a negative remainder is corrected by adding one period; a result
// that rounds up to exactly m wraps to zero.
func NormalizeMod(x, m float64) float64 {
	y := math.Mod(x, m)
	if y < 0 {
		y += m
	}
	if y >= m {
		y = 0
	}
	return y
}

// NormalizeAngle maps an angle in radians into [0, 2π).
func NormalizeAngle(x float64) float64 {
	return NormalizeMod(x, TwoPi)
}
