package baro

import "math"

// Unit conversions round to the nearest integer with math.Round, i.e.
// half away from zero. CSV output is numeric text compared across
// implementations, so the rounding mode is pinned by tests.

// MiliBarToDecaPa converts millibar to deca-Pascal.
func MiliBarToDecaPa(p float64) float64 { return p * 10.0 }

// MToFt converts meters to whole feet.
func MToFt(m float64) int { return int(math.Round(m * 3.28084)) }

// MsecToMph converts m/s to whole miles per hour.
func MsecToMph(m float64) int { return int(math.Round(m * 2.23694)) }

// MsecToKmh converts m/s to whole km/h.
func MsecToKmh(m float64) int { return int(math.Round(m * 3.6)) }

// MsecToFtsec converts m/s to whole feet per second.
func MsecToFtsec(m float64) int { return int(math.Round(m * 3.28084)) }
