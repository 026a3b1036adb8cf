// Package baro implements the barometric altitude model used by the
// ProTrack II, including the vendor's SAS (Speed Accurate Sensor)
// temperature correction. All functions are pure; inputs are assumed to be
// in validated numeric ranges once the dump parser has succeeded.
package baro

import "math"

// Device-matching constants. These are the exact values the firmware uses;
// they must not be replaced with textbook ISA approximations.
const (
	scaleHeightMeters  = 44330.8
	seaLevelDecaPa     = 10132.5
	seaLevelMilliBar   = 1013.25
	pressureExponent   = 0.190263
	lapseRatePerMeter  = 0.0065
	sasScalePerDegC    = 0.004
	seaLevelTempC      = 15.0
	GravityMeterPerSec = 9.80665
)

// PressureToMeter converts a deca-Pascal pressure reading to an altitude in
// meters relative to groundLevelMeter, using the international standard
// atmosphere barometric formula.
func PressureToMeter(readingDecaPa, groundLevelMeter float64) float64 {
	return scaleHeightMeters*(1.0-math.Pow(readingDecaPa/seaLevelDecaPa, pressureExponent)) - groundLevelMeter
}

// GroundLevelMeter derives the ground reference altitude from the ground
// pressure header field read as deca-Pascals (current layout path).
func GroundLevelMeter(groundPressureDecaPa float64) float64 {
	return PressureToMeter(groundPressureDecaPa, 0)
}

// GroundLevelMeterFromMilliBar derives the ground reference altitude from a
// millibar pressure (legacy layout path). Numerically this tracks the
// deca-Pascal path, but the two stay separate code paths because the
// originating firmware treats the header field differently per layout.
func GroundLevelMeterFromMilliBar(groundPressureMilliBar float64) float64 {
	return scaleHeightMeters * (1.0 - math.Pow(groundPressureMilliBar/seaLevelMilliBar, pressureExponent))
}

// SASCorrection is the per-jump thermal correction applied to barometric
// altitudes. It is computed once per file from the exit-index pressure
// sample and the ground pressure, then applied to every sample.
type SASCorrection struct {
	// ICAOTempC is the standard-atmosphere temperature estimate at exit
	// altitude, rounded to whole degrees.
	ICAOTempC int

	// Scale is 1 + ICAOTempC*0.004.
	Scale float64

	// Offset is hs - ht: the ground altitude under the uncorrected formula
	// minus the same altitude under the temperature-corrected formula.
	Offset float64
}

// NewSASCorrection builds the correction from the pressure sample at the
// exit index and the ground-level pressure, both in deca-Pascals.
func NewSASCorrection(exitReadingDecaPa, groundPressureDecaPa float64) SASCorrection {
	rawExit := PressureToMeter(exitReadingDecaPa, 0)
	icao := int(math.Round(seaLevelTempC - rawExit*lapseRatePerMeter))
	scale := 1.0 + float64(icao)*sasScalePerDegC
	hs := PressureToMeter(groundPressureDecaPa, 0)
	ht := hs * scale
	return SASCorrection{
		ICAOTempC: icao,
		Scale:     scale,
		Offset:    hs - ht,
	}
}

// Altitude returns the SAS-corrected altitude for one pressure reading,
// relative to groundLevelMeter.
func (c SASCorrection) Altitude(readingDecaPa, groundLevelMeter float64) float64 {
	return PressureToMeter(readingDecaPa, groundLevelMeter)*c.Scale + c.Offset
}
