// Package protrack reconstructs altitude and speed curves from the raw
// pressure profile of a ProTrack II jump dump.
package protrack

import (
	"protrack-analyzer/baro"
	"protrack-analyzer/dump"
)

// Sampling cadence constants. The device records one pressure sample every
// 0.25 s, with sample 0 taken 2.0 s before nominal exit.
const (
	TimeStep        = 0.25
	TimeInitial     = -2.0
	TimeSpeedStarts = 6.0

	// IndexExit is the fixed sample index where elapsed time is zero.
	IndexExit = int((0.0 - TimeInitial) / TimeStep)

	// Speed lookback windows per flight phase.
	FreefallWindowSamples = 24
	CanopyWindowSamples   = 12
	freefallWindowSeconds = 6.0
	canopyWindowSeconds   = 3.0

	// IndexSpeedStart is the first index with a full freefall lookback
	// window behind it; earlier samples carry no derivative.
	IndexSpeedStart = IndexExit + FreefallWindowSamples

	// NoDeployment is the deployment-index sentinel for profiles that never
	// cross the deployment altitude.
	NoDeployment = -1
)

// IndexToTime maps a sample index to elapsed seconds relative to exit.
func IndexToTime(i int) float64 { return TimeStep*float64(i) + TimeInitial }

// TimeToIndex maps elapsed seconds to the sample index covering it.
func TimeToIndex(t float64) int { return int((t - TimeInitial) / TimeStep) }

// AltitudeSeries holds the reconstructed altitude curves, index-aligned with
// the raw pressure samples. It is built in one forward pass and read-only
// afterwards.
type AltitudeSeries struct {
	// Altitude is the barometric altitude in meters above ground, one entry
	// per pressure sample.
	Altitude []float64

	// SASAltitude is the SAS-corrected altitude, same length and indexing.
	SASAltitude []float64

	// DeploymentIndex is the first index where Altitude drops to or below
	// the deployment altitude, or NoDeployment. First crossing wins; the
	// index is never overwritten by later dips.
	DeploymentIndex int

	// GroundLevelMeter is the per-file ground reference altitude, truncated
	// to whole meters the way the firmware does.
	GroundLevelMeter float64

	// SAS is the per-file thermal correction the SASAltitude curve used.
	SAS baro.SASCorrection
}

// BuildAltitudeSeries walks the pressure samples once, producing the
// parallel altitude curves and detecting the deployment crossing.
func BuildAltitudeSeries(rec *dump.JumpRecord) AltitudeSeries {
	ground := groundReference(rec)
	samples := rec.PressureSamples
	s := AltitudeSeries{
		Altitude:         make([]float64, 0, len(samples)),
		SASAltitude:      make([]float64, 0, len(samples)),
		DeploymentIndex:  NoDeployment,
		GroundLevelMeter: ground,
	}
	if len(samples) == 0 {
		return s
	}

	// The ICAO temperature estimate comes from the exit-index sample; short
	// profiles fall back to their last reading.
	exitIdx := IndexExit
	if exitIdx >= len(samples) {
		exitIdx = len(samples) - 1
	}
	s.SAS = baro.NewSASCorrection(float64(samples[exitIdx]), GroundPressureDecaPa(rec))

	deploy := float64(rec.DeploymentAltitudeMeters)
	for i, p := range samples {
		alt := baro.PressureToMeter(float64(p), ground)
		s.Altitude = append(s.Altitude, alt)
		s.SASAltitude = append(s.SASAltitude, s.SAS.Altitude(float64(p), ground))
		if s.DeploymentIndex == NoDeployment && alt <= deploy {
			s.DeploymentIndex = i
		}
	}
	return s
}

// Len returns the number of samples in the series.
func (s *AltitudeSeries) Len() int { return len(s.Altitude) }

// GroundPressureDecaPa returns the ground-level pressure in deca-Pascals
// under the record's layout convention.
func GroundPressureDecaPa(rec *dump.JumpRecord) float64 {
	if rec.Layout == dump.LayoutV1 {
		return baro.MiliBarToDecaPa(float64(rec.GroundLevelPressure) / 10.0)
	}
	return float64(rec.GroundLevelPressure)
}

// groundReference derives the truncated ground reference altitude. The two
// layout paths stay separate: the legacy layout routes through millibar, the
// current layout reads deca-Pascals directly.
func groundReference(rec *dump.JumpRecord) float64 {
	if rec.Layout == dump.LayoutV1 {
		mb := float64(rec.GroundLevelPressure) / 10.0
		return float64(int(baro.GroundLevelMeterFromMilliBar(mb)))
	}
	return float64(int(baro.GroundLevelMeter(float64(rec.GroundLevelPressure))))
}
