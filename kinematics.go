package protrack

import "protrack-analyzer/baro"

// KinematicSeries holds the windowed finite-difference derivatives of an
// altitude series. Element 0 of every slice corresponds to absolute series
// index StartIndex, not to the start of the altitude series; callers map
// back to elapsed time with TimeAt.
type KinematicSeries struct {
	// StartIndex is the absolute altitude-series index of element 0,
	// fixed at IndexExit + FreefallWindowSamples.
	StartIndex int

	// Speed is the vertical speed in m/s from the barometric altitudes.
	Speed []float64

	// SASSpeed is the vertical speed from the SAS-corrected altitudes.
	SASSpeed []float64

	// Acceleration is the frame-to-frame speed delta in g units. Element 0
	// has no predecessor and stays zero.
	Acceleration []float64
}

// BuildKinematicSeries derives speed and acceleration from a reconstructed
// altitude series. The lookback window is re-evaluated per sample against
// the deployment altitude: 24 samples (6.0 s) while above it, 12 samples
// (3.0 s) at or below. A profile that dips under the threshold and rises
// back over it toggles windows each time; the firmware behaves the same
// way, so the oscillation is preserved rather than latched at the first
// crossing.
func BuildKinematicSeries(s *AltitudeSeries, deploymentAltitudeMeters int) KinematicSeries {
	k := KinematicSeries{StartIndex: IndexSpeedStart}
	n := s.Len()
	if n <= k.StartIndex {
		return k
	}

	deploy := float64(deploymentAltitudeMeters)
	count := n - k.StartIndex
	k.Speed = make([]float64, 0, count)
	k.SASSpeed = make([]float64, 0, count)
	for i := k.StartIndex; i < n; i++ {
		k.Speed = append(k.Speed, windowedSpeed(s.Altitude, i, deploy))
		k.SASSpeed = append(k.SASSpeed, windowedSpeed(s.SASAltitude, i, deploy))
	}

	k.Acceleration = make([]float64, len(k.Speed))
	for j := 1; j < len(k.Speed); j++ {
		k.Acceleration[j] = (k.Speed[j] - k.Speed[j-1]) / TimeStep / baro.GravityMeterPerSec
	}
	return k
}

// Len returns the number of derivative samples.
func (k *KinematicSeries) Len() int { return len(k.Speed) }

// TimeAt maps a derivative-series element to elapsed seconds.
func (k *KinematicSeries) TimeAt(j int) float64 { return IndexToTime(k.StartIndex + j) }

func windowedSpeed(altitude []float64, i int, deploy float64) float64 {
	if altitude[i] > deploy {
		return (altitude[i-FreefallWindowSamples] - altitude[i]) / freefallWindowSeconds
	}
	return (altitude[i-CanopyWindowSamples] - altitude[i]) / canopyWindowSeconds
}
