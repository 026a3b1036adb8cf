package protrack

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"protrack-analyzer/baro"
	"protrack-analyzer/dump"
)

// Analysis contains the reconstructed series and derived metrics for one
// decoded jump.
type Analysis struct {
	Layout       string    `json:"layout"`
	SerialNumber string    `json:"serial_number"`
	JumpNumber   int       `json:"jump_number"`
	Timestamp    time.Time `json:"timestamp"`

	ExitAltitudeMeters       int `json:"exit_altitude_m"`
	ExitAltitudeFeet         int `json:"exit_altitude_ft"`
	DeploymentAltitudeMeters int `json:"deployment_altitude_m"`
	DeploymentAltitudeFeet   int `json:"deployment_altitude_ft"`
	FreefallTimeSeconds      int `json:"freefall_time_s"`

	// Device-computed summary speeds, straight from the dump header.
	DeviceTAS dump.SpeedSummary `json:"device_tas"`
	DeviceSAS dump.SpeedSummary `json:"device_sas"`
	HasSAS    bool              `json:"has_sas"`

	GroundLevelDecaPa float64 `json:"ground_level_dpa"`
	GroundLevelMeter  float64 `json:"ground_level_m"`
	ICAOTempC         int     `json:"icao_temp_c"`

	SampleCount           int      `json:"sample_count"`
	DeploymentIndex       int      `json:"deployment_index"`
	DeploymentTimeSeconds *float64 `json:"deployment_time_s,omitempty"`

	// Speeds reconstructed from the profile, for comparison against the
	// device's own summary set.
	FreefallAvgSpeedMps    float64 `json:"freefall_avg_speed_ms"`
	FreefallMaxSpeedMps    float64 `json:"freefall_max_speed_ms"`
	FreefallAvgSASSpeedMps float64 `json:"freefall_avg_sas_speed_ms"`
	FreefallMaxSASSpeedMps float64 `json:"freefall_max_sas_speed_ms"`
	PeakDecelerationG      float64 `json:"peak_deceleration_g"`

	Structure JumpStructure `json:"structure"`
	Notes     string        `json:"notes"`

	Series     *AltitudeSeries  `json:"-"`
	Kinematics *KinematicSeries `json:"-"`
}

// Analyze reconstructs the altitude and kinematic series for a parsed jump
// record and computes summary metrics. The record is not modified.
func Analyze(rec *dump.JumpRecord) *Analysis {
	series := BuildAltitudeSeries(rec)
	kin := BuildKinematicSeries(&series, rec.DeploymentAltitudeMeters)

	a := &Analysis{
		Layout:                   rec.Layout.String(),
		SerialNumber:             rec.SerialNumber,
		JumpNumber:               rec.JumpNumber,
		Timestamp:                rec.Timestamp,
		ExitAltitudeMeters:       rec.ExitAltitudeMeters,
		ExitAltitudeFeet:         baro.MToFt(float64(rec.ExitAltitudeMeters)),
		DeploymentAltitudeMeters: rec.DeploymentAltitudeMeters,
		DeploymentAltitudeFeet:   baro.MToFt(float64(rec.DeploymentAltitudeMeters)),
		FreefallTimeSeconds:      rec.FreefallTimeSeconds,
		DeviceTAS:                rec.TAS,
		DeviceSAS:                rec.SAS,
		HasSAS:                   rec.HasSAS(),
		GroundLevelDecaPa:        GroundPressureDecaPa(rec),
		GroundLevelMeter:         series.GroundLevelMeter,
		ICAOTempC:                series.SAS.ICAOTempC,
		SampleCount:              series.Len(),
		DeploymentIndex:          series.DeploymentIndex,
		Series:                   &series,
		Kinematics:               &kin,
	}
	if series.DeploymentIndex != NoDeployment {
		t := IndexToTime(series.DeploymentIndex)
		a.DeploymentTimeSeconds = &t
	}

	deploy := float64(rec.DeploymentAltitudeMeters)
	var ff, ffSAS []float64
	for j := 0; j < kin.Len(); j++ {
		i := kin.StartIndex + j
		if series.Altitude[i] > deploy {
			ff = append(ff, kin.Speed[j])
		}
		if series.SASAltitude[i] > deploy {
			ffSAS = append(ffSAS, kin.SASSpeed[j])
		}
	}
	if len(ff) > 0 {
		a.FreefallAvgSpeedMps = stat.Mean(ff, nil)
		a.FreefallMaxSpeedMps = floats.Max(ff)
	}
	if len(ffSAS) > 0 {
		a.FreefallAvgSASSpeedMps = stat.Mean(ffSAS, nil)
		a.FreefallMaxSASSpeedMps = floats.Max(ffSAS)
	}
	a.PeakDecelerationG = peakDeceleration(kin.Acceleration)

	a.Structure = BuildJumpStructure(&series, &kin)
	a.Notes = BuildJumpNotes(a)
	return a
}

// peakDeceleration returns the largest magnitude among negative acceleration
// samples, i.e. the hardest braking moment (usually the opening shock).
func peakDeceleration(accel []float64) float64 {
	peak := 0.0
	for _, g := range accel {
		if v := math.Abs(g); g < 0 && v > peak {
			peak = v
		}
	}
	return peak
}
