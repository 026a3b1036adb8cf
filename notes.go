package protrack

import (
	"fmt"
	"strings"

	"protrack-analyzer/baro"
)

// BuildJumpNotes renders the console summary block for a decoded jump:
// the header metadata the device reports plus the reconstruction
// diagnostics.
func BuildJumpNotes(a *Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Timestamp: %s\n", a.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "JumpNumber: %d\n", a.JumpNumber)
	fmt.Fprintf(&b, "SerialNumber: %s\n", a.SerialNumber)
	fmt.Fprintf(&b, "ExitAltitude: %dm %dft\n", a.ExitAltitudeMeters, a.ExitAltitudeFeet)
	fmt.Fprintf(&b, "DeploymentAltitude: %dm %dft\n", a.DeploymentAltitudeMeters, a.DeploymentAltitudeFeet)
	fmt.Fprintf(&b, "FreefallTime: %dsec\n", a.FreefallTimeSeconds)
	fmt.Fprintf(&b, "AverageSpeed: %dmph\n", baro.MsecToMph(float64(a.DeviceTAS.Average)))
	fmt.Fprintf(&b, "MaxSpeed: %dmph\n", baro.MsecToMph(float64(a.DeviceTAS.Max)))
	fmt.Fprintf(&b, "FirstHalfSpeed: %dmph\n", baro.MsecToMph(float64(a.DeviceTAS.FirstHalf)))
	fmt.Fprintf(&b, "SecondHalfSpeed: %dmph\n", baro.MsecToMph(float64(a.DeviceTAS.SecondHalf)))
	if a.HasSAS {
		fmt.Fprintf(&b, "SASAverageSpeed: %dmph\n", baro.MsecToMph(float64(a.DeviceSAS.Average)))
		fmt.Fprintf(&b, "SASMaxSpeed: %dmph\n", baro.MsecToMph(float64(a.DeviceSAS.Max)))
	}
	fmt.Fprintf(&b, "GroundLeveldPa: %0.1f\n", a.GroundLevelDecaPa)
	fmt.Fprintf(&b, "GroundLevelMeter: %0.1f\n", a.GroundLevelMeter)

	if a.SampleCount > 0 {
		fmt.Fprintf(&b, "ICAOTemp: %dC\n", a.ICAOTempC)
		if a.DeploymentTimeSeconds != nil {
			fmt.Fprintf(&b, "Deployment: sample %d at %.2fs\n", a.DeploymentIndex, *a.DeploymentTimeSeconds)
		} else {
			b.WriteString("Deployment: not detected in profile\n")
		}
		fmt.Fprintf(
			&b,
			"Reconstructed freefall speed: %dmph avg / %dmph max (device %dmph / %dmph)\n",
			baro.MsecToMph(a.FreefallAvgSpeedMps),
			baro.MsecToMph(a.FreefallMaxSpeedMps),
			baro.MsecToMph(float64(a.DeviceTAS.Average)),
			baro.MsecToMph(float64(a.DeviceTAS.Max)),
		)
		if a.PeakDecelerationG > 0 {
			fmt.Fprintf(&b, "Peak deceleration: %.2fg\n", a.PeakDecelerationG)
		}
	}
	return b.String()
}

// BuildPhaseTable renders the phase blocks as fixed-width console rows.
func BuildPhaseTable(a *Analysis) string {
	if len(a.Structure.Phases) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Phases\n")
	for _, p := range a.Structure.Phases {
		fmt.Fprintf(
			&b,
			"- %-8s | %7.2fs .. %7.2fs | %6.1fs | %3dmph avg | %3dmph max\n",
			p.Name,
			p.StartTimeSeconds,
			p.EndTimeSeconds,
			p.DurationSeconds,
			baro.MsecToMph(p.AvgSpeedMps),
			baro.MsecToMph(p.MaxSpeedMps),
		)
	}
	return b.String()
}
