package pipeline

import (
	"encoding/csv"
	"os"
	"strconv"

	protrack "protrack-analyzer"
	"protrack-analyzer/baro"
)

// writeDeploymentCSV emits the primary output table: one row per usable
// sample, from the first index with a full speed window down to the
// deployment crossing. Emission stops at the first sample whose altitude
// drops to or below the deployment altitude.
func writeDeploymentCSV(path string, a *protrack.Analysis) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Altitude(ft)", "SAS(mph)"}); err != nil {
		return err
	}

	kin := a.Kinematics
	series := a.Series
	deploy := float64(a.DeploymentAltitudeMeters)
	for j := 0; j < kin.Len(); j++ {
		i := kin.StartIndex + j
		if series.Altitude[i] <= deploy {
			break
		}
		row := []string{
			strconv.Itoa(baro.MToFt(series.Altitude[i])),
			strconv.Itoa(baro.MsecToMph(kin.SASSpeed[j])),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// writeSamplesCSV emits the full-resolution artifact: every series sample
// with both altitude curves and the derivative columns where a window
// exists. Derivative cells before the speed-start offset stay empty.
func writeSamplesCSV(path string, a *protrack.Analysis) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"time_s", "altitude_m", "altitude_ft", "sas_altitude_m",
		"speed_mps", "speed_mph", "sas_speed_mph", "accel_g", "comment",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	series := a.Series
	kin := a.Kinematics
	for i := 0; i < series.Len(); i++ {
		row := []string{
			formatFloat(protrack.IndexToTime(i)),
			formatFloat(series.Altitude[i]),
			strconv.Itoa(baro.MToFt(series.Altitude[i])),
			formatFloat(series.SASAltitude[i]),
			"", "", "", "",
			sampleComment(a, i),
		}
		if j := i - kin.StartIndex; j >= 0 && j < kin.Len() {
			row[4] = formatFloat(kin.Speed[j])
			row[5] = strconv.Itoa(baro.MsecToMph(kin.Speed[j]))
			row[6] = strconv.Itoa(baro.MsecToMph(kin.SASSpeed[j]))
			row[7] = formatFloat(kin.Acceleration[j])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// sampleComment reproduces the row markers of the classic extractor output.
func sampleComment(a *protrack.Analysis, i int) string {
	switch {
	case i == a.DeploymentIndex:
		return "Deployment"
	case i == protrack.IndexExit:
		return "Exit"
	case i == protrack.IndexSpeedStart:
		return "Speed Accurate"
	default:
		return ""
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
