package pipeline

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"time"

	"github.com/tormoder/fit"

	protrack "protrack-analyzer"
)

// Record message scaling from the FIT profile: altitude is stored as
// (meters + 500) * 5, speed as mm/s.
const (
	fitAltitudeOffsetM = 500.0
	fitAltitudeScale   = 5.0
	fitSpeedScale      = 1000.0
)

// writeFITActivity exports the reconstructed jump as a FIT activity file so
// the profile can be loaded into common sports-log tools. Records carry the
// barometric altitude and, where a derivative window exists, the vertical
// speed.
func writeFITActivity(path string, a *protrack.Analysis) error {
	header := fit.NewHeader(fit.V20, true)
	file, err := fit.NewFile(fit.FileTypeActivity, header)
	if err != nil {
		return err
	}
	activity, err := file.Activity()
	if err != nil {
		return err
	}

	series := a.Series
	kin := a.Kinematics
	start := a.Timestamp

	begin := fit.NewEventMsg()
	begin.Timestamp = start
	begin.Event = fit.EventTimer
	begin.EventType = fit.EventTypeStart
	activity.Events = append(activity.Events, begin)

	for i := 0; i < series.Len(); i++ {
		rec := fit.NewRecordMsg()
		rec.Timestamp = start.Add(time.Duration(i) * 250 * time.Millisecond)
		rec.Altitude = encodeFITAltitude(series.Altitude[i])
		if j := i - kin.StartIndex; j >= 0 && j < kin.Len() {
			rec.Speed = encodeFITSpeed(kin.Speed[j])
		}
		activity.Records = append(activity.Records, rec)
	}

	stop := fit.NewEventMsg()
	stop.Timestamp = start.Add(time.Duration(series.Len()) * 250 * time.Millisecond)
	stop.Event = fit.EventTimer
	stop.EventType = fit.EventTypeStop
	activity.Events = append(activity.Events, stop)

	var buf bytes.Buffer
	if err := fit.Encode(&buf, file, binary.LittleEndian); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func encodeFITAltitude(meters float64) uint16 {
	raw := math.Round((meters + fitAltitudeOffsetM) * fitAltitudeScale)
	return clampUint16(raw)
}

func encodeFITSpeed(mps float64) uint16 {
	if mps < 0 {
		mps = 0
	}
	return clampUint16(math.Round(mps * fitSpeedScale))
}

func clampUint16(v float64) uint16 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint16-1 {
		return math.MaxUint16 - 1
	}
	return uint16(v)
}
