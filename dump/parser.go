package dump

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Section markers emitted by the device. Marker lines may carry extra text,
// so detection is a substring match on the fixed line offsets.
const (
	markerJumpBegin    = "JIB"
	markerJumpEnd      = "JIE"
	markerProfileBegin = "PIB"
	markerProfileEnd   = "PIE"
)

const timestampDigits = "20060102150405"

// ParseFile reads and decodes a ProTrack II text dump from disk.
func ParseFile(path string) (*JumpRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dump file: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes decodes a dump from raw file bytes, tolerating CRLF endings.
func ParseBytes(data []byte) (*JumpRecord, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	// A trailing newline leaves one empty pseudo-line behind the PIE marker.
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "" {
		lines = lines[:n-1]
	}
	return Parse(lines)
}

// Parse decodes the ordered dump lines into a JumpRecord. All structural and
// numeric validation happens here; once Parse succeeds no later stage has an
// error path tied to the input text.
func Parse(lines []string) (*JumpRecord, error) {
	if len(lines) == 0 {
		return nil, &FormatError{Line: -1, Reason: "empty input"}
	}
	if !strings.Contains(lines[0], markerJumpBegin) {
		return nil, &FormatError{Line: 0, Content: lines[0], Reason: "missing " + markerJumpBegin + " marker"}
	}
	last := len(lines) - 1
	if !strings.Contains(lines[last], markerProfileEnd) {
		return nil, &FormatError{Line: last, Content: lines[last], Reason: "missing " + markerProfileEnd + " marker"}
	}

	layout := detectLayout(lines)
	spec := layoutSpecs[layout]
	if len(lines) < spec.profileStart+1 {
		return nil, &FormatError{Line: -1, Reason: fmt.Sprintf("%s layout needs at least %d lines, got %d", layout, spec.profileStart+1, len(lines))}
	}

	rec := &JumpRecord{
		Layout:          layout,
		FormatVersion:   strings.TrimSpace(lines[1]),
		DeviceVersion:   strings.TrimSpace(lines[2]),
		FirmwareVersion: strings.TrimSpace(lines[3]),
		SerialNumber:    strings.TrimSpace(lines[spec.serial]),
	}

	var err error
	if rec.JumpNumber, err = intField(lines, spec.jumpNumber, "jump number"); err != nil {
		return nil, err
	}
	if rec.Timestamp, err = timestampField(lines, spec.datePart, spec.timePart); err != nil {
		return nil, err
	}
	if rec.ExitAltitudeMeters, err = intField(lines, spec.exitAltitude, "exit altitude"); err != nil {
		return nil, err
	}
	if rec.DeploymentAltitudeMeters, err = intField(lines, spec.deployAltitude, "deployment altitude"); err != nil {
		return nil, err
	}
	if rec.FreefallTimeSeconds, err = intField(lines, spec.freefallTime, "freefall time"); err != nil {
		return nil, err
	}
	if rec.TAS, err = speedSet(lines, spec.tasBase, "TAS"); err != nil {
		return nil, err
	}
	if spec.sasBase >= 0 {
		if rec.SAS, err = speedSet(lines, spec.sasBase, "SAS"); err != nil {
			return nil, err
		}
	}
	if spec.temperature >= 0 {
		if rec.TemperatureC, err = intField(lines, spec.temperature, "temperature"); err != nil {
			return nil, err
		}
	}
	if spec.diveType >= 0 {
		if rec.DiveType, err = intField(lines, spec.diveType, "dive type"); err != nil {
			return nil, err
		}
	}
	if spec.lookupBase >= 0 {
		if err = intBlock(lines, spec.lookupBase, "lookup", rec.Lookup[:]); err != nil {
			return nil, err
		}
	}
	if spec.reservedBase >= 0 {
		if err = intBlock(lines, spec.reservedBase, "reserved", rec.Reserved[:]); err != nil {
			return nil, err
		}
	}
	if rec.GroundLevelPressure, err = intField(lines, spec.groundPressure, "ground level pressure"); err != nil {
		return nil, err
	}

	profileExists, err := intField(lines, spec.profileExists, "profile exists flag")
	if err != nil {
		return nil, err
	}
	rec.ProfileExists = profileExists != 0
	canopyData, err := intField(lines, spec.canopyData, "canopy data flag")
	if err != nil {
		return nil, err
	}
	rec.CanopyDataInProfile = canopyData != 0
	if rec.ProfilePointCount, err = intField(lines, spec.pointCount, "profile point count"); err != nil {
		return nil, err
	}

	if rec.PressureSamples, err = parseProfile(lines, spec.profileStart, rec.ProfilePointCount); err != nil {
		return nil, err
	}
	return rec, nil
}

// detectLayout resolves the layout variant once, from the JIE/PIB markers at
// their fixed current-layout offsets. Anything else is treated as legacy.
func detectLayout(lines []string) Layout {
	v2 := layoutSpecs[LayoutV2]
	if len(lines) > v2.groundPressure &&
		strings.Contains(lines[v2.groundPressure-2], markerJumpEnd) &&
		strings.Contains(lines[v2.groundPressure-1], markerProfileBegin) {
		return LayoutV2
	}
	return LayoutV1
}

// parseProfile concatenates the wrapped sample lines, splits on ',' and
// converts readings. The split always ends in one empty artifact token from
// the device's trailing delimiter; it is discarded before conversion.
func parseProfile(lines []string, start, declared int) ([]int, error) {
	joined := strings.Join(lines[start:len(lines)-1], "")
	tokens := strings.Split(joined, ",")
	if len(tokens) > 0 {
		tokens = tokens[:len(tokens)-1]
	}

	samples := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		v, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return nil, &FormatError{Line: -1, Field: "pressure sample", Content: tok, Reason: "not a decimal integer"}
		}
		samples = append(samples, v)
	}
	if len(samples) != declared {
		return nil, &FormatError{Line: -1, Field: "profile", Reason: fmt.Sprintf("declared %d points, profile holds %d", declared, len(samples))}
	}
	return samples, nil
}

func intField(lines []string, idx int, field string) (int, error) {
	if idx >= len(lines) {
		return 0, &FormatError{Line: idx, Field: field, Reason: "line missing"}
	}
	v, err := strconv.Atoi(strings.TrimSpace(lines[idx]))
	if err != nil {
		return 0, &FormatError{Line: idx, Field: field, Content: lines[idx], Reason: "not a decimal integer"}
	}
	return v, nil
}

func intBlock(lines []string, base int, field string, dst []int) error {
	for i := range dst {
		v, err := intField(lines, base+i, fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func speedSet(lines []string, base int, name string) (SpeedSummary, error) {
	var vals [5]int
	if err := intBlock(lines, base, name+" speed", vals[:]); err != nil {
		return SpeedSummary{}, err
	}
	return SpeedSummary{
		Average:    vals[0],
		Max:        vals[1],
		Min:        vals[2],
		FirstHalf:  vals[3],
		SecondHalf: vals[4],
	}, nil
}

func timestampField(lines []string, dateIdx, timeIdx int) (time.Time, error) {
	if timeIdx >= len(lines) {
		return time.Time{}, &FormatError{Line: timeIdx, Field: "timestamp", Reason: "line missing"}
	}
	digits := strings.TrimSpace(lines[dateIdx]) + strings.TrimSpace(lines[timeIdx])
	ts, err := time.Parse(timestampDigits, digits)
	if err != nil {
		return time.Time{}, &FormatError{Line: dateIdx, Field: "timestamp", Content: digits, Reason: "expected YYYYMMDDHHMMSS digits"}
	}
	return ts, nil
}
