package dump

import "time"

// Layout identifies which historical ProTrack II text layout a dump uses.
// The variant is resolved once at parse time; every later stage reads the
// layout's own fixed-offset table instead of re-branching on markers.
type Layout int

const (
	// LayoutV1 is the legacy layout: a single undifferentiated summary-speed
	// set and a millibar-scaled ground-pressure header field.
	LayoutV1 Layout = iota + 1

	// LayoutV2 is the current layout: split TAS/SAS summary-speed sets and
	// JIE/PIB section markers at fixed line offsets.
	LayoutV2
)

func (l Layout) String() string {
	switch l {
	case LayoutV1:
		return "legacy"
	case LayoutV2:
		return "current"
	default:
		return "unknown"
	}
}

// SpeedSummary holds one device-computed set of summary speeds in m/s.
type SpeedSummary struct {
	Average    int `json:"average_ms"`
	Max        int `json:"max_ms"`
	Min        int `json:"min_ms"`
	FirstHalf  int `json:"first_half_ms"`
	SecondHalf int `json:"second_half_ms"`
}

// JumpRecord is the decoded jump metadata plus the raw pressure-sample
// profile. It is built once by Parse and never mutated afterwards.
type JumpRecord struct {
	Layout Layout `json:"layout"`

	// Version lines 1-3 are free text and only passed through.
	FormatVersion   string `json:"format_version"`
	DeviceVersion   string `json:"device_version"`
	FirmwareVersion string `json:"firmware_version"`

	SerialNumber string    `json:"serial_number"`
	JumpNumber   int       `json:"jump_number"`
	Timestamp    time.Time `json:"timestamp"`

	ExitAltitudeMeters       int `json:"exit_altitude_m"`
	DeploymentAltitudeMeters int `json:"deployment_altitude_m"`
	FreefallTimeSeconds      int `json:"freefall_time_s"`

	// TAS carries the raw barometric summary speeds. For the legacy layout
	// the device emits only this single set and SAS stays zero.
	TAS SpeedSummary `json:"tas"`
	SAS SpeedSummary `json:"sas"`

	TemperatureC int    `json:"temperature_c"`
	DiveType     int    `json:"dive_type"`
	Lookup       [5]int `json:"lookup"`
	Reserved     [5]int `json:"reserved"`

	// GroundLevelPressure is the raw header value. The current layout reads
	// it as deca-Pascals; the legacy layout reads the same digits as a
	// millibar-scaled value. Interpretation is the atmosphere model's job
	// and stays split per layout.
	GroundLevelPressure int `json:"ground_level_pressure_dpa"`

	ProfileExists       bool `json:"profile_exists"`
	CanopyDataInProfile bool `json:"canopy_data_in_profile"`
	ProfilePointCount   int  `json:"profile_point_count"`

	// PressureSamples are deca-Pascal readings at the fixed 0.25 s cadence.
	PressureSamples []int `json:"-"`
}

// HasSAS reports whether the record carries a separate SAS summary set.
func (r *JumpRecord) HasSAS() bool {
	return r.Layout == LayoutV2
}

// layoutSpec is the fixed-offset table for one layout. Offsets are 0-based
// line indexes and are a device contract, not configuration.
type layoutSpec struct {
	serial         int
	jumpNumber     int
	datePart       int
	timePart       int
	exitAltitude   int
	deployAltitude int
	freefallTime   int
	tasBase        int // avg, max, min, first half, second half
	sasBase        int // -1 when the layout has no SAS set
	temperature    int // -1 when absent
	diveType       int // -1 when absent
	lookupBase     int // -1 when absent
	reservedBase   int // -1 when absent
	groundPressure int
	profileExists  int
	canopyData     int
	pointCount     int
	profileStart   int
}

var layoutSpecs = map[Layout]layoutSpec{
	LayoutV1: {
		serial:         4,
		jumpNumber:     5,
		datePart:       6,
		timePart:       7,
		exitAltitude:   8,
		deployAltitude: 9,
		freefallTime:   10,
		tasBase:        11,
		sasBase:        -1,
		temperature:    -1,
		diveType:       -1,
		lookupBase:     -1,
		reservedBase:   -1,
		groundPressure: 16,
		profileExists:  17,
		canopyData:     18,
		pointCount:     19,
		profileStart:   20,
	},
	LayoutV2: {
		serial:         4,
		jumpNumber:     5,
		datePart:       6,
		timePart:       7,
		exitAltitude:   8,
		deployAltitude: 9,
		freefallTime:   10,
		tasBase:        11,
		sasBase:        16,
		temperature:    21,
		diveType:       22,
		lookupBase:     23,
		reservedBase:   28,
		groundPressure: 35,
		profileExists:  36,
		canopyData:     37,
		pointCount:     38,
		profileStart:   39,
	},
}
