package baro

import (
	"math"
	"testing"
)

func TestPressureToMeterSeaLevel(t *testing.T) {
	if got := PressureToMeter(seaLevelDecaPa, 0); math.Abs(got) > 1e-9 {
		t.Fatalf("sea-level pressure should map to 0 m, got %g", got)
	}
}

func TestPressureToMeterRoundTrip(t *testing.T) {
	for _, alt := range []float64{0, 100, 1000, 4000} {
		p := pressureAtMeters(alt)
		if got := PressureToMeter(p, 0); math.Abs(got-alt) > 1e-6 {
			t.Fatalf("altitude %g m round-trips to %g m", alt, got)
		}
	}
}

func TestGroundLevelReference(t *testing.T) {
	ground := pressureAtMeters(250)
	gl := GroundLevelMeter(ground)
	if math.Abs(gl-250) > 1e-6 {
		t.Fatalf("ground level: got %g m, want 250 m", gl)
	}
	// A reading at ground pressure is 0 m AGL against its own reference.
	if got := PressureToMeter(ground, gl); math.Abs(got) > 1e-6 {
		t.Fatalf("ground reading should be 0 m AGL, got %g", got)
	}
}

func TestGroundLevelMilliBarPathTracksDecaPa(t *testing.T) {
	mb := 1000.0
	fromMB := GroundLevelMeterFromMilliBar(mb)
	fromDPa := GroundLevelMeter(MiliBarToDecaPa(mb))
	if math.Abs(fromMB-fromDPa) > 1e-9 {
		t.Fatalf("millibar path %g diverges from deca-Pascal path %g", fromMB, fromDPa)
	}
}

func TestNewSASCorrectionAtFourThousandMeters(t *testing.T) {
	c := NewSASCorrection(pressureAtMeters(4000), 10132)

	// ISA temperature at 4000 m: 15 - 4000*0.0065 = -11 C.
	if c.ICAOTempC != -11 {
		t.Fatalf("ICAO temperature: got %d, want -11", c.ICAOTempC)
	}
	if math.Abs(c.Scale-0.956) > 1e-12 {
		t.Fatalf("scale: got %g, want 0.956", c.Scale)
	}
	hs := PressureToMeter(10132, 0)
	if math.Abs(c.Offset-hs*(1-c.Scale)) > 1e-9 {
		t.Fatalf("offset %g inconsistent with hs=%g scale=%g", c.Offset, hs, c.Scale)
	}
}

func TestSASAltitudeAtSeaLevelGround(t *testing.T) {
	// With ground at exactly sea level the offset vanishes and the corrected
	// altitude is just the scaled raw altitude.
	c := NewSASCorrection(pressureAtMeters(3000), seaLevelDecaPa)
	if math.Abs(c.Offset) > 1e-9 {
		t.Fatalf("offset should be 0 at sea-level ground, got %g", c.Offset)
	}
	p := pressureAtMeters(1500)
	want := 1500 * c.Scale
	if got := c.Altitude(p, 0); math.Abs(got-want) > 1e-6 {
		t.Fatalf("SAS altitude: got %g, want %g", got, want)
	}
}

func TestUnitConversionsRoundHalfAwayFromZero(t *testing.T) {
	if got := MsecToMph(1.0); got != 2 {
		t.Fatalf("MsecToMph(1.0): got %d, want 2", got)
	}
	if got := MToFt(1.0); got != 3 {
		t.Fatalf("MToFt(1.0): got %d, want 3", got)
	}
	if got := MsecToKmh(10.0); got != 36 {
		t.Fatalf("MsecToKmh(10.0): got %d, want 36", got)
	}
	if got := MsecToFtsec(10.0); got != 33 {
		t.Fatalf("MsecToFtsec(10.0): got %d, want 33", got)
	}
	if got := MsecToMph(-1.0); got != -2 {
		t.Fatalf("MsecToMph(-1.0): got %d, want -2", got)
	}
	if got := MiliBarToDecaPa(1013.25); got != 10132.5 {
		t.Fatalf("MiliBarToDecaPa(1013.25): got %g, want 10132.5", got)
	}
}

// pressureAtMeters inverts the barometric formula for building test inputs.
func pressureAtMeters(alt float64) float64 {
	return seaLevelDecaPa * math.Pow(1.0-alt/scaleHeightMeters, 1.0/pressureExponent)
}
