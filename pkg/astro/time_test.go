package astro

import (
	"math"
	"testing"
	"time"
)

func TestJulianDateJ2000(t *testing.T) {
	// J2000.0 reference: 2000 January 1, 12:00 UTC is JD 2451545.0.
	jd := JulianDate(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(jd-2451545.0) > 1e-9 {
		t.Errorf("JD(2000-01-01 12:00) = %f, want 2451545.0", jd)
	}
}

func TestJulianDateKnownValues(t *testing.T) {
	tests := []struct {
		civil time.Time
		want  float64
	}{
		// Midnight starts the half-day before the JD integer boundary.
		{time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), 2451544.5},
		{time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), 2451179.5},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 2460676.5},
		// Fractional day.
		{time.Date(2000, 1, 1, 18, 0, 0, 0, time.UTC), 2451545.25},
	}
	for _, tt := range tests {
		if got := JulianDate(tt.civil); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("JD(%s) = %f, want %f", tt.civil, got, tt.want)
		}
	}
}

func TestJulianDateConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	// 13:00 CET is 12:00 UTC.
	jd := JulianDate(time.Date(2000, 1, 1, 13, 0, 0, 0, loc))
	if math.Abs(jd-2451545.0) > 1e-9 {
		t.Errorf("JD ignored the zone offset: %f", jd)
	}
}

func TestJulianEpoch(t *testing.T) {
	i := NewInstant(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(i.JulianEpoch()-2000.0) > 1e-12 {
		t.Errorf("epoch of J2000 instant = %f, want 2000.0", i.JulianEpoch())
	}

	// Exactly one Julian year (365.25 days) later.
	later := NewInstant(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC).Add(365*24*time.Hour + 6*time.Hour))
	if math.Abs(later.YearsSince(J2000Epoch)-1.0) > 1e-9 {
		t.Errorf("one Julian year later: YearsSince = %f, want 1.0", later.YearsSince(J2000Epoch))
	}
}

func TestYearsSinceSigned(t *testing.T) {
	// Observing before the reference epoch must give a negative interval.
	before := NewInstant(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	if dt := before.YearsSince(J2000Epoch); dt >= 0 {
		t.Errorf("1990 relative to J2000 = %f, want negative", dt)
	}
}
