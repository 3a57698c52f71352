package astro

import (
	"math"
	"time"
)

const (
	// J2000JD is the Julian Date of the J2000.0 epoch (2000 January 1, 12:00 TT).
	J2000JD = 2451545.0

	// J2000Epoch is the same epoch expressed in Julian years.
	J2000Epoch = 2000.0

	julianYearDays = 365.25
)

// Instant is a single observation moment, carried in both forms the
// pipeline needs: the civil timestamp for display and the Julian date for
// computation. Build it once per run; it is immutable.
type Instant struct {
	Civil time.Time
	JD    float64
}

// NewInstant derives the continuous time scale from a civil timestamp.
func NewInstant(t time.Time) Instant {
	return Instant{Civil: t, JD: JulianDate(t)}
}

// JulianEpoch returns the instant as Julian years (e.g. 2025.37).
func (i Instant) JulianEpoch() float64 {
	return J2000Epoch + (i.JD-J2000JD)/julianYearDays
}

// YearsSince returns the signed interval from a reference Julian epoch to
// this instant, in Julian years. Negative when observing before the epoch.
func (i Instant) YearsSince(epoch float64) float64 {
	return i.JulianEpoch() - epoch
}

// JulianDate converts a time.Time to Julian Date.
// Uses the standard astronomical algorithm valid for dates after March 1, 4801 BC.
func JulianDate(t time.Time) float64 {
	t = t.UTC()
	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())
	h := float64(t.Hour())
	min := float64(t.Minute())
	s := float64(t.Second()) + float64(t.Nanosecond())/1e9

	// Adjust year/month for Jan/Feb (treat as months 13/14 of previous year).
	if m <= 2 {
		y -= 1
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + b - 1524.5
	jd += (h + min/60.0 + s/3600.0) / 24.0

	return jd
}
