package astro

import (
	"math"
	"testing"
	"time"
)

func TestGMSTAtJ2000(t *testing.T) {
	// At J2000.0 the Greenwich mean sidereal time is 18h41m50.548s,
	// i.e. 280.4606 degrees (Vallado / Astronomical Almanac).
	i := NewInstant(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	gmst := GMSTDeg(i)
	if math.Abs(gmst-280.4606) > 1e-3 {
		t.Errorf("GMST(J2000) = %f deg, want ~280.4606", gmst)
	}
}

func TestGMSTRange(t *testing.T) {
	// Whatever the date, GMST must land in [0, 360).
	times := []time.Time{
		time.Date(1950, 6, 1, 3, 30, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, tm := range times {
		gmst := GMSTDeg(NewInstant(tm))
		if gmst < 0 || gmst >= 360 {
			t.Errorf("GMST(%s) = %f, outside [0, 360)", tm, gmst)
		}
	}
}

func TestGMSTAdvancesFasterThanSolarTime(t *testing.T) {
	// Sidereal time gains ~3.94 minutes (~0.9856 deg) per solar day.
	day0 := NewInstant(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	day1 := NewInstant(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))

	gain := math.Mod(GMSTDeg(day1)-GMSTDeg(day0)+360, 360)
	if math.Abs(gain-0.9856) > 0.01 {
		t.Errorf("sidereal gain per solar day = %f deg, want ~0.9856", gain)
	}
}

func TestLocalSiderealTime(t *testing.T) {
	site := Site{LatDeg: 48.5833, LonDeg: 7.75, ElevM: 140}
	i := NewInstant(time.Date(2024, 6, 21, 22, 0, 0, 0, time.UTC))

	want := wrapDeg(GMSTDeg(i) + site.LonDeg)
	if got := site.LocalSiderealTimeDeg(i); got != want {
		t.Errorf("LST = %f, want GMST+lon = %f", got, want)
	}
}

func TestLocalSiderealTimeWraps(t *testing.T) {
	// A site far east must still report LST inside [0, 360).
	site := Site{LonDeg: 179.9}
	for h := 0; h < 24; h++ {
		i := NewInstant(time.Date(2024, 1, 5, h, 0, 0, 0, time.UTC))
		lst := site.LocalSiderealTimeDeg(i)
		if lst < 0 || lst >= 360 {
			t.Fatalf("LST at hour %d = %f, outside [0, 360)", h, lst)
		}
	}
}
