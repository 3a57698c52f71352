package astro

import (
	"math"
	"testing"
	"time"
)

var testSite = Site{LatDeg: 48.5833, LonDeg: 7.75, ElevM: 140, Timezone: "Europe/Berlin"}

func TestHorizontalZenith(t *testing.T) {
	// A star whose declination equals the latitude culminates at the
	// zenith when its hour angle is zero (RA = LST).
	i := NewInstant(time.Date(2024, 6, 21, 22, 0, 0, 0, time.UTC))
	ra := testSite.LocalSiderealTimeDeg(i)

	hz := Horizontal(ra, testSite.LatDeg, testSite, i)
	if math.Abs(hz.AltDeg-90) > 1e-9 {
		t.Errorf("zenith altitude = %.12f, want 90", hz.AltDeg)
	}
}

func TestHorizontalUpperCulminationSouth(t *testing.T) {
	// An equatorial star on the meridian sits due south at altitude
	// 90 - latitude for a northern observer.
	i := NewInstant(time.Date(2024, 6, 21, 22, 0, 0, 0, time.UTC))
	ra := testSite.LocalSiderealTimeDeg(i)

	hz := Horizontal(ra, 0, testSite, i)
	if math.Abs(hz.AltDeg-(90-testSite.LatDeg)) > 1e-9 {
		t.Errorf("altitude = %f, want %f", hz.AltDeg, 90-testSite.LatDeg)
	}
	if math.Abs(hz.AzDeg-180) > 1e-6 {
		t.Errorf("azimuth = %f, want 180 (due south)", hz.AzDeg)
	}
}

func TestHorizontalCelestialPoleConvention(t *testing.T) {
	// At dec = ±90 the azimuth is geometrically undefined; the documented
	// convention reports 0. Altitude of the north celestial pole equals
	// the latitude.
	i := NewInstant(time.Date(2024, 6, 21, 22, 0, 0, 0, time.UTC))

	north := Horizontal(123.456, 90, testSite, i)
	if north.AzDeg != 0 {
		t.Errorf("north pole azimuth = %f, want 0 by convention", north.AzDeg)
	}
	if math.Abs(north.AltDeg-testSite.LatDeg) > 1e-9 {
		t.Errorf("north pole altitude = %f, want latitude %f", north.AltDeg, testSite.LatDeg)
	}

	south := Horizontal(0, -90, testSite, i)
	if south.AzDeg != 0 {
		t.Errorf("south pole azimuth = %f, want 0 by convention", south.AzDeg)
	}
	if math.Abs(south.AltDeg+testSite.LatDeg) > 1e-9 {
		t.Errorf("south pole altitude = %f, want -latitude", south.AltDeg)
	}
}

func TestHorizontalAltitudeSinglePeakedOverDay(t *testing.T) {
	// For a fixed star the altitude over a sidereal day is continuous
	// with exactly one maximum and one minimum. Sample at one-minute
	// steps and count direction reversals.
	start := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	const steps = 24 * 60

	alts := make([]float64, steps+1)
	for k := 0; k <= steps; k++ {
		i := NewInstant(start.Add(time.Duration(k) * time.Minute))
		alts[k] = Horizontal(100.0, 40.0, testSite, i).AltDeg
	}

	reversals := 0
	prevDiff := 0.0
	for k := 1; k <= steps; k++ {
		diff := alts[k] - alts[k-1]

		// Continuity: a star moves at most ~0.25 deg/min in altitude.
		if math.Abs(diff) > 0.3 {
			t.Fatalf("altitude jumped %.3f deg between minutes %d and %d", diff, k-1, k)
		}

		if diff*prevDiff < 0 {
			reversals++
		}
		if diff != 0 {
			prevDiff = diff
		}
	}

	if reversals > 2 {
		t.Errorf("altitude curve reversed direction %d times, want at most 2", reversals)
	}
}

func TestHorizontalAzimuthRange(t *testing.T) {
	i := NewInstant(time.Date(2024, 3, 15, 3, 7, 0, 0, time.UTC))
	for ra := 0.0; ra < 360; ra += 15 {
		for _, dec := range []float64{-60, -30, 0, 30, 60, 89} {
			hz := Horizontal(ra, dec, testSite, i)
			if hz.AzDeg < 0 || hz.AzDeg >= 360 {
				t.Fatalf("az(%g, %g) = %f outside [0, 360)", ra, dec, hz.AzDeg)
			}
			if hz.AltDeg < -90 || hz.AltDeg > 90 {
				t.Fatalf("alt(%g, %g) = %f outside [-90, 90]", ra, dec, hz.AltDeg)
			}
		}
	}
}

func TestHorizontalCircumpolarStarNeverSets(t *testing.T) {
	// dec > 90 - lat: the star never goes below the horizon at this site.
	start := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 24; h++ {
		i := NewInstant(start.Add(time.Duration(h) * time.Hour))
		hz := Horizontal(50.0, 80.0, testSite, i)
		if hz.AltDeg <= 0 {
			t.Errorf("circumpolar star below horizon at hour %d: alt = %f", h, hz.AltDeg)
		}
	}
}
