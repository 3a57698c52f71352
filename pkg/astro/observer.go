package astro

import "math"

const degToRad = math.Pi / 180.0

// Site is a fixed geodetic observer location. Timezone names the reference
// zone for displaying civil times; it plays no part in any computation.
type Site struct {
	LatDeg   float64
	LonDeg   float64 // east positive
	ElevM    float64
	Timezone string
}

// GMSTDeg calculates Greenwich Mean Sidereal Time in degrees for an instant.
// Uses the IAU-82 model as described in Vallado "Fundamentals of Astrodynamics".
//
// Formula (Vallado Eq 3-47):
//
//	θ_GMST = 67310.54841 + (876600h + 8640184.812866)*T + 0.093104*T² - 6.2e-6*T³
//
// where T is Julian centuries of UT1 from J2000.0, result is in seconds of time.
func GMSTDeg(i Instant) float64 {
	tUT1 := (i.JD - J2000JD) / 36525.0

	// GMST in seconds of time.
	// 876600h = 876600 * 3600 = 3155760000 seconds.
	gmstSec := 67310.54841 +
		(3155760000.0+8640184.812866)*tUT1 +
		0.093104*tUT1*tUT1 -
		6.2e-6*tUT1*tUT1*tUT1

	gmstSec = math.Mod(gmstSec, 86400.0)
	if gmstSec < 0 {
		gmstSec += 86400.0
	}

	return gmstSec / 86400.0 * 360.0
}

// LocalSiderealTimeDeg returns the local sidereal time at the site for an
// instant, in degrees wrapped to [0, 360). Pure function, safe to call
// concurrently for independent instants.
func (s Site) LocalSiderealTimeDeg(i Instant) float64 {
	return wrapDeg(GMSTDeg(i) + s.LonDeg)
}

// wrapDeg wraps an angle into [0, 360).
func wrapDeg(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return deg
}
