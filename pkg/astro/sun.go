package astro

import "math"

// SunEquatorial computes the Sun's approximate RA/Dec (degrees) at an
// instant using the low-precision almanac model: mean longitude plus the
// equation of center, projected through the mean obliquity. Accurate to
// roughly 0.01 degrees, which is orders of magnitude below what the
// day/night decision is sensitive to.
func SunEquatorial(i Instant) (raDeg, decDeg float64) {
	n := i.JD - J2000JD

	// Mean longitude and mean anomaly of the Sun, degrees.
	meanLon := wrapDeg(280.460 + 0.9856474*n)
	meanAnom := wrapDeg(357.528+0.9856003*n) * degToRad

	// Ecliptic longitude with the equation of center.
	eclLon := (meanLon + 1.915*math.Sin(meanAnom) + 0.020*math.Sin(2*meanAnom)) * degToRad

	// Mean obliquity of the ecliptic.
	obliquity := (23.439 - 0.0000004*n) * degToRad

	sinLon, cosLon := math.Sincos(eclLon)
	sinObl, cosObl := math.Sincos(obliquity)

	raDeg = wrapDeg(math.Atan2(cosObl*sinLon, cosLon) / degToRad)
	decDeg = math.Asin(sinObl*sinLon) / degToRad
	return raDeg, decDeg
}

// SolarAltitudeDeg returns the Sun's geometric altitude at the site.
func SolarAltitudeDeg(site Site, i Instant) float64 {
	ra, dec := SunEquatorial(i)
	return Horizontal(ra, dec, site, i).AltDeg
}

// IsNight reports whether the Sun is below the geometric horizon at the
// site. The twilight convention is deliberately the simplest one: night
// begins the moment the unrefracted solar altitude drops below 0 degrees,
// with no civil/nautical/astronomical twilight allowance.
func IsNight(site Site, i Instant) bool {
	return SolarAltitudeDeg(site, i) < 0
}
