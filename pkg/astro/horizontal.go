package astro

import "math"

// HorizontalPosition holds local horizontal coordinates for one star.
// Altitude: 0 = horizon, 90 = zenith, purely geometric (no refraction).
// Azimuth: 0 = North, measured clockwise, in [0, 360).
type HorizontalPosition struct {
	AltDeg float64
	AzDeg  float64
}

// Horizontal rotates an equatorial position into the site's horizontal
// frame at the given instant, using the standard spherical-trigonometry
// transform driven by the local hour angle.
//
// At the celestial poles (dec = ±90) the azimuth is geometrically
// undefined; by convention it is reported as 0.
func Horizontal(raDeg, decDeg float64, site Site, i Instant) HorizontalPosition {
	hourAngle := (site.LocalSiderealTimeDeg(i) - raDeg) * degToRad
	dec := decDeg * degToRad
	lat := site.LatDeg * degToRad

	sinH, cosH := math.Sincos(hourAngle)
	sinDec, cosDec := math.Sincos(dec)
	sinLat, cosLat := math.Sincos(lat)

	sinAlt := sinDec*sinLat + cosDec*cosLat*cosH
	alt := math.Asin(math.Max(-1, math.Min(1, sinAlt)))

	if math.Abs(decDeg) == 90 {
		return HorizontalPosition{AltDeg: alt / degToRad, AzDeg: 0}
	}

	az := math.Atan2(-sinH*cosDec, cosLat*sinDec-sinLat*cosDec*cosH)

	return HorizontalPosition{
		AltDeg: alt / degToRad,
		AzDeg:  wrapDeg(az / degToRad),
	}
}
