package astro

import "math"

const masToRad = degToRad / 3.6e6

// Propagate advances an equatorial position by proper motion over a signed
// interval of Julian years.
//
// pmRAMasYr is the raw catalog rate in mas/yr, NOT pre-multiplied by
// cos(dec); the cos(dec) scaling to a true great-circle rate happens here.
// The motion is applied as a rotation of the position unit vector along the
// great circle defined by the tangent velocity, so it stays valid at high
// declination and over long intervals where adding rates to RA/Dec breaks
// down.
//
// Returns RA wrapped to [0, 360) and Dec in [-90, 90]. Zero proper motion
// and dtYears == 0 are exact identities.
func Propagate(raRefDeg, decRefDeg, pmRAMasYr, pmDecMasYr, dtYears float64) (raNowDeg, decNowDeg float64) {
	ra := raRefDeg * degToRad
	dec := decRefDeg * degToRad

	sinRA, cosRA := math.Sincos(ra)
	sinDec, cosDec := math.Sincos(dec)

	// Tangent-plane velocity at the reference position, rad/yr.
	// East component carries the explicit cos(dec) factor.
	vEast := pmRAMasYr * cosDec * masToRad
	vNorth := pmDecMasYr * masToRad
	speed := math.Hypot(vEast, vNorth)

	theta := speed * dtYears
	if theta == 0 {
		return wrapDeg(raRefDeg), clampDec(decRefDeg)
	}

	// Position unit vector and local east/north tangent basis.
	px, py, pz := cosDec*cosRA, cosDec*sinRA, sinDec
	ex, ey, ez := -sinRA, cosRA, 0.0
	nx, ny, nz := -sinDec*cosRA, -sinDec*sinRA, cosDec

	// Unit velocity direction in the tangent plane.
	vx := (vEast*ex + vNorth*nx) / speed
	vy := (vEast*ey + vNorth*ny) / speed
	vz := (vEast*ez + vNorth*nz) / speed

	// Great-circle motion: rotate p toward v̂ through theta. This is the
	// Rodrigues rotation about the axis p × v̂; with p ⊥ v̂ it reduces to
	// p' = p·cosθ + v̂·sinθ.
	sinT, cosT := math.Sincos(theta)
	qx := px*cosT + vx*sinT
	qy := py*cosT + vy*sinT
	qz := pz*cosT + vz*sinT

	// Renormalize against accumulated rounding before reading angles back.
	norm := math.Sqrt(qx*qx + qy*qy + qz*qz)
	qx, qy, qz = qx/norm, qy/norm, qz/norm

	decNowDeg = math.Asin(math.Max(-1, math.Min(1, qz))) / degToRad
	raNowDeg = wrapDeg(math.Atan2(qy, qx) / degToRad)
	return raNowDeg, decNowDeg
}

func clampDec(deg float64) float64 {
	if deg > 90 {
		return 90
	}
	if deg < -90 {
		return -90
	}
	return deg
}
