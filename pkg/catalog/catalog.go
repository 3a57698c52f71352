// Package catalog defines the star records flowing through the pipeline.
package catalog

import (
	"fmt"
	"math"
)

// StarRecord is one catalog entry at its reference epoch. Records are
// immutable inputs: every derived position is recomputed from these fields
// for each observation instant.
type StarRecord struct {
	// Identifier is the catalog's main identifier, unique within a query
	// result and used as the stable sort key.
	Identifier string

	// Equatorial position at the reference epoch (ICRS), degrees.
	RARefDeg  float64
	DecRefDeg float64

	// Proper motion components in mas/yr. PMRARaw is the raw catalog
	// value, NOT pre-multiplied by cos(dec); the scaling happens inside
	// the propagator.
	PMRARaw  float64
	PMDecRaw float64

	// Magnitude is the instrument-band flux value.
	Magnitude float64
}

// TotalMotion returns the scalar proper motion sqrt(pmRA² + pmDec²), mas/yr.
func (r StarRecord) TotalMotion() float64 {
	return math.Hypot(r.PMRARaw, r.PMDecRaw)
}

// Validate rejects records the propagator must never see: non-finite
// fields or a declination outside [-90, 90].
func (r StarRecord) Validate() error {
	if r.Identifier == "" {
		return fmt.Errorf("star record has no identifier")
	}
	for name, v := range map[string]float64{
		"ra":        r.RARefDeg,
		"dec":       r.DecRefDeg,
		"pmra":      r.PMRARaw,
		"pmdec":     r.PMDecRaw,
		"magnitude": r.Magnitude,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("star %q: field %s is not finite", r.Identifier, name)
		}
	}
	if r.DecRefDeg < -90 || r.DecRefDeg > 90 {
		return fmt.Errorf("star %q: declination %g out of [-90, 90]", r.Identifier, r.DecRefDeg)
	}
	return nil
}
