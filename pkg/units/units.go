// Package units resolves the physical units attached to catalog columns.
//
// Catalog services label columns with unit strings in a handful of
// spellings ("mas/yr", "mas.yr-1", "deg", ...). Every numeric series
// entering the pipeline is pushed through Convert so that a column in the
// wrong unit either gets rescaled or aborts the run. Silently treating a
// proper motion in arcsec/yr as mas/yr would corrupt every downstream
// position, so incompatible units are a hard error, never a coercion.
package units

import "fmt"

type dimension int

const (
	dimNone dimension = iota
	dimAngle
	dimAngularRate
	dimUnknown
)

// Unit is a resolved physical unit. The zero value is Unitless.
type Unit struct {
	name   string
	dim    dimension
	factor float64 // scale to the dimension's base unit (deg, mas/yr)
}

var (
	// Unitless marks a dimensionless series. Convert passes it through
	// unchanged, interpreting the values as already in the target unit.
	Unitless = Unit{name: "(unitless)", dim: dimNone}

	Deg    = Unit{name: "deg", dim: dimAngle, factor: 1}
	Arcmin = Unit{name: "arcmin", dim: dimAngle, factor: 1.0 / 60}
	Arcsec = Unit{name: "arcsec", dim: dimAngle, factor: 1.0 / 3600}
	Mas    = Unit{name: "mas", dim: dimAngle, factor: 1.0 / 3.6e6}
	Rad    = Unit{name: "rad", dim: dimAngle, factor: 180.0 / 3.141592653589793}

	MasPerYear    = Unit{name: "mas/yr", dim: dimAngularRate, factor: 1}
	ArcsecPerYear = Unit{name: "arcsec/yr", dim: dimAngularRate, factor: 1000}
	DegPerYear    = Unit{name: "deg/yr", dim: dimAngularRate, factor: 3.6e6}
)

// aliasMap is the source of truth for unit-string resolution. It groups the
// spellings seen in VOTable metadata and on the command line under one Unit.
var aliasMap = map[Unit][]string{
	Deg:           {"deg", "degree", "degrees"},
	Arcmin:        {"arcmin", "'"},
	Arcsec:        {"arcsec", "\""},
	Mas:           {"mas"},
	Rad:           {"rad", "radian"},
	MasPerYear:    {"mas/yr", "mas.yr-1", "mas.yr**-1", "mas/a"},
	ArcsecPerYear: {"arcsec/yr", "arcsec.yr-1", "arcsec.yr**-1"},
	DegPerYear:    {"deg/yr", "deg.yr-1", "deg.yr**-1"},
}

var unitMap map[string]Unit

func init() {
	unitMap = make(map[string]Unit)
	for unit, aliases := range aliasMap {
		for _, a := range aliases {
			unitMap[a] = unit
		}
	}
}

// Parse resolves a raw unit string. An empty string is Unitless. A string
// that matches no known alias is returned as an opaque unknown unit: it
// carries the raw name so that a later Convert can report it in a
// MismatchError instead of guessing a meaning for it.
func Parse(raw string) Unit {
	if raw == "" {
		return Unitless
	}
	if u, ok := unitMap[raw]; ok {
		return u
	}
	return Unit{name: raw, dim: dimUnknown}
}

func (u Unit) String() string {
	return u.name
}

// MismatchError reports a series whose unit cannot be converted to the unit
// the pipeline needs. It is fatal: the run must abort before propagation.
type MismatchError struct {
	From, To Unit
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("unit %s is not convertible to %s", e.From, e.To)
}

// Convert rescales values from one unit to another, in place on a copy.
//
//   - from convertible to to: multiply by the conversion factor
//   - from Unitless: values are assumed to already be in the target unit
//   - anything else: *MismatchError
func Convert(values []float64, from, to Unit) ([]float64, error) {
	out := make([]float64, len(values))
	if from.dim == dimNone || from == to {
		copy(out, values)
		return out, nil
	}
	if from.dim != to.dim || to.dim == dimUnknown {
		return nil, &MismatchError{From: from, To: to}
	}
	scale := from.factor / to.factor
	for i, v := range values {
		out[i] = v * scale
	}
	return out, nil
}

// ConvertOne is Convert for a single value.
func ConvertOne(value float64, from, to Unit) (float64, error) {
	out, err := Convert([]float64{value}, from, to)
	if err != nil {
		return 0, err
	}
	return out[0], nil
}
