// Package visibility runs the observation pipeline: propagate every star
// to the observation instant, transform into the observer's horizontal
// frame, gate on day/night, filter by altitude, and rank the survivors.
package visibility

import (
	"errors"
	"fmt"
	"math"

	"github.com/pierregab/HPMS/pkg/astro"
	"github.com/pierregab/HPMS/pkg/catalog"
)

var (
	// ErrInvalidConfiguration marks parameters outside their domain.
	// Detected before any computation starts.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrTransformFailure marks numerically undefined geometry from a
	// corrupt record. Policy: the whole batch aborts; partial output
	// would silently hide a corrupt snapshot.
	ErrTransformFailure = errors.New("transform failure")
)

// Params configures one pipeline run.
type Params struct {
	// MinAltitudeDeg is the altitude a star must reach to count as
	// visible, inclusive. Domain [0, 90].
	MinAltitudeDeg float64

	// RefEpoch is the Julian epoch of the catalog positions.
	RefEpoch float64

	// Sort, when non-nil, orders the visible set. Nil keeps catalog order.
	Sort *SortSpec
}

// DefaultParams matches the tool's historical defaults: 30 degree
// horizon clearance, J2000.0 catalog positions.
func DefaultParams() Params {
	return Params{
		MinAltitudeDeg: 30,
		RefEpoch:       astro.J2000Epoch,
	}
}

// Validate rejects out-of-domain parameters before the pipeline runs.
func (p Params) Validate() error {
	if math.IsNaN(p.MinAltitudeDeg) || p.MinAltitudeDeg < 0 || p.MinAltitudeDeg > 90 {
		return fmt.Errorf("%w: minimum altitude %g outside [0, 90]", ErrInvalidConfiguration, p.MinAltitudeDeg)
	}
	if p.Sort != nil {
		if err := p.Sort.validate(); err != nil {
			return err
		}
	}
	return nil
}

// VisibleStar joins a catalog record with everything derived from it for
// one observation instant.
type VisibleStar struct {
	catalog.StarRecord

	// Propagated equatorial position at the observation instant, degrees.
	RANowDeg  float64
	DecNowDeg float64

	// Horizontal position at the site.
	AltDeg float64
	AzDeg  float64

	// TotalMotion is sqrt(pmRA² + pmDec²), mas/yr.
	TotalMotion float64
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Night reports the day/night gate. During day the visible set is
	// empty by definition, whatever the star altitudes are.
	Night bool

	// SolarAltitudeDeg is the Sun's geometric altitude used for the gate.
	SolarAltitudeDeg float64

	// Visible holds the stars above the threshold, in catalog order
	// unless a sort was requested.
	Visible []VisibleStar
}

// Run executes the pipeline over an immutable input batch. Each record's
// output depends only on its own fields plus the shared read-only site and
// instant, so records are processed independently.
func Run(records []catalog.StarRecord, site astro.Site, instant astro.Instant, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	solarAlt := astro.SolarAltitudeDeg(site, instant)
	res := Result{
		Night:            solarAlt < 0,
		SolarAltitudeDeg: solarAlt,
	}
	if !res.Night {
		return res, nil
	}

	dt := instant.YearsSince(p.RefEpoch)

	for _, r := range records {
		if err := r.Validate(); err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrTransformFailure, err)
		}

		raNow, decNow := astro.Propagate(r.RARefDeg, r.DecRefDeg, r.PMRARaw, r.PMDecRaw, dt)
		if math.IsNaN(raNow) || math.IsNaN(decNow) {
			return Result{}, fmt.Errorf("%w: star %q propagated to NaN", ErrTransformFailure, r.Identifier)
		}

		hz := astro.Horizontal(raNow, decNow, site, instant)
		if math.IsNaN(hz.AltDeg) || math.IsNaN(hz.AzDeg) {
			return Result{}, fmt.Errorf("%w: star %q transformed to NaN", ErrTransformFailure, r.Identifier)
		}

		if hz.AltDeg >= p.MinAltitudeDeg {
			res.Visible = append(res.Visible, VisibleStar{
				StarRecord:  r,
				RANowDeg:    raNow,
				DecNowDeg:   decNow,
				AltDeg:      hz.AltDeg,
				AzDeg:       hz.AzDeg,
				TotalMotion: r.TotalMotion(),
			})
		}
	}

	if p.Sort != nil {
		Sort(res.Visible, *p.Sort)
	}

	return res, nil
}
