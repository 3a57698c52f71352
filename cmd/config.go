package cmd

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/pierregab/HPMS/internal/utils"
	"github.com/pierregab/HPMS/pkg/astro"
	"github.com/pierregab/HPMS/pkg/simbad"
	"github.com/pierregab/HPMS/pkg/visibility"
)

func siteFromConfig() astro.Site {
	return astro.Site{
		LatDeg:   viper.GetFloat64("site.latitude"),
		LonDeg:   viper.GetFloat64("site.longitude"),
		ElevM:    viper.GetFloat64("site.elevation"),
		Timezone: viper.GetString("site.timezone"),
	}
}

func queryOptionsFromConfig() simbad.QueryOptions {
	opts := simbad.DefaultQueryOptions()
	if v := viper.GetFloat64("query.min_total_pm"); v > 0 {
		opts.MinTotalPM = v
	}
	if v := viper.GetString("query.flux_filter"); v != "" {
		opts.FluxFilter = v
	}
	opts.MinMagnitude = viper.GetFloat64("query.min_magnitude")
	opts.MaxMagnitude = viper.GetFloat64("query.max_magnitude")
	return opts
}

func cachePath() (string, error) {
	if p := viper.GetString("cache.path"); p != "" {
		return p, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".hpms.sqlite"), nil
}

// siteLocation resolves the site's display timezone, falling back to the
// system zone when the name cannot be loaded.
func siteLocation(site astro.Site) *time.Location {
	if site.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(site.Timezone)
	if err != nil {
		utils.Log.Warnf("Unknown timezone %q, using system local time", site.Timezone)
		return time.Local
	}
	return loc
}

// resolveInstant turns the --time / --at flags into the observation
// instant. A bare hour selects the next occurrence of that local time:
// today if still ahead, otherwise tomorrow.
func resolveInstant(hour float64, hourSet bool, at string, site astro.Site) (astro.Instant, error) {
	if at != "" && hourSet {
		return astro.Instant{}, fmt.Errorf("%w: --time and --at are mutually exclusive", visibility.ErrInvalidConfiguration)
	}

	if at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return astro.Instant{}, fmt.Errorf("%w: bad --at timestamp %q: %v", visibility.ErrInvalidConfiguration, at, err)
		}
		return astro.NewInstant(t), nil
	}

	now := time.Now().In(siteLocation(site))
	if !hourSet {
		return astro.NewInstant(now), nil
	}

	if hour < 0 || hour >= 24 {
		return astro.Instant{}, fmt.Errorf("%w: observation hour %g outside [0, 24)", visibility.ErrInvalidConfiguration, hour)
	}

	h := int(hour)
	m := int(math.Round((hour - float64(h)) * 60))
	if m == 60 {
		h, m = h+1, 0
	}
	obs := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if obs.Before(now) {
		obs = obs.Add(24 * time.Hour)
	}
	return astro.NewInstant(obs), nil
}
