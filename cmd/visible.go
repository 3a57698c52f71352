package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pierregab/HPMS/internal/utils"
	"github.com/pierregab/HPMS/pkg/catalog"
	"github.com/pierregab/HPMS/pkg/simbad"
	"github.com/pierregab/HPMS/pkg/storage"
	"github.com/pierregab/HPMS/pkg/visibility"
)

// visibleCmd represents the visible command
var visibleCmd = &cobra.Command{
	Use:   "visible",
	Short: "List high proper motion stars above the horizon at the observation time",
	Long: `Fetches the high proper motion star catalog (or reuses the cached
snapshot), advances every star from J2000.0 to the observation time,
transforms into the local horizontal frame, and prints the ones standing
above the minimum altitude. During daytime nothing is observable and the
table is empty by definition.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hour, _ := cmd.Flags().GetFloat64("time")
		at, _ := cmd.Flags().GetString("at")
		reuse, _ := cmd.Flags().GetBool("reuse")
		noSave, _ := cmd.Flags().GetBool("no-cache-save")
		minAlt, _ := cmd.Flags().GetFloat64("min-altitude")
		sortBy, _ := cmd.Flags().GetString("sort-by")
		sortOrder, _ := cmd.Flags().GetString("sort-order")
		tieBreak, _ := cmd.Flags().GetString("tie-break")

		params := visibility.DefaultParams()
		params.MinAltitudeDeg = minAlt

		sortSpec, err := parseSortFlags(sortBy, sortOrder, tieBreak)
		if err != nil {
			return err
		}
		params.Sort = sortSpec

		// Reject bad configuration before touching network or cache.
		if err := params.Validate(); err != nil {
			return err
		}

		site := siteFromConfig()
		instant, err := resolveInstant(hour, cmd.Flags().Changed("time"), at, site)
		if err != nil {
			return err
		}

		records, err := loadRecords(context.Background(), reuse, !noSave)
		if err != nil {
			return err
		}

		localTime := instant.Civil.In(siteLocation(site))

		fmt.Print(LOGO)
		fmt.Printf("High Proper Motion Stars Visible at %s (lat %.4f, lon %.4f)\n\n",
			localTime.Format("2006-01-02 15:04 MST"), site.LatDeg, site.LonDeg)

		if len(records) == 0 {
			fmt.Println("No stars found matching the criteria.")
			return nil
		}
		utils.Log.Infof("Number of stars retrieved: %d", len(records))

		result, err := visibility.Run(records, site, instant, params)
		if err != nil {
			return err
		}

		if !result.Night {
			fmt.Printf("It is not night at the site at the specified observation time (solar altitude %.1f°). No stars will be visible.\n",
				result.SolarAltitudeDeg)
			return nil
		}

		if len(result.Visible) == 0 {
			fmt.Printf("No high proper motion stars are currently visible above %.1f°.\n", params.MinAltitudeDeg)
			return nil
		}

		fmt.Printf("Number of stars visible above %.1f°: %d\n\n", params.MinAltitudeDeg, len(result.Visible))
		printVisibleTable(result.Visible)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(visibleCmd)

	visibleCmd.Flags().Float64P("time", "t", 0, "Observation hour in local time (24-hour format). Example: 22.5 for 22:30. Defaults to now")
	visibleCmd.Flags().String("at", "", "Exact observation instant, RFC3339 (overrides -t)")
	visibleCmd.Flags().BoolP("reuse", "r", false, "Reuse the last query result from the cache")
	visibleCmd.Flags().Bool("no-cache-save", false, "Do not cache the fetched query result")
	visibleCmd.Flags().Float64P("min-altitude", "m", 30.0, "Minimum altitude (in degrees) for a star to be considered visible")
	visibleCmd.Flags().String("sort-by", "", "Sort field: identifier, ra-ref, dec-ref, pm-ra, pm-dec, mag, total-pm, altitude. Default: catalog order")
	visibleCmd.Flags().String("sort-order", "asc", "Sort order: asc or desc")
	visibleCmd.Flags().String("tie-break", "", "Secondary sort field for equal keys (default: identifier)")
}

func parseSortFlags(sortBy, sortOrder, tieBreak string) (*visibility.SortSpec, error) {
	if sortBy == "" {
		return nil, nil
	}

	key, err := visibility.ParseField(sortBy)
	if err != nil {
		return nil, err
	}

	spec := &visibility.SortSpec{Key: key}

	switch sortOrder {
	case "", "asc", "ascending":
	case "desc", "descending":
		spec.Descending = true
	default:
		return nil, fmt.Errorf("%w: sort order %q (want asc or desc)", visibility.ErrInvalidConfiguration, sortOrder)
	}

	if tieBreak != "" {
		tb, err := visibility.ParseField(tieBreak)
		if err != nil {
			return nil, err
		}
		spec.TieBreak = tb
	}

	return spec, nil
}

// loadRecords supplies the catalog rows, either from the snapshot cache or
// from a fresh TAP query. Cached rows have the same shape and invariants
// as fresh ones; nothing downstream knows the difference.
func loadRecords(ctx context.Context, reuse, save bool) ([]catalog.StarRecord, error) {
	path, err := cachePath()
	if err != nil {
		return nil, err
	}

	if reuse {
		db, err := storage.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening cache: %w", err)
		}
		defer db.Close()

		records, fetchedAt, err := db.LoadLatest(ctx)
		if errors.Is(err, storage.ErrNoSnapshot) {
			return nil, fmt.Errorf("no cached query found; run without --reuse first")
		}
		if err != nil {
			return nil, fmt.Errorf("loading cache: %w", err)
		}
		utils.Log.Infof("Reusing cached query result from %s", fetchedAt.Format(time.RFC3339))
		return records, nil
	}

	client := simbad.NewClient(viper.GetString("simbad.url"))
	utils.Log.Info("Querying SIMBAD TAP service for high proper motion stars...")

	records, err := client.FetchHighProperMotion(ctx, queryOptionsFromConfig())
	if err != nil {
		return nil, err
	}

	if save {
		db, err := storage.Open(path)
		if err != nil {
			utils.Log.Warnf("Failed to open cache: %v", err)
			return records, nil
		}
		defer db.Close()
		if err := db.SaveSnapshot(ctx, "simbad", time.Now(), records); err != nil {
			utils.Log.Warnf("Failed to save cache: %v", err)
		} else {
			utils.Log.Info("Query completed and results cached.")
		}
	}

	return records, nil
}

func printVisibleTable(stars []visibility.VisibleStar) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "IDENTIFIER\tJ2000 RA\tJ2000 DEC\tRA NOW\tDEC NOW\tPMRA\tPMDEC\tTOTAL PM\tMAG\t")
	for _, s := range stars {
		fmt.Fprintf(w, "%s\t%.5f\t%.5f\t%.5f\t%.5f\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			s.Identifier,
			s.RARefDeg, s.DecRefDeg,
			s.RANowDeg, s.DecNowDeg,
			s.PMRARaw, s.PMDecRaw,
			s.TotalMotion,
			s.Magnitude)
	}
	w.Flush()
}
