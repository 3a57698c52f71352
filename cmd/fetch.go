package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pierregab/HPMS/internal/utils"
	"github.com/pierregab/HPMS/pkg/simbad"
	"github.com/pierregab/HPMS/pkg/storage"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Query the catalog and refresh the cached snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cachePath()
		if err != nil {
			return err
		}

		client := simbad.NewClient(viper.GetString("simbad.url"))
		utils.Log.Info("Querying SIMBAD TAP service for high proper motion stars...")

		records, err := client.FetchHighProperMotion(context.Background(), queryOptionsFromConfig())
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("No stars found matching the criteria.")
			return nil
		}

		db, err := storage.Open(path)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer db.Close()

		if err := db.SaveSnapshot(context.Background(), "simbad", time.Now(), records); err != nil {
			return fmt.Errorf("saving cache: %w", err)
		}

		fmt.Printf("Fetched and cached %d stars.\n", len(records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
