package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pierregab/HPMS/pkg/storage"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the snapshot cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show what is cached",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cachePath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Println("No cache yet.")
			return nil
		}

		db, err := storage.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()

		snapshots, latest, err := db.Info(context.Background())
		if err != nil {
			return err
		}
		if snapshots == 0 {
			fmt.Println("Cache is empty.")
			return nil
		}

		records, _, err := db.LoadLatest(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Snapshots: %d\n", snapshots)
		fmt.Printf("Latest fetch: %s (%d stars)\n", latest.Format(time.RFC3339), len(records))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cachePath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Println("No cache to clear.")
			return nil
		}

		db, err := storage.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Clear(context.Background()); err != nil {
			return err
		}
		fmt.Println("Cache cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
