package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/pierregab/HPMS/internal/utils"
)

var cfgFile string

const (
	LOGO = ` /$$   /$$ /$$$$$$$  /$$      /$$  /$$$$$$
| $$  | $$| $$__  $$| $$$    /$$$ /$$__  $$
| $$  | $$| $$  \ $$| $$$$  /$$$$| $$  \__/
| $$$$$$$$| $$$$$$$/| $$ $$/$$ $$|  $$$$$$
| $$__  $$| $$____/ | $$  $$$| $$ \____  $$
| $$  | $$| $$      | $$\  $ | $$ /$$  \ $$
| $$  | $$| $$      | $$ \/  | $$|  $$$$$$/
|__/  |__/|__/      |__/     |__/ \______/

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hpms",
	Short: "Find high proper motion stars visible from your observing site.",
	Long: LOGO + `hpms queries the SIMBAD catalog for high proper motion stars, advances
their positions from J2000.0 to the observation time, and tells you which
ones stand above the horizon at your site right now (or at any hour you
pick).`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hpms.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".hpms")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.hpms.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Observing site. Defaults to the Strasbourg observatory grounds.
	viper.SetDefault("site.latitude", 48.5833)
	viper.SetDefault("site.longitude", 7.75)
	viper.SetDefault("site.elevation", 140.0)
	viper.SetDefault("site.timezone", "Europe/Berlin")

	// Catalog query.
	viper.SetDefault("simbad.url", "")
	viper.SetDefault("query.min_total_pm", 1000.0)
	viper.SetDefault("query.flux_filter", "V")
	viper.SetDefault("query.min_magnitude", 6.0)
	viper.SetDefault("query.max_magnitude", 15.0)

	// Snapshot cache.
	viper.SetDefault("cache.path", "")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
