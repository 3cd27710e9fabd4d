// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dat-filter CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dat-filter/internal/logging"
	"github.com/pdiddy/dat-filter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logCloser holds the open log file, if any, until the process exits.
var logCloser io.Closer

// rootCmd is the base command for the dat-filter CLI.
var rootCmd = &cobra.Command{
	Use:   "dat-filter",
	Short: "Curate DAT catalogs against recommended-game lists",
	Long: `dat-filter trims an XML DAT catalog down to the games recommended by
community wiki pages. It scrapes recommendation tables, fuzzy-matches the
titles against the catalog's game names, keeps the best release of each
recommended game (multi-disc releases travel together), and writes a filtered
DAT plus per-source reports of the titles it could not match.

The fetch subcommand runs the scrape alone and can save its result for
offline filtering runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		closer, err := logging.Setup(types.LogConfig{
			Level: stringSetting(cmd, "log-level", "log.level", "info"),
			File:  stringSetting(cmd, "log-file", "log.file", ""),
		})
		if err != nil {
			return err
		}
		logCloser = closer
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dat-filter.yaml or ~/.config/dat-filter/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "console log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "append all records at debug level to this file")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dat-filter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dat-filter"))
		}
	}

	viper.SetEnvPrefix("DAT_FILTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// stringSetting resolves a setting from the flag when given on the command
// line, the config file / environment otherwise, or the default.
func stringSetting(cmd *cobra.Command, flag, key, def string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return def
}

func intSetting(cmd *cobra.Command, flag, key string, def int) int {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return def
}

func boolSetting(cmd *cobra.Command, flag, key string) bool {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetBool(flag)
		return v
	}
	return viper.GetBool(key)
}

func durationSetting(cmd *cobra.Command, flag, key string, def time.Duration) time.Duration {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetDuration(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return def
}

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
