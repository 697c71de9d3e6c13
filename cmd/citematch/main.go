// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citematch CLI. It matches
// reference markers from a document body against the document's
// bibliography records and manages the local record store.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/citematch/internal/logger"
	"github.com/pdiddy/citematch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is the configuration loaded by initConfig and used by every command.
var cfg = types.DefaultConfig()

// rootCmd is the base command for the citematch CLI.
var rootCmd = &cobra.Command{
	Use:   "citematch",
	Short: "Resolve in-text reference markers to bibliography records",
	Long: `citematch links reference markers such as "(Smith et al., 1990)" or
"[3, 5-7]" to the bibliography records they cite.

Records are imported from YAML files into a local SQLite store with
"records import"; "match" resolves a file of markers against a stored
document or a records file and reports match counters.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(&cfg); err != nil {
			return err
		}
		logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := types.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./citematch.yaml or ~/.config/citematch/citematch.yaml)")
	flags.String("store-dir", defaults.Store.Dir, "base directory for the record store (contains records/, index/)")
	flags.String("index-backend", string(defaults.Matcher.IndexBackend), "record index back end: memory or sqlite")
	flags.Int("max-range", defaults.Matcher.MaxRange, "largest accepted width of a numeric citation range")
	flags.String("log-level", defaults.Logging.Level, "log level: debug, info, warn, error")
	flags.String("log-format", defaults.Logging.Format, "log format: text or json")

	bindFlag("store.dir", "store-dir")
	bindFlag("matcher.index_backend", "index-backend")
	bindFlag("matcher.max_range", "max-range")
	bindFlag("logging.level", "log-level")
	bindFlag("logging.format", "log-format")
	viper.SetDefault("metrics.file", defaults.Metrics.File)
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citematch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citematch"))
		}
	}

	viper.SetEnvPrefix("CITEMATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig overlays viper settings (file, environment, flags) onto c.
func loadConfig(c *types.Config) error {
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	switch c.Matcher.IndexBackend {
	case types.BackendMemory, types.BackendSQLite:
	default:
		return fmt.Errorf("unsupported index backend %q: use memory or sqlite", c.Matcher.IndexBackend)
	}
	return nil
}

func main() {
	err := rootCmd.Execute()
	_ = zap.L().Sync()
	if err != nil {
		os.Exit(1)
	}
}
