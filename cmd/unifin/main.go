// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the unifin CLI, which tracks and
// collects UK university financial statements: it inventories what has
// been acquired, computes coverage gaps, plans bounded search batches,
// and runs the download/extract cycle.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/unifin/internal/extractor"
	"github.com/pdiddy/unifin/internal/fetcher"
	"github.com/pdiddy/unifin/internal/identity"
	"github.com/pdiddy/unifin/internal/progress"
	"github.com/pdiddy/unifin/internal/secrets"
	"github.com/pdiddy/unifin/internal/tracker"
	"github.com/pdiddy/unifin/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is initialized in the root PersistentPreRunE.
var logger *zap.Logger

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the unifin CLI.
var rootCmd = &cobra.Command{
	Use:   "unifin",
	Short: "Collect and track UK university financial statements",
	Long: `unifin maintains a record store of UK university financial statements.
Each invocation re-derives the state of the collection from the store:
inventory shows coverage, analyze shows the missing years, plan emits the
next bounded batch of search queries, and run executes a full
download-and-extract cycle.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}

		loadedSecrets, err = secrets.Load(".secrets/", logger)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./unifin.yaml or ~/.config/unifin/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("unifin")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "unifin"))
		}
	}

	viper.SetEnvPrefix("UNIFIN")
	viper.AutomaticEnv()

	viper.SetDefault("window.lookback_years", 5)
	viper.SetDefault("window.lookahead_years", 2)
	viper.SetDefault("batch.universities_per_batch", 5)
	viper.SetDefault("batch.years_per_university", 3)
	viper.SetDefault("fetch.timeout", "20s")
	viper.SetDefault("fetch.results_per_query", 30)
	viper.SetDefault("fetch.downloads_per_query", 2)
	viper.SetDefault("fetch.requests_per_second", 0.5)
	viper.SetDefault("fetch.workers", 3)
	viper.SetDefault("fetch.download_dir", "downloads")
	viper.SetDefault("extract.pdftotext_path", "pdftotext")
	viper.SetDefault("extract.output_dir", "extracted")
	viper.SetDefault("store.path", filepath.Join("data", "tracker.db"))
	viper.SetDefault("snapshots.dir", "snapshots")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadPipelineConfig materializes the full pipeline configuration from
// viper (defaults, config file, UNIFIN_* environment).
func loadPipelineConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.PipelineConfig{}, fmt.Errorf("parsing configuration: %w", err)
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "unifin/" + version
		if email, ok := loadedSecrets[secrets.ContactEmail]; ok {
			cfg.Fetch.UserAgent += " (" + email + ")"
		}
	}
	return cfg, nil
}

// openStore opens the tracker database named by the configuration.
func openStore(cfg types.PipelineConfig) (*tracker.Store, error) {
	return tracker.Open(cfg.Store.Path)
}

// buildPipeline assembles the production collaborators.
func buildPipeline(cfg types.PipelineConfig) (*identity.Normalizer, fetcher.Fetcher, extractor.Extractor, *progress.Tracker) {
	return identity.New(),
		fetcher.NewDuckDuckGo(cfg.Fetch, logger),
		extractor.NewPdfToText(cfg.Extract, logger),
		progress.NewTracker(cfg.Snapshots.Dir, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
