package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tweetgrid/pkg/auth"
	"tweetgrid/pkg/collector"
	"tweetgrid/pkg/config"
	"tweetgrid/pkg/lists"
	"tweetgrid/pkg/logger"
	"tweetgrid/pkg/query"
	"tweetgrid/pkg/ratelimit"
	"tweetgrid/pkg/storage"
	"tweetgrid/pkg/twitter"
	"tweetgrid/pkg/ui"
)

var (
	// Collect command flags
	apiToken     string
	outputPath   string
	listsFile    string
	batchSize    int
	sleepBetween time.Duration
	apiTimeout   time.Duration
	maxLocations int
	maxKeywords  int
	maxQueries   int
	rpm          int
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run a collection over the locations x keywords grid",
	Long: `Run a tweet collection over the full locations x keywords grid.

An API token is required, provided through:
  - Stored token (use 'tweetgrid auth login' to store)
  - TWEETGRID_API_TOKEN environment variable
  - --token flag or configuration file

Results are appended to the output CSV in batches. Interrupting the run
flushes what was collected so far; re-running appends to the same file
without repeating the header.`,
	Example: `  # Collect using built-in locations and keywords
  tweetgrid collect

  # Smoke test: 2 locations, 3 keywords
  tweetgrid collect --max-locations 2 --max-keywords 3

  # Custom grid and output
  tweetgrid collect --lists ./grid.yaml --output ./data/tweets.csv

  # Slower pacing
  tweetgrid collect --sleep 1s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runCollect(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().StringVarP(&apiToken, "token", "t", "", "API token (overrides stored token)")
	collectCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output CSV file path")
	collectCmd.Flags().StringVarP(&listsFile, "lists", "l", "", "YAML file with locations and keywords")
	collectCmd.Flags().IntVar(&batchSize, "batch-size", 200, "rows buffered before each flush")
	collectCmd.Flags().DurationVar(&sleepBetween, "sleep", 250*time.Millisecond, "pause between queries")
	collectCmd.Flags().DurationVar(&apiTimeout, "timeout", 30*time.Second, "per-request timeout")
	collectCmd.Flags().IntVar(&maxLocations, "max-locations", 0, "cap on locations (0 = all)")
	collectCmd.Flags().IntVar(&maxKeywords, "max-keywords", 0, "cap on keywords (0 = all)")
	collectCmd.Flags().IntVar(&maxQueries, "max-queries", 0, "cap on total queries (0 = all)")
	collectCmd.Flags().IntVar(&rpm, "rpm", 0, "requests per minute (overrides --sleep when set)")
}

func runCollect(cmd *cobra.Command, args []string) {
	// Build flags map from command line
	flags := make(map[string]interface{})
	if apiToken != "" {
		flags["token"] = apiToken
	}
	if outputPath != "" {
		flags["output"] = outputPath
	}
	if listsFile != "" {
		flags["lists"] = listsFile
	}
	if batchSize != 200 {
		flags["batch-size"] = batchSize
	}
	if sleepBetween != 250*time.Millisecond {
		flags["sleep"] = sleepBetween
	}
	if apiTimeout != 30*time.Second {
		flags["timeout"] = apiTimeout
	}
	if maxLocations > 0 {
		flags["max-locations"] = maxLocations
	}
	if maxKeywords > 0 {
		flags["max-keywords"] = maxKeywords
	}
	if maxQueries > 0 {
		flags["max-queries"] = maxQueries
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	logger.Initialize(&cfg.Logging)
	logger.WithField("version", version).Info("tweetgrid starting")

	// Resolve the API token: flag/env/config first, stored token as fallback.
	if cfg.API.Token == "" {
		manager, err := auth.NewManager()
		if err == nil {
			if token, err := manager.Retrieve(); err == nil {
				cfg.API.Token = token
				logger.Info("Using stored API token")
			}
		}
	}
	if cfg.API.Token == "" {
		logger.Error("No API token found")
		ui.PrintError("No API token found", "Run 'tweetgrid auth login' to store one, or set TWEETGRID_API_TOKEN")
		os.Exit(1)
	}

	grid := lists.Defaults()
	if cfg.Output.ListsFile != "" {
		grid, err = lists.Load(cfg.Output.ListsFile)
		if err != nil {
			ui.PrintError("Failed to load lists file", err.Error())
			os.Exit(1)
		}
	}

	writer, err := storage.NewCSVWriter(cfg.Output.CSVPath, logger.GetLogger())
	if err != nil {
		ui.PrintError("Failed to prepare output file", err.Error())
		os.Exit(1)
	}

	var limiter ratelimit.Limiter
	if cfg.RateLimit.RequestsPerMinute > 0 {
		limiter = ratelimit.NewTokenBucket(cfg.RateLimit.RequestsPerMinute, time.Minute)
	} else {
		limiter = ratelimit.NewFixedDelay(cfg.RateLimit.SleepBetween)
	}

	client := twitter.NewClient(&cfg.API, logger.GetLogger())
	pipeline := collector.New(client, writer, limiter, &cfg.Collection, logger.GetLogger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	totalQueries := query.New(grid.Locations, grid.Keywords, query.Options{
		MaxLocations: cfg.Collection.MaxLocations,
		MaxKeywords:  cfg.Collection.MaxKeywords,
		MaxQueries:   cfg.Collection.MaxQueries,
	}).Total()
	ui.PrintRunBanner(len(grid.Locations), len(grid.Keywords), totalQueries, cfg.Output.CSVPath)

	stats, err := pipeline.Run(ctx, grid.Locations, grid.Keywords)
	ui.PrintRunSummary(stats)

	switch {
	case err == nil:
		ui.PrintSuccess("Collection finished")
	case errors.Is(err, context.Canceled):
		ui.PrintWarning("Collection interrupted, partial results saved")
	default:
		logger.WithError(err).Error("Collection failed")
		ui.PrintError("Collection failed", err.Error())
		os.Exit(1)
	}
}
