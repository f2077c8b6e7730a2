package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"preschool-finder/config"
	"preschool-finder/services"
	"preschool-finder/storage"
	"preschool-finder/utils"
)

var rootCmd = &cobra.Command{
	Use:   "preschool-finder",
	Short: "Search, recommend and locate preschools",
	Long: `preschool-finder loads a preschool catalogue once at start-up and answers
search, recommendation, featured and nearby queries over it, either from the
command line or over HTTP.

The catalogue comes from DATA_SOURCE (builtin|json|yaml|csv|postgres) or the
--source/--data flags. When the source is unavailable the built-in reference
set is used.

Examples:
  preschool-finder search montessori --min-rating 4.5
  preschool-finder nearby --lat 37.7749 --lng -122.4194 --radius 5
  preschool-finder --data preschools.json serve --port 8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	sourceFlag    string
	dataFlag      string
	logLevelFlag  string
	formatFlag    string
	favoritesFlag []string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "Data source: builtin|json|yaml|csv|postgres (overrides DATA_SOURCE)")
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", "Dataset file path (overrides DATA_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug|info|warn|error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text|json")
	rootCmd.PersistentFlags().StringSliceVar(&favoritesFlag, "favorite", nil, "Facility ids to flag as favorites")

	rootCmd.AddCommand(
		newServeCmd(),
		newSearchCmd(),
		newRecommendCmd(),
		newFeaturedCmd(),
		newNearbyCmd(),
		newShowCmd(),
		newStatsCmd(),
		newExportCmd(),
		newImportCmd(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by every subcommand.
type app struct {
	cfg    *config.Config
	logger *utils.Logger
}

func newApp() *app {
	cfg := config.Load()
	if dataFlag != "" {
		cfg.DataPath = dataFlag
		if sourceFlag == "" {
			cfg.DataSource = ""
			cfg.DataSource = cfg.ResolveSource()
		}
	}
	if sourceFlag != "" {
		cfg.DataSource = strings.ToLower(sourceFlag)
	}
	if logLevelFlag != "" {
		cfg.LogLevel = strings.ToLower(logLevelFlag)
	}

	logger := utils.NewLogger().WithLevel(cfg.LogLevel)
	return &app{cfg: cfg, logger: logger}
}

func (a *app) retryConfig() *utils.RetryConfig {
	return &utils.RetryConfig{
		MaxAttempts: a.cfg.MaxRetries,
		BaseDelay:   time.Duration(a.cfg.RetryDelayMs) * time.Millisecond,
		Logger:      a.logger,
	}
}

// provider selects the DataProvider for source and path. The returned
// closer releases any connection it holds.
func (a *app) provider(ctx context.Context, source, path string, cleaner storage.RawCleaner) (storage.DataProvider, func(), error) {
	noop := func() {}

	switch source {
	case config.SourceBuiltin:
		return storage.BuiltinProvider{}, noop, nil
	case config.SourceJSON, config.SourceYAML:
		if path == "" {
			return nil, noop, fmt.Errorf("%s source needs a dataset path (DATA_PATH or --data)", source)
		}
		return storage.NewFileProvider(path, source), noop, nil
	case config.SourceCSV:
		if path == "" {
			return nil, noop, fmt.Errorf("csv source needs a dataset path (DATA_PATH or --data)")
		}
		return storage.NewCSVProvider(path, cleaner), noop, nil
	case config.SourcePostgres:
		pg, err := storage.NewPostgresProvider(ctx, a.cfg.DSN(), a.retryConfig())
		if err != nil {
			return nil, noop, err
		}
		return pg, func() { _ = pg.Close() }, nil
	}
	return nil, noop, fmt.Errorf("unknown data source %q", source)
}

// queryService loads the catalogue and builds the service every query
// command runs against.
func (a *app) queryService(ctx context.Context) (*services.QueryService, error) {
	cleaner := services.NewCleaner(a.logger)

	provider, closeProvider, err := a.provider(ctx, a.cfg.DataSource, a.cfg.DataPath, cleaner)
	if err != nil {
		if a.cfg.DataSource != config.SourcePostgres {
			return nil, err
		}
		a.logger.Warn("[main] %v: %v", services.ErrDataUnavailable, err)
		provider = storage.BuiltinProvider{}
	}
	defer closeProvider()

	catalogue := services.LoadCatalogue(ctx, provider, cleaner, a.logger)

	var opts []services.Option
	if len(favoritesFlag) > 0 {
		opts = append(opts, services.WithFavorites(services.NewMemoryFavorites(favoritesFlag...)))
	}
	return services.NewQueryService(catalogue, a.logger, opts...), nil
}
