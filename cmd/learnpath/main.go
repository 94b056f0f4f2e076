package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/learnpath/internal/bootstrap"
	"github.com/at-ishikawa/learnpath/internal/config"
	"github.com/at-ishikawa/learnpath/internal/progress"
)

var (
	configFile string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	var debugMode bool
	rootCommand := &cobra.Command{
		Use:           "learnpath",
		Short:         "Track learning progress and notes across collections",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return loadDotEnv(".env")
		},
	}
	rootCommand.SetGlobalNormalizationFunc(normalizeFlagName)
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	rootCommand.AddCommand(
		newMigrateCommand(),
		newCatalogCommand(),
		newProgressCommand(),
		newNotesCommand(),
	)
	return rootCommand
}

// normalizeFlagName accepts snake_case spellings of flags, e.g. --output_dir for --output-dir.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}

// loadDotEnv exports the variables of path into the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("godotenv.Load(%s) > %w", path, err)
	}
	slog.Default().Debug("Loaded environment file", "path", path)
	return nil
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openTracker builds a tracker over the configured store and catalog.
// The caller runs app's shutdown hooks once it is done with the tracker.
func openTracker(ctx context.Context, app *bootstrap.App, cfg *config.Config) (*progress.Tracker, bootstrap.Catalog, error) {
	contents, err := bootstrap.OpenCatalog(cfg.Catalog)
	if err != nil {
		return nil, bootstrap.Catalog{}, fmt.Errorf("bootstrap.OpenCatalog() > %w", err)
	}
	store, err := bootstrap.OpenStore(ctx, app, cfg)
	if err != nil {
		return nil, bootstrap.Catalog{}, fmt.Errorf("bootstrap.OpenStore() > %w", err)
	}
	return progress.NewTracker(store, contents), contents, nil
}
