// Command wordspace trains skip-gram word embeddings and serves similarity
// queries over them.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/wordspace/internal/adapters/driven/artifact"
	"github.com/custodia-labs/wordspace/internal/adapters/driven/config/file"
	"github.com/custodia-labs/wordspace/internal/adapters/driven/metrics/prometheus"
	"github.com/custodia-labs/wordspace/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/wordspace/internal/adapters/driving/cli"
	"github.com/custodia-labs/wordspace/internal/core/services"
	"github.com/custodia-labs/wordspace/internal/normalisers"
)

// version is set at build time via ldflags.
var version = "dev"

// homeEnv overrides the application directory (default ~/.wordspace).
const homeEnv = "WORDSPACE_HOME"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		// Command errors are already printed by cobra.
		var se setupError
		if errors.As(err, &se) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// setupError marks failures that happen before cobra runs.
type setupError struct{ error }

func (e setupError) Unwrap() error { return e.error }

func run(ctx context.Context) error {
	baseDir := os.Getenv(homeEnv)
	if baseDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return setupError{fmt.Errorf("resolve home directory: %w", err)}
		}
		baseDir = dir
	}

	configStore, err := file.NewConfigStore(baseDir)
	if err != nil {
		return setupError{fmt.Errorf("open config: %w", err)}
	}
	settingsService := services.NewSettingsService(configStore, baseDir)
	settings, err := settingsService.Get()
	if err != nil {
		return setupError{fmt.Errorf("load settings: %w", err)}
	}

	corpusStore, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return setupError{fmt.Errorf("open corpus store: %w", err)}
	}
	defer corpusStore.Close()

	metrics := prometheus.NewRecorder()
	models := services.NewModelStore(artifact.NewStore(), metrics)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Training:       services.NewTrainingService(metrics),
		Corpus:         services.NewCorpusService(corpusStore, normalisers.DefaultRegistry(settings.Preprocess)),
		Models:         models,
		Query:          services.NewQueryService(models, metrics),
		Projection:     services.NewProjectionService(models),
		Settings:       settingsService,
		MetricsHandler: metrics.Handler(),
	})

	return cli.ExecuteContext(ctx)
}
