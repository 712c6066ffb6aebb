// Package cli provides the cobra command tree for wordspace.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driving"
	"github.com/custodia-labs/wordspace/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by main.
var (
	trainingService   driving.TrainingService
	corpusService     driving.CorpusService
	modelService      driving.ModelService
	queryService      driving.QueryService
	projectionService driving.ProjectionService
	settingsService   driving.SettingsService
	metricsHandler    http.Handler
)

// Global flags.
var (
	verbose   bool
	modelPath string
)

// Services aggregates the driving ports used by commands.
type Services struct {
	Training   driving.TrainingService
	Corpus     driving.CorpusService
	Models     driving.ModelService
	Query      driving.QueryService
	Projection driving.ProjectionService
	Settings   driving.SettingsService

	// MetricsHandler serves /metrics on the MCP HTTP transport. Optional.
	MetricsHandler http.Handler
}

var rootCmd = &cobra.Command{
	Use:   "wordspace",
	Short: "Train and query word embeddings",
	Long: `wordspace learns a vector for every word of a text corpus with
skip-gram negative sampling and answers semantic queries over the result:
nearest neighbours, similarity and analogies.

Typical workflow:
  wordspace ingest novel.txt
  wordspace train
  wordspace similar king`,
	SilenceUsage:      true,
	PersistentPreRunE: configureLogging,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show debug output")
	rootCmd.PersistentFlags().StringVar(&modelPath, "model", "", "model artifact to query (default from settings)")
}

// SetVersion sets the version string shown by 'wordspace version'.
func SetVersion(v string) {
	version = v
}

// SetServices injects the application services.
func SetServices(s Services) {
	trainingService = s.Training
	corpusService = s.Corpus
	modelService = s.Models
	queryService = s.Query
	projectionService = s.Projection
	settingsService = s.Settings
	metricsHandler = s.MetricsHandler
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// configureLogging enables verbose output from the flag or the log.verbose setting.
func configureLogging(cmd *cobra.Command, _ []string) error {
	v := verbose
	if !cmd.Flags().Changed("verbose") && settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			v = v || s.Verbose
		}
	}
	logger.SetVerbose(v)
	logger.SetOutput(cmd.ErrOrStderr())
	return nil
}

// resolveModelPath returns --model or the configured model path.
func resolveModelPath() (string, error) {
	if modelPath != "" {
		return modelPath, nil
	}
	if settingsService == nil {
		return "", errors.New("settings service not configured")
	}
	s, err := settingsService.Get()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return s.ModelPath, nil
}

// ensureModel loads the model artifact unless one is already live.
func ensureModel(ctx context.Context) error {
	if modelService == nil {
		return errors.New("model service not configured")
	}
	if _, err := modelService.Current(); err == nil {
		return nil
	}

	path, err := resolveModelPath()
	if err != nil {
		return err
	}
	if _, err := modelService.Load(ctx, path); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no model at %s: run 'wordspace train' first", path)
		}
		return err
	}
	return nil
}

// requireQuery loads the model and returns the query service.
func requireQuery(cmd *cobra.Command) (driving.QueryService, error) {
	if queryService == nil {
		return nil, errors.New("query service not configured")
	}
	if err := ensureModel(cmd.Context()); err != nil {
		return nil, err
	}
	return queryService, nil
}
