package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/normalisers/plaintext"
)

// probeNeighbors is how many neighbours --probe prints.
const probeNeighbors = 3

var (
	trainInputs       []string
	trainPretokenised bool
	trainOutput       string
	trainProbe        string
	trainArchitecture string
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train an embedding model",
	Long: `Builds a vocabulary from the corpus and trains word vectors with
negative sampling. The finished model is written to the configured model
path (or --output) and becomes the live model.

By default the ingested corpus is used. With --input, the given files are
preprocessed and trained on directly without being stored.

Hyperparameter flags override the training.* settings for this run only.`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	f := trainCmd.Flags()
	f.StringSliceVarP(&trainInputs, "input", "i", nil, "train on these files instead of the stored corpus")
	f.BoolVar(&trainPretokenised, "pretokenised", false, "input files hold one tokenised sentence per line")
	f.StringVarP(&trainOutput, "output", "o", "", "artifact path (default from settings; .txt/.vec writes text format)")
	f.StringVar(&trainProbe, "probe", "", "print the nearest neighbours of this word after training")

	d := domain.DefaultHyperparameters()
	f.StringVar(&trainArchitecture, "architecture", string(d.Architecture), "skipgram or cbow")
	f.Int("dimensions", d.Dimensions, "vector size")
	f.Int("window", d.Window, "maximum context window radius")
	f.Int("min-count", d.MinCount, "drop words seen fewer times")
	f.Int("negative", d.Negative, "negative samples per positive pair")
	f.Int("epochs", d.Epochs, "passes over the corpus")
	f.Float64("alpha", d.Alpha, "starting learning rate")
	f.Float64("min-alpha", d.MinAlpha, "final learning rate")
	f.Float64("sample", d.Sample, "frequent-word downsampling threshold (0 disables)")
	f.Int("workers", d.Workers, "training goroutines")
	f.Uint64("seed", d.Seed, "random seed")

	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, _ []string) error {
	if trainingService == nil || modelService == nil || settingsService == nil {
		return errors.New("training services not configured")
	}
	ctx := cmd.Context()

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	params, err := applyHyperparameterFlags(cmd, settings.Training)
	if err != nil {
		return err
	}

	corpus, err := loadTrainingCorpus(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("Training %s on %d sentences (%d tokens), D=%d, %d epochs\n",
		params.Architecture, corpus.Len(), corpus.TokenCount(), params.Dimensions, params.Epochs)

	progress := newProgressPrinter(cmd.OutOrStdout())
	start := time.Now()
	model, stats, err := trainingService.Train(ctx, corpus, params, progress.update)
	progress.finish()
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	dest := trainOutput
	if dest == "" {
		dest = settings.ModelPath
	}
	if err := modelService.Save(ctx, model, dest); err != nil {
		return err
	}
	if err := modelService.Install(model); err != nil {
		return err
	}

	cmd.Printf("Trained model %s in %s\n", model.ID(), time.Since(start).Truncate(time.Millisecond))
	cmd.Printf("  Vocabulary: %d words (%d of %d tokens kept)\n", stats.VocabularySize, stats.RetainedTokens, stats.RawTokens)
	cmd.Printf("  Dimensions: %d\n", model.Dimensions())
	cmd.Printf("  Saved to:   %s\n", dest)

	if trainProbe != "" {
		return runProbe(cmd, trainProbe)
	}
	return nil
}

// applyHyperparameterFlags overrides base with every flag the user set.
func applyHyperparameterFlags(cmd *cobra.Command, base domain.Hyperparameters) (domain.Hyperparameters, error) {
	f := cmd.Flags()
	p := base

	if f.Changed("architecture") {
		p.Architecture = domain.Architecture(strings.ToLower(trainArchitecture))
	}
	ints := map[string]*int{
		"dimensions": &p.Dimensions,
		"window":     &p.Window,
		"min-count":  &p.MinCount,
		"negative":   &p.Negative,
		"epochs":     &p.Epochs,
		"workers":    &p.Workers,
	}
	for name, dst := range ints {
		if f.Changed(name) {
			v, err := f.GetInt(name)
			if err != nil {
				return p, err
			}
			*dst = v
		}
	}
	floats := map[string]*float64{
		"alpha":     &p.Alpha,
		"min-alpha": &p.MinAlpha,
		"sample":    &p.Sample,
	}
	for name, dst := range floats {
		if f.Changed(name) {
			v, err := f.GetFloat64(name)
			if err != nil {
				return p, err
			}
			*dst = v
		}
	}
	if f.Changed("seed") {
		v, err := f.GetUint64("seed")
		if err != nil {
			return p, err
		}
		p.Seed = v
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// loadTrainingCorpus reads --input files, or the stored corpus.
func loadTrainingCorpus(ctx context.Context) (*domain.Corpus, error) {
	if corpusService == nil {
		return nil, errors.New("corpus service not configured")
	}
	if len(trainInputs) == 0 {
		return corpusService.Corpus(ctx)
	}

	corpus := &domain.Corpus{}
	for _, path := range trainInputs {
		sentences, err := parseInput(ctx, path)
		if err != nil {
			return nil, err
		}
		corpus.Sentences = append(corpus.Sentences, sentences...)
	}
	return corpus, nil
}

func parseInput(ctx context.Context, path string) ([]domain.Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if trainPretokenised {
		return plaintext.LineCorpus{}.Normalise(ctx, path, f)
	}
	return corpusService.Parse(ctx, filepath.Base(path), f)
}

// runProbe prints the nearest neighbours of word from the live model.
func runProbe(cmd *cobra.Command, word string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}
	results, err := queryService.NearestNeighbors(cmd.Context(), word, probeNeighbors)
	if err != nil {
		cmd.Printf("Probe %q: %v\n", word, err)
		return nil
	}
	cmd.Printf("Nearest to %q:\n", word)
	printNeighbors(cmd, results)
	return nil
}
