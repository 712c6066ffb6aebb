package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordspace/internal/adapters/driven/artifact"
	"github.com/custodia-labs/wordspace/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/services"
	"github.com/custodia-labs/wordspace/internal/normalisers"
)

// testEnv holds the real services wired for a command test.
type testEnv struct {
	baseDir  string
	models   *services.ModelStore
	settings *services.SettingsService
	corpus   *services.CorpusService
}

// setupTestServices wires real services over in-memory stores rooted in a
// temporary directory. When withModel is set a small model is installed.
func setupTestServices(t *testing.T, withModel bool) *testEnv {
	t.Helper()

	baseDir := t.TempDir()
	settings := services.NewSettingsService(memory.NewConfigStore(), baseDir)
	cfg, err := settings.Get()
	require.NoError(t, err)

	models := services.NewModelStore(artifact.NewStore(), nil)
	corpus := services.NewCorpusService(memory.NewCorpusStore(), normalisers.DefaultRegistry(cfg.Preprocess))

	SetServices(Services{
		Training:   services.NewTrainingService(nil),
		Corpus:     corpus,
		Models:     models,
		Query:      services.NewQueryService(models, nil),
		Projection: services.NewProjectionService(models),
		Settings:   settings,
	})
	if withModel {
		require.NoError(t, models.Install(testModel(t)))
	}

	t.Cleanup(func() {
		SetServices(Services{})
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})

	return &testEnv{baseDir: baseDir, models: models, settings: settings, corpus: corpus}
}

// testModel returns a four-word model with two dimensions.
func testModel(t *testing.T) *domain.Model {
	t.Helper()

	vocab, err := domain.NewVocabulary(
		[]string{"king", "queen", "man", "woman"},
		[]int64{40, 30, 20, 10},
		domain.DefaultSampleExponent,
	)
	require.NoError(t, err)
	vectors, err := domain.NewMatrixFrom(4, 2, []float32{
		1, 0.2,
		0.9, 0.4,
		0.3, -1,
		0.2, -0.8,
	})
	require.NoError(t, err)
	model, err := domain.NewModel("7c2f4a9e-1b3d-4e5f-8a6b-0c1d2e3f4a5b", time.Unix(1700000000, 0),
		vocab, vectors, domain.DefaultHyperparameters())
	require.NoError(t, err)
	return model
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	resetFlags(rootCmd)
	return buf.String(), err
}

// resetFlags restores every flag in the tree to its default, since cobra
// keeps parsed values between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// repeatText builds a small corpus with repeated co-occurrence patterns.
func repeatText(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("the king rules the kingdom with the queen.\n")
		b.WriteString("the man walks with the woman to the market.\n")
		b.WriteString("the queen and the king sit on the throne.\n")
	}
	return b.String()
}
