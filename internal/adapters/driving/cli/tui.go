package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui"
	"github.com/custodia-labs/wordspace/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal explorer for the embedding model.

Query syntax:
  king             nearest neighbours
  king ~ queen     similarity
  king - man + woman  analogy

Controls:
  ↑/k, ↓/j - Navigate results
  Enter    - Query / Explore selected word
  n, /     - New query
  Esc      - Back / Cancel
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the injected services.
func tuiPorts() *tui.Ports {
	return &tui.Ports{
		Query:    queryService,
		Models:   modelService,
		Corpus:   corpusService,
		Settings: settingsService,
	}
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	// The explorer opens without a model and picks one up when it is loaded.
	if err := ensureModel(cmd.Context()); err != nil {
		logger.Warn("%v", err)
	}

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// Log lines would corrupt the alternate screen.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(cmd.ErrOrStderr())

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
