package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write the model to another artifact",
	Long: `Writes the current model to path. Paths ending in .txt or .vec use the
word2vec text format; anything else uses the binary artifact format.

Example:
  wordspace export vectors.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := ensureModel(cmd.Context()); err != nil {
		return err
	}
	model, err := modelService.Current()
	if err != nil {
		return err
	}
	if args[0] == "" {
		return errors.New("export path is required")
	}
	if err := modelService.Save(cmd.Context(), model, args[0]); err != nil {
		return err
	}
	cmd.Printf("Exported %d words (D=%d) to %s\n", model.Size(), model.Dimensions(), args[0])
	return nil
}
