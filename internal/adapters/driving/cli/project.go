package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Project command flags.
var (
	projectWords      []string
	projectLimit      int
	projectComponents int
	projectJSON       bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project word vectors onto principal components",
	Long: `Runs principal component analysis over a set of words and prints their
coordinates, suitable for plotting. Without --words the most frequent
words are used.

Example:
  wordspace project --words king,queen,man,woman`,
	Args: cobra.NoArgs,
	RunE: runProject,
}

func init() {
	projectCmd.Flags().StringSliceVar(&projectWords, "words", nil, "words to project")
	projectCmd.Flags().IntVar(&projectLimit, "limit", 50, "number of frequent words when --words is empty")
	projectCmd.Flags().IntVar(&projectComponents, "components", 2, "number of principal components")
	projectCmd.Flags().BoolVar(&projectJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	if projectionService == nil {
		return errors.New("projection service not configured")
	}
	if err := ensureModel(cmd.Context()); err != nil {
		return err
	}

	points, err := projectionService.Project(cmd.Context(), projectWords, projectLimit, projectComponents)
	if err != nil {
		return err
	}
	if projectJSON {
		return printJSON(cmd, points)
	}

	// Tab separated so the output pipes straight into plotting tools.
	for _, p := range points {
		fields := make([]string, 0, len(p.Coordinates)+1)
		fields = append(fields, p.Word)
		for _, c := range p.Coordinates {
			fields = append(fields, strconv.FormatFloat(c, 'f', 6, 64))
		}
		cmd.Println(strings.Join(fields, "\t"))
	}
	return nil
}
