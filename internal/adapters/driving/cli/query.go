package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// Query command flags.
var (
	queryTop      int
	queryJSON     bool
	analogyNeg    []string
	vocabLimit    int
	vectorPrecise bool
)

var similarCmd = &cobra.Command{
	Use:   "similar [word]",
	Short: "List the nearest neighbours of a word",
	Long: `Ranks every other vocabulary word by cosine similarity to the given
word and prints the closest. Ties are broken by vocabulary index.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

var similarityCmd = &cobra.Command{
	Use:   "similarity [word1] [word2]",
	Short: "Cosine similarity of two words",
	Args:  cobra.ExactArgs(2),
	RunE:  runSimilarity,
}

var analogyCmd = &cobra.Command{
	Use:   "analogy [positive...]",
	Short: "Solve a word analogy",
	Long: `Ranks words by similarity to the sum of the positive vectors minus the
sum of the negative vectors. Input words are never returned.

Example:
  wordspace analogy king woman --negative man`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalogy,
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Show vocabulary size and the most frequent words",
	Args:  cobra.NoArgs,
	RunE:  runVocab,
}

var existsCmd = &cobra.Command{
	Use:   "exists [word]",
	Short: "Check whether a word is in the vocabulary",
	Args:  cobra.ExactArgs(1),
	RunE:  runExists,
}

var vectorCmd = &cobra.Command{
	Use:   "vector [word]",
	Short: "Print the raw vector of a word",
	Args:  cobra.ExactArgs(1),
	RunE:  runVector,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Report whether a model is loaded",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	similarCmd.Flags().IntVarP(&queryTop, "top", "n", 10, "number of neighbours")
	analogyCmd.Flags().IntVarP(&queryTop, "top", "n", 10, "number of results")
	analogyCmd.Flags().StringSliceVarP(&analogyNeg, "negative", "m", nil, "words to subtract")
	vocabCmd.Flags().IntVar(&vocabLimit, "limit", 20, "number of words to list")
	vectorCmd.Flags().BoolVar(&vectorPrecise, "full", false, "print full float32 precision")

	for _, c := range []*cobra.Command{similarCmd, similarityCmd, analogyCmd, vocabCmd, existsCmd, vectorCmd, healthCmd} {
		c.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
		rootCmd.AddCommand(c)
	}
}

func runSimilar(cmd *cobra.Command, args []string) error {
	q, err := requireQuery(cmd)
	if err != nil {
		return err
	}
	results, err := q.NearestNeighbors(cmd.Context(), args[0], queryTop)
	if err != nil {
		return err
	}
	if queryJSON {
		return printJSON(cmd, results)
	}
	cmd.Printf("Nearest to %q:\n", args[0])
	printNeighbors(cmd, results)
	return nil
}

func runSimilarity(cmd *cobra.Command, args []string) error {
	q, err := requireQuery(cmd)
	if err != nil {
		return err
	}
	score, err := q.Similarity(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	if queryJSON {
		return printJSON(cmd, map[string]any{"word1": args[0], "word2": args[1], "similarity": score})
	}
	cmd.Printf("%.4f\n", score)
	return nil
}

func runAnalogy(cmd *cobra.Command, args []string) error {
	q, err := requireQuery(cmd)
	if err != nil {
		return err
	}
	results, err := q.Analogy(cmd.Context(), domain.AnalogyQuery{
		Positive: args,
		Negative: analogyNeg,
		TopN:     queryTop,
	})
	if err != nil {
		return err
	}
	if queryJSON {
		return printJSON(cmd, results)
	}
	expr := strings.Join(args, " + ")
	for _, n := range analogyNeg {
		expr += " - " + n
	}
	cmd.Printf("%s:\n", expr)
	printNeighbors(cmd, results)
	return nil
}

func runVocab(cmd *cobra.Command, _ []string) error {
	q, err := requireQuery(cmd)
	if err != nil {
		return err
	}
	size, err := q.VocabularySize(cmd.Context())
	if err != nil {
		return err
	}
	words, err := q.Vocabulary(cmd.Context(), max(vocabLimit, 1))
	if err != nil {
		return err
	}
	if queryJSON {
		return printJSON(cmd, map[string]any{"size": size, "words": words})
	}
	cmd.Printf("Vocabulary size: %d\n", size)
	if vocabLimit > 0 {
		cmd.Printf("Most frequent: %s\n", strings.Join(words, ", "))
	}
	return nil
}

func runExists(cmd *cobra.Command, args []string) error {
	q, err := requireQuery(cmd)
	if err != nil {
		return err
	}
	ok, err := q.WordExists(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if queryJSON {
		return printJSON(cmd, map[string]any{"word": args[0], "exists": ok})
	}
	if ok {
		cmd.Printf("%q is in the vocabulary\n", args[0])
	} else {
		cmd.Printf("%q is not in the vocabulary\n", args[0])
	}
	return nil
}

func runVector(cmd *cobra.Command, args []string) error {
	q, err := requireQuery(cmd)
	if err != nil {
		return err
	}
	vec, err := q.Vector(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if queryJSON {
		return printJSON(cmd, map[string]any{"word": args[0], "vector": vec})
	}
	parts := make([]string, len(vec))
	for i, v := range vec {
		if vectorPrecise {
			parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
		} else {
			parts[i] = fmt.Sprintf("%.6f", v)
		}
	}
	cmd.Println(strings.Join(parts, " "))
	return nil
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return fmt.Errorf("query service not configured")
	}
	// A missing artifact is reported as status, not as a command failure.
	_ = ensureModel(cmd.Context())

	h := queryService.Health(cmd.Context())
	if queryJSON {
		return printJSON(cmd, h)
	}
	cmd.Printf("Status: %s\n", h.Status)
	if h.ModelLoaded {
		cmd.Printf("Model: %s\n", h.ModelID)
		cmd.Printf("Vocabulary: %d words\n", h.VocabularySize)
	}
	return nil
}
