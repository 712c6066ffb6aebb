package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var corpusJSON bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Add documents to the training corpus",
	Long: `Preprocesses each file into sentences of lowercase tokens and stores
them in the corpus. Plain text, Markdown, HTML and PDF are supported;
PDF needs poppler's pdftotext on the PATH.

Use '-' to read plain text from standard input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

var ingestName string

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the training corpus",
}

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	Args:  cobra.NoArgs,
	RunE:  runCorpusList,
}

var corpusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus totals",
	Args:  cobra.NoArgs,
	RunE:  runCorpusStats,
}

var corpusRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Remove a document from the corpus",
	Args:  cobra.ExactArgs(1),
	RunE:  runCorpusRemove,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestName, "name", "stdin", "document name when reading from standard input")
	rootCmd.AddCommand(ingestCmd)

	corpusListCmd.Flags().BoolVar(&corpusJSON, "json", false, "output as JSON")
	corpusCmd.AddCommand(corpusListCmd)
	corpusCmd.AddCommand(corpusStatsCmd)
	corpusCmd.AddCommand(corpusRemoveCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}
	ctx := cmd.Context()

	for _, path := range args {
		if path == "-" {
			doc, err := corpusService.Ingest(ctx, ingestName, cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("ingest failed: %w", err)
			}
			cmd.Printf("Ingested %s: %d sentences, %d tokens (id %s)\n", doc.Name, doc.Sentences, doc.Tokens, doc.ID)
			continue
		}

		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		doc, err := corpusService.IngestFile(ctx, path)
		if err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}
		cmd.Printf("Ingested %s: %d sentences, %d tokens (id %s)\n", doc.Name, doc.Sentences, doc.Tokens, doc.ID)
	}
	return nil
}

func runCorpusList(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	docs, err := corpusService.Documents(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	if corpusJSON {
		return printJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for _, d := range docs {
		cmd.Printf("  %s  %s\n", d.ID, d.Name)
		cmd.Printf("      %d sentences, %d tokens, ingested %s\n",
			d.Sentences, d.Tokens, d.IngestedAt.Format("2006-01-02 15:04"))
		if d.Path != "" {
			cmd.Printf("      %s\n", d.Path)
		}
	}
	return nil
}

func runCorpusStats(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	stats, err := corpusService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get corpus stats: %w", err)
	}
	cmd.Printf("Documents: %d\n", stats.Documents)
	cmd.Printf("Sentences: %d\n", stats.Sentences)
	cmd.Printf("Tokens:    %d\n", stats.Tokens)
	return nil
}

func runCorpusRemove(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	if err := corpusService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}
	cmd.Printf("Removed document %s\n", args[0])
	return nil
}
