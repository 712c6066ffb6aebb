package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// printJSON writes v as indented JSON to the command's output.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printNeighbors renders ranked results as a numbered table.
func printNeighbors(cmd *cobra.Command, results []domain.Neighbor) {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}
	width := 4
	for _, n := range results {
		width = max(width, len(n.Word))
	}
	for i, n := range results {
		cmd.Printf("  %3d. %-*s  %.4f\n", i+1, width, n.Word, n.Score)
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// progressPrinter renders training progress. On a terminal it redraws a
// single line; otherwise it prints a line at most every interval.
type progressPrinter struct {
	w        io.Writer
	tty      bool
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{w: w, tty: isTerminal(w), interval: 5 * time.Second}
}

func (p *progressPrinter) update(pr domain.TrainingProgress) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := fmt.Sprintf("epoch %d/%d  %5.1f%%  alpha %.6f  %s",
		pr.Epoch, pr.Epochs, pr.Fraction()*100, pr.Alpha, pr.Elapsed.Truncate(time.Second))

	if p.tty {
		bar := progressBar(pr.Fraction(), 24)
		fmt.Fprintf(p.w, "\r%s %s", bar, line)
		return
	}
	if now := time.Now(); now.Sub(p.last) >= p.interval {
		p.last = now
		fmt.Fprintln(p.w, line)
	}
}

// finish ends the in-place line on a terminal.
func (p *progressPrinter) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tty {
		fmt.Fprintln(p.w)
	}
}

func progressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = min(max(filled, 0), width)
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
