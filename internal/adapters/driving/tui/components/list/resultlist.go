// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// barWidth is the number of cells in a full-score bar.
const barWidth = 20

// ResultList displays ranked neighbours in a navigable list.
type ResultList struct {
	results  []domain.Neighbor
	title    string
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		title:  "Neighbours",
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "home", "g":
			r.selected = 0
		case "end", "G":
			if len(r.results) > 0 {
				r.selected = len(r.results) - 1
			}
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)+2)
	header := r.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", r.title, len(r.results)))
	lines = append(lines, header, "")

	// One line per result, minus header and footer space.
	visibleCount := r.height - 4
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.results) {
		end = len(r.results)
	}

	wordWidth := r.wordColumnWidth()
	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, r.results[i], wordWidth))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats a single neighbour with its rank, score and bar.
func (r *ResultList) renderResult(index int, n domain.Neighbor, wordWidth int) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	word := n.Word
	if len(word) > wordWidth {
		word = word[:wordWidth-1] + "…"
	}
	rank := fmt.Sprintf("%3d.", index+1)
	score := fmt.Sprintf("%+.4f", n.Score)

	if index == r.selected {
		return r.styles.Selected.Render(fmt.Sprintf("%s%s %-*s  %s", indicator, rank, wordWidth, word, score)) +
			" " + r.styles.ScoreBar.Render(Bar(n.Score))
	}
	return r.styles.Muted.Render(indicator+rank+" ") +
		r.styles.Normal.Render(fmt.Sprintf("%-*s  ", wordWidth, word)) +
		r.styles.ScoreStyle(n.Score).Render(score) +
		" " + r.styles.ScoreBar.Render(Bar(n.Score))
}

func (r *ResultList) wordColumnWidth() int {
	w := 8
	for _, n := range r.results {
		if len(n.Word) > w {
			w = len(n.Word)
		}
	}
	limit := r.width - barWidth - 20
	if limit < 8 {
		limit = 8
	}
	if w > limit {
		w = limit
	}
	return w
}

// Bar renders a cosine score as a horizontal bar. Negative scores render
// as an empty bar.
func Bar(score float64) string {
	if math.IsNaN(score) || score <= 0 {
		return strings.Repeat("·", barWidth)
	}
	if score > 1 {
		score = 1
	}
	filled := int(math.Round(score * barWidth))
	return strings.Repeat("█", filled) + strings.Repeat("·", barWidth-filled)
}

// SetResults updates the result list.
func (r *ResultList) SetResults(results []domain.Neighbor) {
	r.results = results
	r.selected = 0
}

// SetTitle sets the header shown above the results.
func (r *ResultList) SetTitle(title string) {
	r.title = title
}

// Title returns the header shown above the results.
func (r *ResultList) Title() string {
	return r.title
}

// Results returns the current results.
func (r *ResultList) Results() []domain.Neighbor {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.Neighbor {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
