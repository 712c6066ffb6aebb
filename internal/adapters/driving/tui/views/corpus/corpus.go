// Package corpus provides the ingested documents view for the TUI.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driving"
)

// ErrNoCorpusService indicates that no corpus service was provided.
var ErrNoCorpusService = errors.New("corpus service not available")

// ActionOption represents a document action.
type ActionOption int

const (
	ActionRemove ActionOption = iota
	ActionCancel
)

// View is the corpus documents view.
type View struct {
	styles        *styles.Styles
	corpusService driving.CorpusService
	ctx           context.Context

	documents    []domain.CorpusDocument
	stats        domain.CorpusStats
	selected     int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	showingMenu  bool
	menuSelected ActionOption
	scrollOffset int
}

// NewView creates a new corpus view.
func NewView(s *styles.Styles, corpusService driving.CorpusService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		corpusService: corpusService,
		ctx:           context.Background(),
		documents:     []domain.CorpusDocument{},
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the document list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.showingMenu = false
	return v.loadCorpus()
}

// loadCorpus returns a command that loads documents and totals.
func (v *View) loadCorpus() tea.Cmd {
	svc, ctx := v.corpusService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.CorpusLoaded{Err: ErrNoCorpusService}
		}

		docs, err := svc.Documents(ctx)
		if err != nil {
			return messages.CorpusLoaded{Err: err}
		}
		stats, err := svc.Stats(ctx)
		return messages.CorpusLoaded{Documents: docs, Stats: stats, Err: err}
	}
}

// removeDocument returns a command that removes a document then reloads.
func (v *View) removeDocument(id string) tea.Cmd {
	svc, ctx := v.corpusService, v.ctx
	reload := v.loadCorpus()
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoCorpusService}
		}
		if err := svc.Remove(ctx, id); err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return reload()
	}
}

// Update handles messages for the corpus view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.showingMenu {
			return v.handleMenuKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.CorpusLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.documents = msg.Documents
		v.stats = msg.Stats
		v.err = nil
		if v.selected >= len(v.documents) {
			v.selected = max(len(v.documents)-1, 0)
		}
		v.adjustScroll()
		return v, nil

	case messages.ErrorOccurred:
		v.loading = false
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.documents)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if len(v.documents) > 0 {
			v.showingMenu = true
			v.menuSelected = ActionCancel
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "r":
		v.loading = true
		return v, v.loadCorpus()
	}

	return v, nil
}

// handleMenuKeyMsg handles key presses in action menu mode.
func (v *View) handleMenuKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.menuSelected > ActionRemove {
			v.menuSelected--
		}
	case "down", "j":
		if v.menuSelected < ActionCancel {
			v.menuSelected++
		}
	case "enter":
		v.showingMenu = false
		if v.menuSelected == ActionRemove && v.selected < len(v.documents) {
			v.loading = true
			return v, v.removeDocument(v.documents[v.selected].ID)
		}
	case "esc":
		v.showingMenu = false
	}

	return v, nil
}

// adjustScroll adjusts the scroll offset to keep the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, totals, header, help and padding
	available := v.height - 10
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the corpus view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Corpus (%d documents)", len(v.documents))))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%d sentences · %d tokens", v.stats.Sentences, v.stats.Tokens)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading corpus..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.documents) == 0:
		b.WriteString(v.styles.Muted.Render("No documents ingested. Run 'wordspace corpus ingest <file>'."))
	case v.showingMenu:
		b.WriteString(v.renderActionMenu())
		return b.String()
	default:
		b.WriteString(v.renderTable())
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderTable() string {
	var b strings.Builder

	nameWidth := v.width - 44
	if nameWidth < 12 {
		nameWidth = 12
	}
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("  %-*s %10s %10s  %s", nameWidth, "NAME", "SENTENCES", "TOKENS", "INGESTED")))
	b.WriteString("\n")

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.documents) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderDocument(i, &v.documents[i], nameWidth))
		b.WriteString("\n")
	}

	if len(v.documents) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.documents)),
			len(v.documents))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderDocument renders a single document line.
func (v *View) renderDocument(index int, doc *domain.CorpusDocument, nameWidth int) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	name := doc.Name
	if name == "" && doc.Path != "" {
		name = filepath.Base(doc.Path)
	}
	if len(name) > nameWidth {
		name = name[:nameWidth-3] + "..."
	}

	line := fmt.Sprintf("%s%-*s %10d %10d  %s",
		indicator, nameWidth, name, doc.Sentences, doc.Tokens, doc.IngestedAt.Format("2006-01-02 15:04"))
	if index == v.selected {
		return v.styles.Selected.Render(line)
	}
	return v.styles.Normal.Render(line)
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	var b strings.Builder

	if v.selected < len(v.documents) {
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Actions for: %s", v.documents[v.selected].Name)))
		b.WriteString("\n\n")
	}

	options := []struct {
		action ActionOption
		label  string
	}{
		{ActionRemove, "Remove from corpus"},
		{ActionCancel, "Cancel"},
	}

	for _, opt := range options {
		if v.menuSelected == opt.action {
			b.WriteString(v.styles.Selected.Render("> " + opt.label))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + opt.label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] select  [esc] cancel"))
	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] actions  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Documents returns the current list of documents.
func (v *View) Documents() []domain.CorpusDocument {
	return v.documents
}

// Stats returns the last loaded corpus totals.
func (v *View) Stats() domain.CorpusStats {
	return v.stats
}

// SelectedIndex returns the currently selected document index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedDocument returns the currently selected document.
func (v *View) SelectedDocument() *domain.CorpusDocument {
	if v.selected < len(v.documents) {
		return &v.documents[v.selected]
	}
	return nil
}

// IsShowingMenu returns true if the action menu is visible.
func (v *View) IsShowingMenu() bool {
	return v.showingMenu
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
