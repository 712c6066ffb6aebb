// Package explore provides the interactive query view for the TUI.
package explore

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driving"
)

// DefaultTopN is the number of neighbours requested per query.
const DefaultTopN = 15

// View represents the explore view with query input, results and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar

	queryService driving.QueryService
	ctx          context.Context
	topN         int

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)

	// similarity holds the last similarity result, shown instead of the list.
	similarity *messages.QueryCompleted
}

// NewView creates a new explore view.
func NewView(s *styles.Styles, km *keymap.KeyMap, queryService driving.QueryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:       s,
		keymap:       km,
		input:        input.NewQueryInput(s),
		list:         list.NewResultList(s),
		statusbar:    status.NewBar(s, km),
		queryService: queryService,
		ctx:          context.Background(),
		topN:         DefaultTopN,
		width:        80,
		height:       24,
		focusInput:   true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and fetches model health for the status bar.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.loadHealth())
}

// Update handles messages for the explore view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.QueryCompleted:
		v.handleQueryCompleted(msg)
		return v, nil

	case messages.ModelChanged:
		v.statusbar.SetHealth(msg.Health)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			return v, v.Submit(v.input.Value())
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Explore):
		if n := v.list.SelectedResult(); n != nil {
			v.input.SetValue(n.Word)
			return v, v.Submit(n.Word)
		}
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.NewQuery):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// Submit parses and runs a query. Parse errors are reported without
// leaving input mode.
func (v *View) Submit(raw string) tea.Cmd {
	q, err := ParseQuery(raw)
	if err != nil {
		if err == ErrEmptyQuery {
			return nil
		}
		v.setError(err)
		return nil
	}

	v.err = nil
	v.statusbar.SetState(status.StateQuerying)
	v.statusbar.SetMessage("")
	v.focusInput = false
	v.input.Blur()
	return v.performQuery(raw, q)
}

// performQuery runs q against the query service off the update loop.
func (v *View) performQuery(raw string, q Query) tea.Cmd {
	svc, ctx, topN := v.queryService, v.ctx, v.topN
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoQueryService}
		}

		out := messages.QueryCompleted{Input: raw, Kind: q.Kind}
		switch q.Kind {
		case messages.QueryNeighbors:
			out.Neighbors, out.Err = svc.NearestNeighbors(ctx, q.Word, topN)
		case messages.QuerySimilarity:
			out.Similarity, out.Err = svc.Similarity(ctx, q.Pair[0], q.Pair[1])
		case messages.QueryAnalogy:
			out.Neighbors, out.Err = svc.Analogy(ctx, domain.AnalogyQuery{
				Positive: q.Positive,
				Negative: q.Negative,
				TopN:     topN,
			})
		}
		return out
	}
}

func (v *View) loadHealth() tea.Cmd {
	svc, ctx := v.queryService, v.ctx
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		return messages.ModelChanged{Health: svc.Health(ctx)}
	}
}

// handleQueryCompleted processes query results.
func (v *View) handleQueryCompleted(msg messages.QueryCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		v.focusInput = true
		v.input.Focus()
		return
	}

	v.err = nil
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")

	if msg.Kind == messages.QuerySimilarity {
		v.similarity = &msg
		v.list.SetResults(nil)
		v.statusbar.SetResultCount(0)
		v.statusbar.SetMessage(fmt.Sprintf("similarity %.4f", msg.Similarity))
		return
	}

	v.similarity = nil
	title := "Neighbours of " + msg.Input
	if msg.Kind == messages.QueryAnalogy {
		title = "Analogy " + msg.Input
	}
	v.list.SetTitle(title)
	v.list.SetResults(msg.Neighbors)
	v.statusbar.SetResultCount(len(msg.Neighbors))
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the explore view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("wordspace · explore"), "")
	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.similarity != nil {
		sections = append(sections, v.renderSimilarity())
	} else {
		sections = append(sections, v.list.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderSimilarity() string {
	s := v.similarity
	score := v.styles.ScoreStyle(s.Similarity).Render(fmt.Sprintf("%+.4f", s.Similarity))
	return v.styles.Subtitle.Render("Similarity "+s.Input) + "\n\n  " +
		score + " " + v.styles.ScoreBar.Render(list.Bar(s.Similarity))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// SetTopN sets how many neighbours each query asks for.
func (v *View) SetTopN(n int) {
	if n > 0 {
		v.topN = n
	}
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current query text.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the query text.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the current neighbour results.
func (v *View) Results() []domain.Neighbor {
	return v.list.Results()
}

// Similarity returns the last similarity score and whether one is shown.
func (v *View) Similarity() (float64, bool) {
	if v.similarity == nil {
		return 0, false
	}
	return v.similarity.Similarity, true
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Health returns the model health shown in the status bar.
func (v *View) Health() domain.Health {
	return v.statusbar.Health()
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.similarity = nil
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
