package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/views/corpus"
	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/views/explore"
	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView     *menu.View
	exploreView  *explore.View
	corpusView   *corpus.View
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// health is the last known model state.
	health domain.Health

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingQueryService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		exploreView:  explore.NewView(s, nil, ports.Query),
		corpusView:   corpus.NewView(s, ports.Corpus),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
		health:       domain.Health{Status: domain.HealthModelNotLoaded},
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.exploreView.WithContext(ctx)
	a.corpusView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("wordspace - Word Embedding Explorer"),
		a.checkHealth(),
	)
}

func (a *App) checkHealth() tea.Cmd {
	q, ctx := a.ports.Query, a.ctx
	return func() tea.Msg {
		return messages.ModelChanged{Health: q.Health(ctx)}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewExplore:
			a.exploreView, cmd = a.exploreView.Update(msg)
			a.err = a.exploreView.Err()
		case messages.ViewCorpus:
			a.corpusView, cmd = a.corpusView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewExplore:
			a.exploreView.Reset()
			return a, a.exploreView.Init()
		case messages.ViewCorpus:
			return a, a.corpusView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// No initialisation needed
		}
		return a, nil

	case messages.QueryCompleted:
		a.exploreView, cmd = a.exploreView.Update(msg)
		a.err = a.exploreView.Err()
		return a, cmd

	case messages.ModelChanged:
		a.health = msg.Health
		a.exploreView, cmd = a.exploreView.Update(msg)
		return a, cmd

	case messages.CorpusLoaded:
		a.corpusView, cmd = a.corpusView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewExplore:
			a.exploreView, cmd = a.exploreView.Update(msg)
		case messages.ViewCorpus:
			a.corpusView, cmd = a.corpusView.Update(msg)
		case messages.ViewMenu, messages.ViewSettings, messages.ViewHelp:
			// Other views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink etc.) to the active view
	if a.currentView == messages.ViewExplore {
		a.exploreView, cmd = a.exploreView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewExplore:
		return a.exploreView.View()
	case messages.ViewCorpus:
		return a.corpusView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Explore queries:
  king                  Nearest neighbours
  king ~ queen          Cosine similarity
  king - man + woman    Analogy

Explore results:
  j/k, ↑/↓    Navigate results
  enter       Explore the selected word
  n, /        New query

Corpus:
  enter       Remove a document
  r           Reload

Settings:
  enter       Edit value
  R           Restore defaults

` + a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application. Model swaps published by the model
// service are pushed to the status bar while the program runs.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	if a.ports.Models != nil {
		q, ctx := a.ports.Query, a.ctx
		a.ports.Models.Subscribe(func(*domain.Model) {
			go p.Send(messages.ModelChanged{Health: q.Health(ctx)})
		})
	}
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Health returns the last known model state.
func (a *App) Health() domain.Health {
	return a.health
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.exploreView.SetDimensions(width, height)
	a.corpusView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
