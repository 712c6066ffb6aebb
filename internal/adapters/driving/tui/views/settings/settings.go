// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wordspace/internal/core/ports/driving"
)

// ErrNoSettingsService indicates that no settings service was provided.
var ErrNoSettingsService = errors.New("settings service not available")

// Row is one key and its effective value.
type Row struct {
	Key   string
	Value string
}

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	rows     []Row
	err      error
	notice   string
	selected int
	scroll   int

	// editing is true while the value input has focus.
	editing bool
	input   textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	in := textinput.New()
	in.CharLimit = 256
	in.Prompt = "= "

	return &View{
		styles:          s,
		settingsService: settingsService,
		input:           in,
		width:           80,
		height:          24,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// saveSetting returns a command that persists one value.
func (v *View) saveSetting(key, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Key: key, Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Key: key, Err: svc.Set(key, value)}
	}
}

// resetSettings returns a command that restores defaults.
func (v *View) resetSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Err: svc.Reset()}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = v.refreshRows()
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.notice = ""
			return v, nil
		}
		v.err = nil
		if msg.Key == "" {
			v.notice = "Defaults restored"
		} else {
			v.notice = "Saved " + msg.Key
		}
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// refreshRows rebuilds the key/value table from the service.
func (v *View) refreshRows() error {
	values, err := v.settingsService.Values()
	if err != nil {
		return err
	}
	keys := v.settingsService.Keys()
	v.rows = make([]Row, 0, len(keys))
	for _, k := range keys {
		v.rows = append(v.rows, Row{Key: k, Value: values[k]})
	}
	if v.selected >= len(v.rows) {
		v.selected = 0
	}
	return nil
}

// handleKeyMsg handles key presses while browsing.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.rows)-1 {
			v.selected++
		}
	case "enter", "e":
		if v.selected < len(v.rows) {
			v.editing = true
			v.notice = ""
			v.input.SetValue(v.rows[v.selected].Value)
			v.input.CursorEnd()
			return v, v.input.Focus()
		}
	case "R":
		return v, v.resetSettings()
	case "r":
		return v, v.loadSettings()
	}
	v.adjustScroll()
	return v, nil
}

// handleEditKey handles key presses while editing a value.
func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.editing = false
		v.input.Blur()
		return v, nil
	case "enter":
		v.editing = false
		v.input.Blur()
		return v, v.saveSetting(v.rows[v.selected].Key, v.input.Value())
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) adjustScroll() {
	visible := v.visibleRows()
	if v.selected < v.scroll {
		v.scroll = v.selected
	} else if v.selected >= v.scroll+visible {
		v.scroll = v.selected - visible + 1
	}
}

func (v *View) visibleRows() int {
	n := v.height - 9
	if n < 1 {
		n = 1
	}
	return n
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}
	if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n\n")
	}

	if len(v.rows) == 0 {
		if v.err == nil {
			b.WriteString(v.styles.Muted.Render("Loading settings..."))
			b.WriteString("\n\n")
		}
		b.WriteString(v.renderHelp())
		return b.String()
	}

	keyWidth := 0
	for _, r := range v.rows {
		keyWidth = max(keyWidth, len(r.Key))
	}

	end := min(v.scroll+v.visibleRows(), len(v.rows))
	for i := v.scroll; i < end; i++ {
		r := v.rows[i]
		if i == v.selected && v.editing {
			b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("> %-*s ", keyWidth, r.Key)))
			b.WriteString(v.input.View())
		} else if i == v.selected {
			b.WriteString(v.styles.Selected.Render(fmt.Sprintf("> %-*s  %s", keyWidth, r.Key, r.Value)))
		} else {
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  %-*s  ", keyWidth, r.Key)))
			b.WriteString(v.styles.Muted.Render(r.Value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	if v.editing {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[↑/↓] navigate  [enter] edit  [r] reload  [R] reset defaults  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset clears transient state before the view is shown again.
func (v *View) Reset() {
	v.editing = false
	v.input.Blur()
	v.notice = ""
	v.err = nil
}

// Rows returns the displayed settings.
func (v *View) Rows() []Row {
	return v.rows
}

// Selected returns the selected row index.
func (v *View) Selected() int {
	return v.selected
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
