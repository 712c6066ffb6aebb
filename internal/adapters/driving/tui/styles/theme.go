// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Score bands used to colour cosine similarities.
const (
	NearScore    = 0.6
	RelatedScore = 0.3
)

// Theme is the explorer palette. Near, Related and Opposite colour
// similarity scores by band; the rest is chrome.
type Theme struct {
	Accent    lipgloss.Color
	Highlight lipgloss.Color
	Text      lipgloss.Color
	Dim       lipgloss.Color
	Surface   lipgloss.Color
	Frame     lipgloss.Color

	Near     lipgloss.Color
	Related  lipgloss.Color
	Opposite lipgloss.Color
}

// DefaultTheme returns a dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#5EA1FF"),
		Highlight: lipgloss.Color("#E0AF68"),
		Text:      lipgloss.Color("#D8DEE9"),
		Dim:       lipgloss.Color("#7A8194"),
		Surface:   lipgloss.Color("#161821"),
		Frame:     lipgloss.Color("#3B4252"),

		Near:     lipgloss.Color("#8FD694"),
		Related:  lipgloss.Color("#EBCB8B"),
		Opposite: lipgloss.Color("#E06C75"),
	}
}

// Styles holds the lipgloss styles derived from a theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style

	// Status colours, shared with the score bands.
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	// Word renders vocabulary words in result lists.
	Word lipgloss.Style
	// ScoreBar renders the filled cells of a score bar.
	ScoreBar lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	return &Styles{
		theme: theme,

		Title:    fg(theme.Accent).Bold(true),
		Subtitle: fg(theme.Highlight).Bold(true),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Dim),
		Selected: fg(theme.Surface).Background(theme.Accent).Bold(true),
		Help:     fg(theme.Dim),

		Success: fg(theme.Near),
		Warning: fg(theme.Related),
		Error:   fg(theme.Opposite),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Frame).
			Padding(0, 1),
		StatusBar: fg(theme.Dim).Background(theme.Surface).Padding(0, 1),

		Word:     fg(theme.Highlight).Bold(true),
		ScoreBar: fg(theme.Accent),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// ScoreStyle picks the band colour for a cosine score. Negative scores
// are opposite, scores below RelatedScore are muted.
func (s *Styles) ScoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= NearScore:
		return s.Success
	case score >= RelatedScore:
		return s.Warning
	case score < 0:
		return s.Error
	default:
		return s.Muted
	}
}
