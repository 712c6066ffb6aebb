package list

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

func sampleNeighbors() []domain.Neighbor {
	return []domain.Neighbor{
		{Word: "queen", Index: 4, Score: 0.91},
		{Word: "prince", Index: 7, Score: 0.72},
		{Word: "throne", Index: 12, Score: 0.41},
	}
}

func TestNewResultList(t *testing.T) {
	r := NewResultList(nil)

	require.NotNil(t, r)
	assert.True(t, r.IsEmpty())
	assert.Equal(t, 0, r.Selected())
	assert.Nil(t, r.SelectedResult())
	assert.Equal(t, "Neighbours", r.Title())
	assert.Nil(t, r.Init())
}

func TestResultList_ViewEmpty(t *testing.T) {
	r := NewResultList(nil)

	assert.Contains(t, r.View(), "No results")
}

func TestResultList_SetResultsResetsSelection(t *testing.T) {
	r := NewResultList(nil)
	r.SetResults(sampleNeighbors())
	r.MoveDown()
	require.Equal(t, 1, r.Selected())

	r.SetResults(sampleNeighbors()[:1])

	assert.Equal(t, 0, r.Selected())
	assert.Equal(t, 1, r.Count())
}

func TestResultList_Navigation(t *testing.T) {
	r := NewResultList(nil)
	r.SetResults(sampleNeighbors())

	r.MoveUp()
	assert.Equal(t, 0, r.Selected())

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, r.Selected())

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, r.Selected())

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, r.Selected(), "selection stops at the last result")

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, r.Selected())

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, 2, r.Selected())

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, r.Selected())
}

func TestResultList_SelectedResult(t *testing.T) {
	r := NewResultList(nil)
	r.SetResults(sampleNeighbors())
	r.SetSelected(1)

	got := r.SelectedResult()
	require.NotNil(t, got)
	assert.Equal(t, "prince", got.Word)

	r.SetSelected(10)
	assert.Equal(t, 1, r.Selected(), "out of range index is ignored")
}

func TestResultList_ViewShowsWordsAndScores(t *testing.T) {
	r := NewResultList(nil)
	r.SetDimensions(100, 20)
	r.SetTitle("Analogy")
	r.SetResults(sampleNeighbors())

	view := r.View()

	assert.Contains(t, view, "Analogy (3)")
	assert.Contains(t, view, "queen")
	assert.Contains(t, view, "+0.9100")
	assert.Contains(t, view, "throne")
}

func TestResultList_ViewScrollsToSelection(t *testing.T) {
	r := NewResultList(nil)
	r.SetDimensions(80, 6)
	r.SetResults(sampleNeighbors())
	r.SetSelected(2)

	view := r.View()

	assert.Contains(t, view, "throne")
	assert.NotContains(t, view, "queen")
}

func TestBar(t *testing.T) {
	tests := []struct {
		name   string
		score  float64
		filled int
	}{
		{"full", 1, barWidth},
		{"clamped", 1.5, barWidth},
		{"half", 0.5, barWidth / 2},
		{"zero", 0, 0},
		{"negative", -0.4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := Bar(tt.score)
			assert.Equal(t, tt.filled, strings.Count(bar, "█"))
			assert.Equal(t, barWidth, len([]rune(bar)))
		})
	}
}

func TestResultList_SetDimensions(t *testing.T) {
	r := NewResultList(nil)
	r.SetDimensions(120, 40)

	assert.Equal(t, 120, r.Width())
	assert.Equal(t, 40, r.Height())
}
