package explore

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	neighbors  []domain.Neighbor
	similarity float64
	err        error

	lastWord    string
	lastTopN    int
	lastAnalogy domain.AnalogyQuery
}

func (m *mockQueryService) Similarity(_ context.Context, _, _ string) (float64, error) {
	return m.similarity, m.err
}

func (m *mockQueryService) NearestNeighbors(_ context.Context, word string, topN int) ([]domain.Neighbor, error) {
	m.lastWord, m.lastTopN = word, topN
	return m.neighbors, m.err
}

func (m *mockQueryService) Analogy(_ context.Context, q domain.AnalogyQuery) ([]domain.Neighbor, error) {
	m.lastAnalogy = q
	return m.neighbors, m.err
}

func (m *mockQueryService) VocabularySize(_ context.Context) (int, error) { return 3, nil }

func (m *mockQueryService) WordExists(_ context.Context, _ string) (bool, error) { return true, nil }

func (m *mockQueryService) Vocabulary(_ context.Context, _ int) ([]string, error) { return nil, nil }

func (m *mockQueryService) Vector(_ context.Context, _ string) ([]float32, error) { return nil, nil }

func (m *mockQueryService) Health(_ context.Context) domain.Health {
	return domain.Health{Status: domain.HealthOK, ModelLoaded: true, VocabularySize: 3, ModelID: "m1"}
}

func newTestView(svc *mockQueryService) *View {
	v := NewView(nil, nil, svc)
	v.SetDimensions(100, 30)
	return v
}

func typeText(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.True(t, v.InputFocused())
	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
	assert.Equal(t, DefaultTopN, v.topN)
}

func TestView_InitLoadsHealth(t *testing.T) {
	v := newTestView(&mockQueryService{})

	cmd := v.loadHealth()
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.ModelChanged)
	require.True(t, ok)

	v.Update(msg)
	assert.True(t, v.Health().ModelLoaded)
	assert.NotNil(t, v.Init())
}

func TestView_SubmitNeighbors(t *testing.T) {
	svc := &mockQueryService{neighbors: []domain.Neighbor{{Word: "queen", Index: 1, Score: 0.9}}}
	v := newTestView(svc)
	typeText(v, "king")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, v.InputFocused())

	msg := cmd()
	completed, ok := msg.(messages.QueryCompleted)
	require.True(t, ok)
	assert.Equal(t, messages.QueryNeighbors, completed.Kind)
	assert.Equal(t, "king", svc.lastWord)
	assert.Equal(t, DefaultTopN, svc.lastTopN)

	v.Update(completed)
	assert.Len(t, v.Results(), 1)
	assert.Contains(t, v.View(), "Neighbours of king")
	assert.Contains(t, v.View(), "queen")
}

func TestView_SubmitAnalogy(t *testing.T) {
	svc := &mockQueryService{neighbors: []domain.Neighbor{{Word: "queen", Score: 0.8}}}
	v := newTestView(svc)
	v.SetTopN(5)

	cmd := v.Submit("king - man + woman")
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, []string{"king", "woman"}, svc.lastAnalogy.Positive)
	assert.Equal(t, []string{"man"}, svc.lastAnalogy.Negative)
	assert.Equal(t, 5, svc.lastAnalogy.TopN)
	assert.Contains(t, v.View(), "Analogy king - man + woman")
}

func TestView_SubmitSimilarity(t *testing.T) {
	v := newTestView(&mockQueryService{similarity: 0.75})

	cmd := v.Submit("king ~ queen")
	require.NotNil(t, cmd)
	v.Update(cmd())

	score, ok := v.Similarity()
	require.True(t, ok)
	assert.InDelta(t, 0.75, score, 1e-9)
	assert.Empty(t, v.Results())
	assert.Contains(t, v.View(), "+0.7500")
}

func TestView_SubmitMalformedStaysInInput(t *testing.T) {
	v := newTestView(&mockQueryService{})

	cmd := v.Submit("king queen")

	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), ErrMalformedQuery)
	assert.True(t, v.InputFocused())
}

func TestView_SubmitEmptyIsIgnored(t *testing.T) {
	v := newTestView(&mockQueryService{})

	assert.Nil(t, v.Submit("   "))
	assert.NoError(t, v.Err())
}

func TestView_QueryErrorRefocusesInput(t *testing.T) {
	svc := &mockQueryService{err: domain.ErrUnknownWord}
	v := newTestView(svc)

	cmd := v.Submit("zzz")
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.ErrorIs(t, v.Err(), domain.ErrUnknownWord)
	assert.True(t, v.InputFocused())
	assert.Contains(t, v.View(), "Error:")
}

func TestView_NoQueryService(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetDimensions(80, 24)

	cmd := v.Submit("king")
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, ErrNoQueryService)
	assert.Nil(t, v.loadHealth())
}

func TestView_EnterOnResultExploresWord(t *testing.T) {
	svc := &mockQueryService{neighbors: []domain.Neighbor{
		{Word: "queen", Index: 1, Score: 0.9},
		{Word: "prince", Index: 2, Score: 0.8},
	}}
	v := newTestView(svc)
	v.Update(v.Submit("king")())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.SelectedIndex())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, "prince", svc.lastWord)
	assert.Equal(t, "prince", v.Query())
}

func TestView_NewQueryKeyFocusesInput(t *testing.T) {
	svc := &mockQueryService{neighbors: []domain.Neighbor{{Word: "queen"}}}
	v := newTestView(svc)
	v.Update(v.Submit("king")())
	require.False(t, v.InputFocused())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	assert.True(t, v.InputFocused())
	assert.Empty(t, v.Query())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := newTestView(&mockQueryService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_ErrorOccurred(t *testing.T) {
	v := newTestView(&mockQueryService{})

	v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, v.Err(), "boom")
}

func TestView_Reset(t *testing.T) {
	v := newTestView(&mockQueryService{similarity: 0.5})
	v.Update(v.Submit("a ~ b")())

	v.Reset()

	_, ok := v.Similarity()
	assert.False(t, ok)
	assert.True(t, v.InputFocused())
	assert.Empty(t, v.Query())
	assert.NoError(t, v.Err())
}
