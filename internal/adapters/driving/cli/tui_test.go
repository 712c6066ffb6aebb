package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_ShortDescription(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_LongDescriptionDocumentsQuerySyntax(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "king ~ queen")
	assert.Contains(t, tuiCmd.Long, "king - man + woman")
}

func TestTUIPorts(t *testing.T) {
	setupTestServices(t, true)

	ports := tuiPorts()

	require.NoError(t, ports.Validate())
	assert.Equal(t, queryService, ports.Query)
	assert.Equal(t, modelService, ports.Models)
	assert.Equal(t, corpusService, ports.Corpus)
	assert.Equal(t, settingsService, ports.Settings)
}

func TestTUIPorts_WithoutServices(t *testing.T) {
	SetServices(Services{})

	assert.Error(t, tuiPorts().Validate())
}
