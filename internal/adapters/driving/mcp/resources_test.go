package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleModelResource(t *testing.T) {
	ctx := context.Background()

	t.Run("describes live model", func(t *testing.T) {
		model := newTestModel(t)
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Models: &mockModelService{model: model}})
		require.NoError(t, err)

		result, err := server.handleModelResource(ctx, makeReadResourceRequest(modelURI))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var info modelInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &info))
		assert.Equal(t, model.ID(), info.ID)
		assert.Equal(t, 3, info.VocabularySize)
		assert.Equal(t, 2, info.Dimensions)
		assert.Equal(t, "skipgram", info.Hyperparameters.Architecture)
	})

	t.Run("no model", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Models: &mockModelService{}})
		require.NoError(t, err)

		_, err = server.handleModelResource(ctx, makeReadResourceRequest(modelURI))
		assert.ErrorIs(t, err, domain.ErrModelNotLoaded)
	})

	t.Run("no model service", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}})
		require.NoError(t, err)

		_, err = server.handleModelResource(ctx, makeReadResourceRequest(modelURI))
		assert.Error(t, err)
	})
}

func TestServer_handleVocabularyResource(t *testing.T) {
	server, err := NewServer(&Ports{Query: &mockQueryService{}, Models: &mockModelService{model: newTestModel(t)}})
	require.NoError(t, err)

	result, err := server.handleVocabularyResource(context.Background(), makeReadResourceRequest(vocabularyURI))
	require.NoError(t, err)

	var entries []vocabularyEntry
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &entries))
	assert.Equal(t, []vocabularyEntry{
		{Word: "king", Count: 30},
		{Word: "queen", Count: 20},
		{Word: "man", Count: 10},
	}, entries)
}
