package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// Default result counts when a tool call omits them.
const (
	defaultTopN            = 10
	defaultVocabularyLimit = 100
)

// NearestNeighborsInput is the input schema for the nearest_neighbors tool.
type NearestNeighborsInput struct {
	Word string `json:"word" jsonschema:"the word to find neighbours for"`
	TopN int    `json:"top_n,omitempty" jsonschema:"maximum number of neighbours to return (default 10)"`
}

// NeighborsOutput is the output schema for ranked word results.
type NeighborsOutput struct {
	Neighbors []NeighborOutput `json:"neighbors"`
	Count     int              `json:"count"`
}

// NeighborOutput represents a single ranked word.
type NeighborOutput struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// SimilarityInput is the input schema for the similarity tool.
type SimilarityInput struct {
	Word1 string `json:"word1" jsonschema:"first word"`
	Word2 string `json:"word2" jsonschema:"second word"`
}

// SimilarityOutput is the output schema for the similarity tool.
type SimilarityOutput struct {
	Word1      string  `json:"word1"`
	Word2      string  `json:"word2"`
	Similarity float64 `json:"similarity"`
}

// AnalogyInput is the input schema for the analogy tool.
type AnalogyInput struct {
	Positive []string `json:"positive" jsonschema:"words whose vectors are added"`
	Negative []string `json:"negative,omitempty" jsonschema:"words whose vectors are subtracted"`
	TopN     int      `json:"top_n,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// VocabularyInput is the input schema for the vocabulary tool.
type VocabularyInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"number of most frequent words to list (default 100)"`
}

// VocabularyOutput is the output schema for the vocabulary tool.
type VocabularyOutput struct {
	Size  int      `json:"vocabulary_size"`
	Words []string `json:"words"`
}

// WordExistsInput is the input schema for the word_exists tool.
type WordExistsInput struct {
	Word string `json:"word" jsonschema:"the word to look up"`
}

// WordExistsOutput is the output schema for the word_exists tool.
type WordExistsOutput struct {
	Word   string `json:"word"`
	Exists bool   `json:"exists"`
}

// HealthInput is the empty input of the health tool.
type HealthInput struct{}

// HealthOutput is the output schema for the health tool.
type HealthOutput struct {
	Status         string `json:"status"`
	ModelLoaded    bool   `json:"model_loaded"`
	VocabularySize int    `json:"vocabulary_size"`
	ModelID        string `json:"model_id,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "nearest_neighbors",
		Description: "Find the words whose embeddings are closest to a word",
	}, s.handleNearestNeighbors)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "similarity",
		Description: "Cosine similarity between two words, from -1 to 1",
	}, s.handleSimilarity)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analogy",
		Description: "Solve word analogies: rank words near sum(positive) - sum(negative)",
	}, s.handleAnalogy)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "vocabulary",
		Description: "Vocabulary size and the most frequent words",
	}, s.handleVocabulary)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "word_exists",
		Description: "Check whether a word is in the model vocabulary",
	}, s.handleWordExists)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "health",
		Description: "Report whether a model is loaded",
	}, s.handleHealth)
}

func (s *Server) handleNearestNeighbors(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NearestNeighborsInput,
) (*mcp.CallToolResult, NeighborsOutput, error) {
	topN := input.TopN
	if topN == 0 {
		topN = defaultTopN
	}
	neighbors, err := s.ports.Query.NearestNeighbors(ctx, input.Word, topN)
	if err != nil {
		return nil, NeighborsOutput{}, err
	}
	return nil, toNeighborsOutput(neighbors), nil
}

func (s *Server) handleSimilarity(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SimilarityInput,
) (*mcp.CallToolResult, SimilarityOutput, error) {
	score, err := s.ports.Query.Similarity(ctx, input.Word1, input.Word2)
	if err != nil {
		return nil, SimilarityOutput{}, err
	}
	return nil, SimilarityOutput{Word1: input.Word1, Word2: input.Word2, Similarity: score}, nil
}

func (s *Server) handleAnalogy(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalogyInput,
) (*mcp.CallToolResult, NeighborsOutput, error) {
	topN := input.TopN
	if topN == 0 {
		topN = defaultTopN
	}
	neighbors, err := s.ports.Query.Analogy(ctx, domain.AnalogyQuery{
		Positive: input.Positive,
		Negative: input.Negative,
		TopN:     topN,
	})
	if err != nil {
		return nil, NeighborsOutput{}, err
	}
	return nil, toNeighborsOutput(neighbors), nil
}

func (s *Server) handleVocabulary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VocabularyInput,
) (*mcp.CallToolResult, VocabularyOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultVocabularyLimit
	}
	size, err := s.ports.Query.VocabularySize(ctx)
	if err != nil {
		return nil, VocabularyOutput{}, err
	}
	words, err := s.ports.Query.Vocabulary(ctx, limit)
	if err != nil {
		return nil, VocabularyOutput{}, err
	}
	return nil, VocabularyOutput{Size: size, Words: words}, nil
}

func (s *Server) handleWordExists(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input WordExistsInput,
) (*mcp.CallToolResult, WordExistsOutput, error) {
	ok, err := s.ports.Query.WordExists(ctx, input.Word)
	if err != nil {
		return nil, WordExistsOutput{}, err
	}
	return nil, WordExistsOutput{Word: input.Word, Exists: ok}, nil
}

func (s *Server) handleHealth(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ HealthInput,
) (*mcp.CallToolResult, HealthOutput, error) {
	return nil, toHealthOutput(s.ports.Query.Health(ctx)), nil
}

func toNeighborsOutput(neighbors []domain.Neighbor) NeighborsOutput {
	out := NeighborsOutput{
		Neighbors: make([]NeighborOutput, len(neighbors)),
		Count:     len(neighbors),
	}
	for i, n := range neighbors {
		out.Neighbors[i] = NeighborOutput{Word: n.Word, Score: n.Score}
	}
	return out
}

func toHealthOutput(h domain.Health) HealthOutput {
	return HealthOutput{
		Status:         h.Status,
		ModelLoaded:    h.ModelLoaded,
		VocabularySize: h.VocabularySize,
		ModelID:        h.ModelID,
	}
}
