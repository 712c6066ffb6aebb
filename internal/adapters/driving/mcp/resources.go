package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for wordspace resources.
	uriScheme = "wordspace://"

	modelURI      = uriScheme + "model"
	vocabularyURI = uriScheme + "vocabulary"

	// vocabularyResourceLimit caps the words listed by the vocabulary resource.
	vocabularyResourceLimit = 10000
)

// modelInfo describes the live model for the model resource.
type modelInfo struct {
	ID              string            `json:"id"`
	CreatedAt       time.Time         `json:"created_at"`
	VocabularySize  int               `json:"vocabulary_size"`
	Dimensions      int               `json:"dimensions"`
	Hyperparameters hyperparameterSet `json:"hyperparameters"`
}

type hyperparameterSet struct {
	Architecture   string  `json:"architecture"`
	Window         int     `json:"window"`
	MinCount       int     `json:"min_count"`
	Negative       int     `json:"negative"`
	Epochs         int     `json:"epochs"`
	Alpha          float64 `json:"alpha"`
	MinAlpha       float64 `json:"min_alpha"`
	SampleExponent float64 `json:"sample_exponent"`
	Sample         float64 `json:"sample"`
	Workers        int     `json:"workers"`
	Seed           uint64  `json:"seed"`
}

// vocabularyEntry is one word of the vocabulary resource.
type vocabularyEntry struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         modelURI,
		Name:        "model",
		Description: "Identity, shape and hyperparameters of the live model",
		MIMEType:    "application/json",
	}, s.handleModelResource)

	s.server.AddResource(&mcp.Resource{
		URI:         vocabularyURI,
		Name:        "vocabulary",
		Description: "Most frequent vocabulary words with their corpus counts",
		MIMEType:    "application/json",
	}, s.handleVocabularyResource)
}

// handleModelResource describes the live model.
func (s *Server) handleModelResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	model, err := s.currentModel(req.Params.URI)
	if err != nil {
		return nil, err
	}

	p := model.Hyperparameters()
	info := modelInfo{
		ID:             model.ID(),
		CreatedAt:      model.CreatedAt(),
		VocabularySize: model.Size(),
		Dimensions:     model.Dimensions(),
		Hyperparameters: hyperparameterSet{
			Architecture:   p.Architecture.String(),
			Window:         p.Window,
			MinCount:       p.MinCount,
			Negative:       p.Negative,
			Epochs:         p.Epochs,
			Alpha:          p.Alpha,
			MinAlpha:       p.MinAlpha,
			SampleExponent: p.SampleExponent,
			Sample:         p.Sample,
			Workers:        p.Workers,
			Seed:           p.Seed,
		},
	}
	return jsonResource(req.Params.URI, info)
}

// handleVocabularyResource lists the most frequent words with counts.
func (s *Server) handleVocabularyResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	model, err := s.currentModel(req.Params.URI)
	if err != nil {
		return nil, err
	}

	vocab := model.Vocabulary()
	n := min(vocab.Size(), vocabularyResourceLimit)
	entries := make([]vocabularyEntry, n)
	for i := range entries {
		entries[i] = vocabularyEntry{Word: vocab.Word(i), Count: vocab.Count(i)}
	}
	return jsonResource(req.Params.URI, entries)
}

func (s *Server) currentModel(uri string) (*domain.Model, error) {
	if s.ports.Models == nil {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	model, err := s.ports.Models.Current()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", uri, err)
	}
	return model, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
