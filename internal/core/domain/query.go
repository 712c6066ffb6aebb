package domain

import "time"

// Neighbor is one ranked query result.
type Neighbor struct {
	Word  string  `json:"word"`
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// AnalogyQuery describes "positive - negative" vector arithmetic.
type AnalogyQuery struct {
	Positive []string
	Negative []string
	TopN     int
}

// ProjectedWord is a word placed in a low-dimensional projection.
type ProjectedWord struct {
	Word        string    `json:"word"`
	Coordinates []float64 `json:"coordinates"`
}

// Health status values.
const (
	HealthOK             = "ok"
	HealthModelNotLoaded = "model_not_loaded"
)

// Health reports whether a model is serving.
type Health struct {
	Status         string `json:"status"`
	ModelLoaded    bool   `json:"model_loaded"`
	VocabularySize int    `json:"vocabulary_size,omitempty"`
	ModelID        string `json:"model_id,omitempty"`
}

// TrainingStats summarises the corpus seen by a training run.
type TrainingStats struct {
	Sentences      int
	RawTokens      int64
	RetainedTokens int64
	VocabularySize int
}

// TrainingProgress is a point-in-time view of a running training job.
type TrainingProgress struct {
	Epoch          int
	Epochs         int
	WordsProcessed int64
	TotalWords     int64
	Alpha          float64
	Elapsed        time.Duration
}

// Fraction returns completed work in [0, 1].
func (p TrainingProgress) Fraction() float64 {
	if p.TotalWords <= 0 {
		return 0
	}
	f := float64(p.WordsProcessed) / float64(p.TotalWords)
	if f > 1 {
		return 1
	}
	return f
}
