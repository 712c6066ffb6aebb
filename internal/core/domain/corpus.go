package domain

import "time"

// Sentence is an ordered sequence of tokens. Order defines context windows.
type Sentence []string

// Corpus is the ordered sentence sequence consumed by training.
type Corpus struct {
	Sentences []Sentence
}

// NewCorpus wraps token lists as a corpus.
func NewCorpus(sentences ...[]string) *Corpus {
	c := &Corpus{Sentences: make([]Sentence, 0, len(sentences))}
	for _, s := range sentences {
		c.Sentences = append(c.Sentences, Sentence(s))
	}
	return c
}

// Len returns the number of sentences.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Sentences)
}

// TokenCount returns the number of tokens across all sentences.
func (c *Corpus) TokenCount() int64 {
	if c == nil {
		return 0
	}
	var n int64
	for _, s := range c.Sentences {
		n += int64(len(s))
	}
	return n
}

// CorpusDocument records one ingested source text.
type CorpusDocument struct {
	// ID is a UUID assigned at ingestion.
	ID string `json:"id"`

	// Name is a display name, usually the file base name.
	Name string `json:"name"`

	// Path is the source location, if the text came from a file.
	Path string `json:"path,omitempty"`

	// Sentences is the number of sentences kept after preprocessing.
	Sentences int `json:"sentences"`

	// Tokens is the number of tokens kept after preprocessing.
	Tokens int `json:"tokens"`

	// IngestedAt is when the document was stored.
	IngestedAt time.Time `json:"ingested_at"`
}

// CorpusStats summarises the stored corpus.
type CorpusStats struct {
	Documents int
	Sentences int64
	Tokens    int64
}
