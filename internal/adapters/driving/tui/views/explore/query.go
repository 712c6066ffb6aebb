package explore

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/custodia-labs/wordspace/internal/adapters/driving/tui/messages"
)

// Query is a parsed explorer query.
type Query struct {
	Kind messages.QueryKind

	// Word is the subject of a neighbour query.
	Word string

	// Pair holds the two words of a similarity query.
	Pair [2]string

	// Positive and Negative hold the terms of an analogy query.
	Positive []string
	Negative []string
}

// ParseQuery reads one of three forms:
//
//	king                 nearest neighbours
//	king ~ queen         cosine similarity
//	king - man + woman   analogy
func ParseQuery(input string) (Query, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}, ErrEmptyQuery
	}

	if strings.Contains(input, "~") {
		return parseSimilarity(input)
	}
	if strings.ContainsAny(input, "+-") {
		return parseAnalogy(input)
	}

	fields := strings.Fields(input)
	if len(fields) > 1 {
		return Query{}, fmt.Errorf("%w: use ~ to compare words or +/- to combine them", ErrMalformedQuery)
	}
	return Query{Kind: messages.QueryNeighbors, Word: fields[0]}, nil
}

func parseSimilarity(input string) (Query, error) {
	parts := strings.Split(input, "~")
	if len(parts) != 2 {
		return Query{}, fmt.Errorf("%w: similarity takes exactly two words", ErrMalformedQuery)
	}
	var q Query
	q.Kind = messages.QuerySimilarity
	for i, p := range parts {
		fields := strings.Fields(p)
		if len(fields) != 1 {
			return Query{}, fmt.Errorf("%w: similarity takes exactly two words", ErrMalformedQuery)
		}
		q.Pair[i] = fields[0]
	}
	return q, nil
}

func parseAnalogy(input string) (Query, error) {
	q := Query{Kind: messages.QueryAnalogy}
	sign := '+'
	expectTerm := true

	for _, tok := range splitTerms(input) {
		switch tok {
		case "+", "-":
			if expectTerm && (len(q.Positive)+len(q.Negative) > 0) {
				return Query{}, fmt.Errorf("%w: operator %q without a word before it", ErrMalformedQuery, tok)
			}
			sign = rune(tok[0])
			expectTerm = true
		default:
			if !expectTerm {
				return Query{}, fmt.Errorf("%w: missing operator before %q", ErrMalformedQuery, tok)
			}
			if sign == '+' {
				q.Positive = append(q.Positive, tok)
			} else {
				q.Negative = append(q.Negative, tok)
			}
			expectTerm = false
		}
	}

	if expectTerm {
		return Query{}, fmt.Errorf("%w: expression ends with an operator", ErrMalformedQuery)
	}
	if len(q.Positive) == 0 {
		return Query{}, fmt.Errorf("%w: analogy needs at least one positive word", ErrMalformedQuery)
	}
	return q, nil
}

// splitTerms breaks input into words and single-character operators.
func splitTerms(input string) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range input {
		switch {
		case r == '+' || r == '-':
			flush()
			out = append(out, string(r))
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}
