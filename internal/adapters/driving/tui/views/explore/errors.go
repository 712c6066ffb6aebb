package explore

import "errors"

// Error definitions for the explore view.
var (
	// ErrNoQueryService indicates that no query service was provided.
	ErrNoQueryService = errors.New("query service is required")

	// ErrEmptyQuery indicates the query input was blank.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrMalformedQuery indicates the query could not be parsed.
	ErrMalformedQuery = errors.New("malformed query")
)
