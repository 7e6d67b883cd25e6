package engine

import "fmt"

// ErrorKind classifies why a search returned no path, including the
// ordinary not_found outcome.
type ErrorKind string

const (
	ErrBadInput ErrorKind = "bad_input"
	ErrInternal ErrorKind = "internal"
	ErrNotFound ErrorKind = "not_found"
	ErrTimeout  ErrorKind = "timeout"

	// Fetch-transient and fetch-terminal are handled locally by the
	// Fetcher (retry, then degrade to a leaf node) and never surfaced as
	// a SearchError kind. No code refers to these two constants; fetch
	// failures are logged with their underlying error instead.
	errFetchTransient ErrorKind = "fetch_transient"
	errFetchTerminal  ErrorKind = "fetch_terminal"
)

// SearchError reports a classified search failure.
type SearchError struct {
	Kind ErrorKind
	Err  error
}

func (e *SearchError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

func badInput(format string, args ...interface{}) error {
	return &SearchError{Kind: ErrBadInput, Err: fmt.Errorf(format, args...)}
}
