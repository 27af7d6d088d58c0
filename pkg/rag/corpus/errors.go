package corpus

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSource   = errors.New("missing source identifier")
	ErrInvalidEncoding = errors.New("source is not valid UTF-8")
)

// CorpusError reports a source that could not be loaded or indexed.
// A failed reindex keeps the previous index serving.
type CorpusError struct {
	Source string
	Op     string // "load" | "build"
	Err    error
}

func (e *CorpusError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("corpus %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("corpus %s %q: %v", e.Op, e.Source, e.Err)
}

func (e *CorpusError) Unwrap() error {
	return e.Err
}
