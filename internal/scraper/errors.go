// Extraction error taxonomy shared by the list/detail extractors and the
// cycle runner. Retry policy lives with the extractors; disposition policy
// (skip posting vs abort cycle) lives with the runner.

package scraper

import (
	"errors"
	"fmt"
)

// ErrSessionLost means the browser session is gone entirely. Fatal for the
// current cycle; the scheduler shell retries on the next interval tick.
var ErrSessionLost = errors.New("browser session lost")

// ExtractionFault is a transient DOM/session hiccup (stale element, detached
// frame). Retryable with no added delay.
type ExtractionFault struct {
	Op  string
	Err error
}

func (e *ExtractionFault) Error() string {
	return fmt.Sprintf("extraction fault during %s: %v", e.Op, e.Err)
}

func (e *ExtractionFault) Unwrap() error { return e.Err }

// ExtractionTimeout means an element or page did not appear in time.
// Retryable with linear backoff.
type ExtractionTimeout struct {
	Op  string
	Err error
}

func (e *ExtractionTimeout) Error() string {
	return fmt.Sprintf("extraction timeout during %s: %v", e.Op, e.Err)
}

func (e *ExtractionTimeout) Unwrap() error { return e.Err }

// PostingSkipped is terminal for one posting after retries are exhausted.
// The cycle continues with the next posting.
type PostingSkipped struct {
	PostingID string
	Err       error
}

func (e *PostingSkipped) Error() string {
	return fmt.Sprintf("posting %s skipped: %v", e.PostingID, e.Err)
}

func (e *PostingSkipped) Unwrap() error { return e.Err }

// IsFault reports whether err is (or wraps) a transient extraction fault.
func IsFault(err error) bool {
	var f *ExtractionFault
	return errors.As(err, &f)
}

// IsTimeout reports whether err is (or wraps) an extraction timeout.
func IsTimeout(err error) bool {
	var t *ExtractionTimeout
	return errors.As(err, &t)
}
