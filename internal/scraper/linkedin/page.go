package linkedin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"go-jobscout-automation/internal/scraper"
)

// classifyPageError maps a raw playwright failure onto the extraction error
// taxonomy so the retry loops can dispatch on type.
func classifyPageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTargetClosed) || isClosedError(err) {
		return fmt.Errorf("%s: %w", op, scraper.ErrSessionLost)
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return &scraper.ExtractionTimeout{Op: op, Err: err}
	}
	return &scraper.ExtractionFault{Op: op, Err: err}
}

func isClosedError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "browser has been closed") ||
		strings.Contains(msg, "context has been closed") ||
		strings.Contains(msg, "page has been closed")
}
