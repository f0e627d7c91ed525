package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

const screenshotDir = "logs/screenshots"

// CaptureScreenshot saves a full-page screenshot for debugging selector
// breakage and returns the file path. Best effort: callers treat a failure
// as a log line, never as a pipeline error.
func CaptureScreenshot(page playwright.Page, name string) (string, error) {
	if err := os.MkdirAll(screenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create screenshot dir: %w", err)
	}

	path := filepath.Join(screenshotDir, fmt.Sprintf("%s_%s.png", name, time.Now().Format("2006-01-02_15-04-05")))
	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("could not capture screenshot: %w", err)
	}
	return path, nil
}
