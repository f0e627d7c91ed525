package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrDocumentNotFound means a profile document is missing on disk. The
// resume is required at startup; preferences are optional.
var ErrDocumentNotFound = errors.New("document not found")

// LoadDocument reads a plain-text profile document (resume, preferences).
func LoadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("could not read document %s: %w", path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrDocumentNotFound, path)
	}
	return text, nil
}
