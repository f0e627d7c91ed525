package ai

import (
	"context"
	"errors"
)

// ErrJudgeUnavailable is returned when the judge endpoint cannot be reached
// or answers with a non-OK status. Stages resolve it via their fail-open /
// fail-closed default; it never propagates past the filter chain.
var ErrJudgeUnavailable = errors.New("judge unavailable")

// Client is the interface for LLM-backed judges. Invoke sends a fixed system
// prompt plus the per-posting user content to the given model and returns the
// raw response text. Callers own parse validation of the response.
type Client interface {
	Invoke(ctx context.Context, model, systemPrompt, userContent string) (string, error)
}
