package filter

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"go-jobscout-automation/internal/ai"
)

const hrPrompt = `Determine if the company "%s" is a staffing, recruitment, HR, or temp agency firm. Return JSON: {"is_hr_company": true/false, "reason": "brief explanation"}.`

// HRDetector asks the judge whether a company is a staffing/HR firm. A
// confirmed HR verdict rejects the posting and appends the company to the
// blocklist, so next cycle's blocklist stage short-circuits without another
// judge call. Judge failure or an unparsable verdict fails open: losing a
// legitimate posting costs more than occasionally processing a staffing firm.
type HRDetector struct {
	judge     ai.Client
	model     string
	blocklist *Blocklist
	log       *zap.SugaredLogger
}

func NewHRDetector(judge ai.Client, model string, blocklist *Blocklist, log *zap.SugaredLogger) *HRDetector {
	return &HRDetector{judge: judge, model: model, blocklist: blocklist, log: log}
}

// Check returns the verdict for one company. The error is nil on the
// fail-open path; callers only see the final verdict.
func (d *HRDetector) Check(ctx context.Context, company, description string) ai.HRVerdict {
	name := strings.TrimSpace(company)
	if name == "" {
		return ai.HRVerdict{IsHRCompany: false, Reason: "no company provided"}
	}

	if d.blocklist.IsBlocked(name) {
		return ai.HRVerdict{IsHRCompany: true, Reason: "company already on blocklist"}
	}

	userContent := "Company: " + name + "\nContext: " + contextSnippet(description)

	raw, err := d.judge.Invoke(ctx, d.model, fmt.Sprintf(hrPrompt, name), userContent)
	if err != nil {
		d.log.Warnw("hr check failed, accepting company", "company", name, "error", err)
		return ai.HRVerdict{IsHRCompany: false, Reason: "judge unavailable, assumed accept"}
	}

	verdict, err := ai.ParseHRVerdict(raw)
	if err != nil {
		d.log.Warnw("hr verdict unparsable, accepting company", "company", name, "error", err)
		return ai.HRVerdict{IsHRCompany: false, Reason: "malformed verdict, assumed accept"}
	}

	if verdict.IsHRCompany {
		if d.blocklist.Add(name) {
			d.log.Infow("staffing firm blocklisted", "company", name, "reason", verdict.Reason)
		}
	}
	return verdict
}

// contextSnippet bounds the description passed to the judge.
func contextSnippet(description string) string {
	if description == "" {
		return "No additional context provided."
	}
	if len(description) > 4000 {
		return description[:4000]
	}
	return description
}
