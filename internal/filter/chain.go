package filter

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-jobscout-automation/internal/models"
)

// Chain runs the filter gates in a fixed order: blocklist, HR detection,
// sponsorship, fit scoring. Every stage outcome is appended to the trail for
// audit; evaluation stops at the first reject. The blocklist stage is free,
// so no judge call is ever issued for a blocklisted company.
type Chain struct {
	blocklist   *Blocklist
	hr          *HRDetector
	sponsorship *SponsorshipGate
	fit         *FitScorer
	threshold   float64
	log         *zap.SugaredLogger
}

func NewChain(blocklist *Blocklist, hr *HRDetector, sponsorship *SponsorshipGate, fit *FitScorer, threshold float64, log *zap.SugaredLogger) *Chain {
	return &Chain{
		blocklist:   blocklist,
		hr:          hr,
		sponsorship: sponsorship,
		fit:         fit,
		threshold:   threshold,
		log:         log,
	}
}

// Evaluate runs the chain for one posting under one role's settings and
// returns the ordered decision trail.
func (c *Chain) Evaluate(ctx context.Context, query models.SearchQuery, detail models.PostingDetail) models.DecisionTrail {
	var trail models.DecisionTrail

	if c.blocklist.IsBlocked(detail.Company) {
		return c.append(trail, detail, models.Decision{
			Stage:   models.StageBlocklist,
			Outcome: models.OutcomeReject,
			Reason:  "company on blocklist",
		})
	}
	trail = c.append(trail, detail, models.Decision{
		Stage:   models.StageBlocklist,
		Outcome: models.OutcomeAccept,
		Reason:  "company not blocklisted",
	})

	if query.SkipHRCheck {
		trail = c.append(trail, detail, models.Decision{
			Stage:   models.StageHR,
			Outcome: models.OutcomeAccept,
			Reason:  "hr check disabled for role",
		})
	} else {
		verdict := c.hr.Check(ctx, detail.Company, detail.Description)
		if verdict.IsHRCompany {
			return c.append(trail, detail, models.Decision{
				Stage:   models.StageHR,
				Outcome: models.OutcomeReject,
				Reason:  verdict.Reason,
			})
		}
		trail = c.append(trail, detail, models.Decision{
			Stage:   models.StageHR,
			Outcome: models.OutcomeAccept,
			Reason:  verdict.Reason,
		})
	}

	if !query.RequiresSponsorship {
		trail = c.append(trail, detail, models.Decision{
			Stage:   models.StageSponsorship,
			Outcome: models.OutcomeAccept,
			Reason:  "sponsorship not required for role",
		})
	} else {
		verdict := c.sponsorship.Check(ctx, detail.Description)
		if !verdict.AcceptsSponsorship {
			return c.append(trail, detail, models.Decision{
				Stage:   models.StageSponsorship,
				Outcome: models.OutcomeReject,
				Reason:  verdict.Reason,
			})
		}
		trail = c.append(trail, detail, models.Decision{
			Stage:   models.StageSponsorship,
			Outcome: models.OutcomeAccept,
			Reason:  verdict.Reason,
		})
	}

	result := c.fit.Score(ctx, detail)
	if result.Failed {
		return c.append(trail, detail, models.Decision{
			Stage:   models.StageFit,
			Outcome: models.OutcomeAccept,
			Reason:  result.Reason,
		})
	}

	score := result.Score
	decision := models.Decision{
		Stage:  models.StageFit,
		Reason: result.Reason,
		Score:  &score,
	}
	if score >= c.threshold {
		decision.Outcome = models.OutcomeAccept
	} else {
		decision.Outcome = models.OutcomeReject
		decision.Reason = fmt.Sprintf("score %.1f below threshold %.1f: %s", score, c.threshold, result.Reason)
	}
	return c.append(trail, detail, decision)
}

func (c *Chain) append(trail models.DecisionTrail, detail models.PostingDetail, d models.Decision) models.DecisionTrail {
	fields := []any{
		"posting_id", detail.PostingID,
		"company", detail.Company,
		"stage", d.Stage,
		"outcome", d.Outcome,
		"reason", d.Reason,
	}
	if d.Score != nil {
		fields = append(fields, "score", *d.Score)
	}
	c.log.Infow("filter stage decision", fields...)
	return append(trail, d)
}
