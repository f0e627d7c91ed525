// The cycle runner: one complete pass over all configured roles, from query
// building through notification. Fault isolation is layered: a posting
// failure never aborts its role, a role failure never aborts the remaining
// roles, and only a lost session aborts the cycle.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go-jobscout-automation/internal/browser"
	"go-jobscout-automation/internal/models"
	"go-jobscout-automation/internal/scraper"
)

// ListExtractor walks one query's result pages. Stateful per query, so the
// runner asks the factory for a fresh one per role.
type ListExtractor interface {
	NextPage(query models.SearchQuery, cursor int) ([]models.PostingSummary, bool, error)
}

// DetailExtractor fetches the full detail for one posting.
type DetailExtractor interface {
	Fetch(postingID string) (models.PostingDetail, error)
}

// FilterChain evaluates one posting under one role's settings.
type FilterChain interface {
	Evaluate(ctx context.Context, query models.SearchQuery, detail models.PostingDetail) models.DecisionTrail
}

// Outreacher performs people outreach for one accepted posting.
type Outreacher interface {
	Run(role, company string) ([]models.OutreachRecord, models.OutreachSummary)
}

// Sink is the append-only persistence collaborator.
type Sink interface {
	AppendAcceptedJob(job models.AcceptedJob) error
	AppendOutreachRecords(records []models.OutreachRecord, role string) error
}

// Notifier pushes accepted jobs and cycle status to the operator.
type Notifier interface {
	Notify(job models.AcceptedJob) bool
	SendStatus(message string) error
	SendError(err error) error
}

type cycleState string

const (
	stateIdle       cycleState = "idle"
	stateBuilding   cycleState = "building_query"
	stateListing    cycleState = "listing_postings"
	stateProcessing cycleState = "processing_posting"
	stateComplete   cycleState = "cycle_complete"
)

// Options are the cycle-level knobs.
type Options struct {
	MaxApplicants int // skip postings with more applicants, 0 disables
	NoMatchPages  int // stop a query after this many consecutive pages with no accepted posting
	DelayMinMs    int
	DelayMaxMs    int
}

// Runner drives one polling cycle end to end. Single-threaded by design: the
// browser session is a shared stateful resource, so one posting is processed
// completely before the next begins.
type Runner struct {
	queries  []models.SearchQuery
	newList  func() ListExtractor
	detail   DetailExtractor
	chain    FilterChain
	outreach Outreacher
	sink     Sink
	notifier Notifier
	opts     Options
	log      *zap.SugaredLogger
}

func NewRunner(
	queries []models.SearchQuery,
	newList func() ListExtractor,
	detail DetailExtractor,
	chain FilterChain,
	outreach Outreacher,
	sink Sink,
	notifier Notifier,
	opts Options,
	log *zap.SugaredLogger,
) *Runner {
	return &Runner{
		queries:  queries,
		newList:  newList,
		detail:   detail,
		chain:    chain,
		outreach: outreach,
		sink:     sink,
		notifier: notifier,
		opts:     opts,
		log:      log,
	}
}

type cycleStats struct {
	processed int
	skipped   int
	rejected  int
	accepted  int
}

// RunOneCycle processes every configured role once. Only a lost session (or
// cancellation) is returned as an error; everything else is absorbed and
// logged at the appropriate boundary.
func (r *Runner) RunOneCycle(ctx context.Context) error {
	start := time.Now()
	var stats cycleStats
	r.setState(stateIdle, "")

	for _, query := range r.queries {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := r.runQuery(ctx, query, &stats)
		if err == nil {
			continue
		}
		if errors.Is(err, scraper.ErrSessionLost) || errors.Is(err, context.Canceled) {
			if r.notifier != nil && errors.Is(err, scraper.ErrSessionLost) {
				_ = r.notifier.SendError(err)
			}
			return err
		}
		// Role isolation: one role's failure never aborts the rest.
		r.log.Errorw("role processing failed, continuing with next role",
			"role", query.Role, "error", err)
	}

	r.setState(stateComplete, "")
	summary := fmt.Sprintf(
		"Cycle complete in %s: %d postings processed, %d accepted, %d rejected, %d skipped",
		time.Since(start).Round(time.Second), stats.processed, stats.accepted, stats.rejected, stats.skipped)
	r.log.Infow("cycle complete",
		"duration", time.Since(start),
		"processed", stats.processed,
		"accepted", stats.accepted,
		"rejected", stats.rejected,
		"skipped", stats.skipped)
	if r.notifier != nil {
		if err := r.notifier.SendStatus(summary); err != nil {
			r.log.Warnw("cycle status delivery failed", "error", err)
		}
	}
	return nil
}

func (r *Runner) runQuery(ctx context.Context, query models.SearchQuery, stats *cycleStats) error {
	r.setState(stateBuilding, query.Role)
	list := r.newList()

	noMatchStreak := 0
	for cursor := 0; ; cursor++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.setState(stateListing, query.Role)
		postings, hasMore, err := list.NextPage(query, cursor)
		if err != nil {
			return fmt.Errorf("listing page %d: %w", cursor, err)
		}

		acceptedOnPage := 0
		for _, summary := range postings {
			// The shutdown signal is observed between postings, never
			// mid-judge-call.
			if err := ctx.Err(); err != nil {
				return err
			}

			if summary.PreviouslySeen {
				r.log.Debugw("posting previously seen, skipping",
					"posting_id", summary.PostingID, "title", summary.Title)
				stats.skipped++
				continue
			}

			accepted, err := r.processPosting(ctx, query, summary, stats)
			if err != nil {
				return err
			}
			if accepted {
				acceptedOnPage++
			}
			browser.RandomDelay(r.opts.DelayMinMs, r.opts.DelayMaxMs)
		}

		if acceptedOnPage == 0 {
			noMatchStreak++
		} else {
			noMatchStreak = 0
		}
		if r.opts.NoMatchPages > 0 && noMatchStreak >= r.opts.NoMatchPages {
			r.log.Infow("stopping query after consecutive no-match pages",
				"role", query.Role, "pages", noMatchStreak)
			return nil
		}
		if !hasMore {
			return nil
		}
	}
}

// processPosting takes one posting through detail extraction, the filter
// chain, outreach, persistence, and notification. Posting-local faults are
// absorbed here; only a lost session propagates.
func (r *Runner) processPosting(ctx context.Context, query models.SearchQuery, summary models.PostingSummary, stats *cycleStats) (bool, error) {
	r.setState(stateProcessing, query.Role)
	stats.processed++

	detail, err := r.detail.Fetch(summary.PostingID)
	if err != nil {
		if errors.Is(err, scraper.ErrSessionLost) {
			return false, err
		}
		var skipped *scraper.PostingSkipped
		if errors.As(err, &skipped) {
			r.log.Warnw("posting skipped after retries",
				"posting_id", summary.PostingID, "title", summary.Title, "error", skipped.Err)
		} else {
			r.log.Warnw("detail extraction failed, skipping posting",
				"posting_id", summary.PostingID, "error", err)
		}
		stats.skipped++
		return false, nil
	}

	if r.opts.MaxApplicants > 0 && detail.ApplicantCount > r.opts.MaxApplicants {
		r.log.Infow("posting over applicant cap, skipping",
			"posting_id", detail.PostingID,
			"applicants", detail.ApplicantCount,
			"cap", r.opts.MaxApplicants)
		stats.skipped++
		return false, nil
	}

	trail := r.chain.Evaluate(ctx, query, detail)
	if trail.Rejected() {
		stats.rejected++
		return false, nil
	}

	records, _ := r.outreach.Run(query.Role, detail.Company)

	job := models.AcceptedJob{
		Posting:    detail,
		FitScore:   trail.FinalScore(),
		Trail:      trail,
		Outreach:   records,
		AcceptedAt: time.Now(),
	}

	if err := r.sink.AppendAcceptedJob(job); err != nil {
		// Never discard an accepted match silently; the sink has already
		// retried.
		r.log.Errorw("could not persist accepted job",
			"posting_id", detail.PostingID, "company", detail.Company, "error", err)
	}
	if err := r.sink.AppendOutreachRecords(records, query.Role); err != nil {
		r.log.Errorw("could not persist outreach records",
			"posting_id", detail.PostingID, "error", err)
	}

	if r.notifier != nil && !r.notifier.Notify(job) {
		r.log.Warnw("accepted job notification not delivered", "posting_id", detail.PostingID)
	}

	r.log.Infow("posting accepted",
		"posting_id", detail.PostingID,
		"company", detail.Company,
		"score", job.FitScore,
		"outreach_records", len(records))
	stats.accepted++
	return true, nil
}

func (r *Runner) setState(s cycleState, role string) {
	if role != "" {
		r.log.Debugw("cycle state", "state", s, "role", role)
		return
	}
	r.log.Debugw("cycle state", "state", s)
}
