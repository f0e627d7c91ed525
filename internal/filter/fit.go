package filter

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-jobscout-automation/internal/ai"
	"go-jobscout-automation/internal/models"
)

const fitPrompt = `You are a concise matcher. Score 0-10 (float) how well the candidate fits the job. Consider resume and preferences. Return JSON: {"score": number, "reason": string}.`

// FitResult is the outcome of the two-pass scoring protocol. Failed marks
// the fail-open path (judge unavailable or verdict unparsable); Score is
// meaningless when Failed is set.
type FitResult struct {
	Score     float64
	Reason    string
	ModelUsed string
	Reranked  bool
	Failed    bool
}

// FitScorer scores a posting against the resume and preferences. Pass 1 uses
// the baseline model; when its score reaches the rerank trigger, pass 2
// re-invokes the stronger model on the same inputs and its score is
// authoritative.
type FitScorer struct {
	judge         ai.Client
	baseModel     string
	rerankModel   string
	rerankTrigger float64
	resume        string
	preferences   string
	log           *zap.SugaredLogger
}

func NewFitScorer(judge ai.Client, baseModel, rerankModel string, rerankTrigger float64, resume, preferences string, log *zap.SugaredLogger) *FitScorer {
	return &FitScorer{
		judge:         judge,
		baseModel:     baseModel,
		rerankModel:   rerankModel,
		rerankTrigger: rerankTrigger,
		resume:        resume,
		preferences:   preferences,
		log:           log,
	}
}

// Score runs the two-pass protocol for one posting.
func (s *FitScorer) Score(ctx context.Context, detail models.PostingDetail) FitResult {
	userContent := s.buildContent(detail)

	first, ok := s.pass(ctx, s.baseModel, userContent)
	if !ok {
		return FitResult{Failed: true, Reason: "pass-1 judge failure, assumed accept"}
	}

	rerank := s.rerankModel != "" && s.rerankModel != s.baseModel
	if !rerank || first.Score < s.rerankTrigger {
		return FitResult{Score: first.Score, Reason: first.Reason, ModelUsed: s.baseModel}
	}

	s.log.Infow("pass-1 score at rerank trigger, consulting stronger model",
		"posting_id", detail.PostingID, "score", first.Score)
	second, ok := s.pass(ctx, s.rerankModel, userContent)
	if !ok {
		return FitResult{Failed: true, Reranked: true, Reason: "pass-2 judge failure, assumed accept"}
	}
	return FitResult{Score: second.Score, Reason: second.Reason, ModelUsed: s.rerankModel, Reranked: true}
}

func (s *FitScorer) pass(ctx context.Context, model, userContent string) (ai.FitVerdict, bool) {
	raw, err := s.judge.Invoke(ctx, model, fitPrompt, userContent)
	if err != nil {
		s.log.Warnw("fit scoring call failed", "model", model, "error", err)
		return ai.FitVerdict{}, false
	}
	verdict, err := ai.ParseFitVerdict(raw)
	if err != nil {
		s.log.Warnw("fit verdict unparsable", "model", model, "error", err)
		return ai.FitVerdict{}, false
	}
	return verdict, true
}

func (s *FitScorer) buildContent(detail models.PostingDetail) string {
	description := detail.Description
	if len(description) > 4000 {
		description = description[:4000]
	}
	return fmt.Sprintf(
		"Resume:\n%s\n\nPreferences:\n%s\n\nJob Title: %s\nCompany: %s\nLocation: %s\nDescription: %s",
		s.resume, s.preferences, detail.Title, detail.Company, detail.Location, description,
	)
}
