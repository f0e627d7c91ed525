package models

// Stage identifies which filter gate produced a decision.
type Stage string

const (
	StageBlocklist   Stage = "blocklist"
	StageHR          Stage = "hr"
	StageSponsorship Stage = "sponsorship"
	StageFit         Stage = "fit"
)

// Outcome is a gate's verdict for one posting.
type Outcome string

const (
	OutcomeAccept Outcome = "accept"
	OutcomeReject Outcome = "reject"
)

// Decision is one gate's outcome for one posting. Score is set only by the
// fit stage.
type Decision struct {
	Stage   Stage
	Outcome Outcome
	Reason  string
	Score   *float64
}

// DecisionTrail is the ordered list of stage outcomes for one posting.
// Evaluation stops at the first reject, so the last entry is the terminal
// decision.
type DecisionTrail []Decision

// Rejected reports whether the trail ended in a reject.
func (t DecisionTrail) Rejected() bool {
	return len(t) > 0 && t[len(t)-1].Outcome == OutcomeReject
}

// Terminal returns the last decision in the trail, or a zero Decision for an
// empty trail.
func (t DecisionTrail) Terminal() Decision {
	if len(t) == 0 {
		return Decision{}
	}
	return t[len(t)-1]
}

// FinalScore returns the fit score when the trail ended at an accepting fit
// stage, else 0.
func (t DecisionTrail) FinalScore() float64 {
	d := t.Terminal()
	if d.Stage == StageFit && d.Score != nil {
		return *d.Score
	}
	return 0
}
