package filter

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"go-jobscout-automation/internal/ai"
)

const sponsorshipPrompt = `You are evaluating sponsorship for a candidate who will need continued work authorization (e.g., H-1B or similar). From the job description, decide if the employer supports work visas. Return JSON only: {"accepts_sponsorship": true|false, "reason": "brief explanation"}. Reject ONLY when the description explicitly denies sponsorship or requires unrestricted work authorization. Treat any of these as NOT sponsoring: no visa sponsorship, cannot hire international candidates, US citizens only, must have permanent work authorization/GC/USC, no OPT/CPT, must already be authorized without sponsorship. If the description is unclear or does not mention sponsorship, return accepts_sponsorship=true (default accept). If the description is positive about sponsorship (e.g., we sponsor H-1B/TN/O-1) or is open to international/OPT, return accepts_sponsorship=true.`

// Phrases that clearly deny sponsorship. Any hit rejects without a judge call.
var strongNegatives = []string{
	"no visa sponsorship",
	"without sponsorship",
	"cannot sponsor",
	"will not sponsor",
	"not able to sponsor",
	"cannot hire international",
	"international candidates will not be considered",
	"us citizens only",
	"citizens only",
	"must be a us citizen",
	"usc only",
	"permanent resident only",
	"green card holders only",
	"must have permanent work authorization",
	"must have unrestricted work authorization",
	"no opt",
	"no cpt",
	"no h-1b",
	"no h1b",
	"no visa transfer",
	"no relocation or visa",
	"no relocation/visa",
	"must be authorized to work without sponsorship",
}

// Keywords meaning the description talks about sponsorship/authorization at
// all. Without any of these the judge is not consulted.
var sponsorshipSignals = []string{
	"visa", "sponsor", "sponsorship", "work authorization", "international",
	"authorisation", "h-1b", "h1b", "tn visa", "o-1", "o1", "green card",
	"gc holder", "permanent resident", "citizen", "citizens only", "usc",
	"c2c", "w2", "e-verify", "opt", "stem opt", "cpt", "work permit",
	"permanent work authorization", "must be eligible to work",
	"authorized to work", "authorization to work", "non-citizen",
	"relocation/visa",
}

// Markers in a judge's reason meaning it rejected only for lack of explicit
// mention; absence of information resolves to accept.
var noInfoMarkers = []string{
	"does not mention", "no mention", "not mention", "unspecified", "unclear",
	"not specified", "no information", "not provided", "unknown",
}

var unpaidKeywords = []string{
	"unpaid", "no pay", "without pay", "no compensation", "uncompensated", "stipend only",
}

var volunteerKeywords = []string{"volunteer", "voluntary position", "voluntary role"}

var phdKeywords = []string{"phd", "ph.d", "doctorate", "doctoral"}

var experienceRe = regexp.MustCompile(`(\d+)\s*\+?\s*(?:years|year|yrs|yr)[^\n]{0,20}experience`)

// SponsorshipGateConfig holds the deterministic eligibility knobs applied
// before the judge is consulted.
type SponsorshipGateConfig struct {
	RejectUnpaidRoles  bool
	RejectVolunteer    bool
	MaxExperienceYears int
	AllowPhDRequired   bool
}

// SponsorshipGate rejects postings that explicitly deny visa sponsorship.
// Ambiguity resolves to accept. Cheap text heuristics run first; the judge
// is only consulted when the description mentions sponsorship without a
// clear denial.
type SponsorshipGate struct {
	judge ai.Client
	model string
	cfg   SponsorshipGateConfig
	log   *zap.SugaredLogger
}

func NewSponsorshipGate(judge ai.Client, model string, cfg SponsorshipGateConfig, log *zap.SugaredLogger) *SponsorshipGate {
	return &SponsorshipGate{judge: judge, model: model, cfg: cfg, log: log}
}

// Check returns the sponsorship verdict for one posting description.
func (g *SponsorshipGate) Check(ctx context.Context, description string) ai.SponsorshipVerdict {
	if strings.TrimSpace(description) == "" {
		return ai.SponsorshipVerdict{AcceptsSponsorship: true, Reason: "no description provided"}
	}

	lowered := strings.ToLower(description)

	if reason := g.eligibilityReject(lowered); reason != "" {
		return ai.SponsorshipVerdict{AcceptsSponsorship: false, Reason: reason}
	}

	for _, phrase := range strongNegatives {
		if strings.Contains(lowered, phrase) {
			return ai.SponsorshipVerdict{
				AcceptsSponsorship: false,
				Reason:             "explicit denial: " + phrase,
			}
		}
	}

	if !hasSponsorshipSignal(lowered) {
		return ai.SponsorshipVerdict{
			AcceptsSponsorship: true,
			Reason:             "no sponsorship language present, assumed accept",
		}
	}

	raw, err := g.judge.Invoke(ctx, g.model, sponsorshipPrompt, description)
	if err != nil {
		g.log.Warnw("sponsorship check failed, accepting posting", "error", err)
		return ai.SponsorshipVerdict{AcceptsSponsorship: true, Reason: "judge unavailable, assumed accept"}
	}

	verdict, err := ai.ParseSponsorshipVerdict(raw)
	if err != nil {
		g.log.Warnw("sponsorship verdict unparsable, accepting posting", "error", err)
		return ai.SponsorshipVerdict{AcceptsSponsorship: true, Reason: "malformed verdict, assumed accept"}
	}

	// A reject for mere lack of mention is not a denial.
	if !verdict.AcceptsSponsorship {
		reason := strings.ToLower(verdict.Reason)
		for _, marker := range noInfoMarkers {
			if strings.Contains(reason, marker) {
				return ai.SponsorshipVerdict{
					AcceptsSponsorship: true,
					Reason:             "judge uncertain, no explicit denial, defaulting to accept",
				}
			}
		}
	}
	return verdict
}

// eligibilityReject applies the deterministic pre-checks. Returns the reject
// reason or empty when the posting passes.
func (g *SponsorshipGate) eligibilityReject(lowered string) string {
	if g.cfg.RejectUnpaidRoles {
		for _, kw := range unpaidKeywords {
			if strings.Contains(lowered, kw) {
				return "unpaid role detected"
			}
		}
	}
	if g.cfg.RejectVolunteer {
		for _, kw := range volunteerKeywords {
			if strings.Contains(lowered, kw) {
				return "volunteer role detected"
			}
		}
	}
	if g.cfg.MaxExperienceYears > 0 {
		for _, m := range experienceRe.FindAllStringSubmatch(lowered, -1) {
			years, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if years > g.cfg.MaxExperienceYears {
				return fmt.Sprintf("experience requirement too high (%d+ years > allowed %d)", years, g.cfg.MaxExperienceYears)
			}
		}
	}
	if !g.cfg.AllowPhDRequired {
		for _, kw := range phdKeywords {
			if strings.Contains(lowered, kw) {
				return "phd requirement detected"
			}
		}
	}
	return ""
}

func hasSponsorshipSignal(lowered string) bool {
	for _, kw := range sponsorshipSignals {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
