// Typed verdict parsing for judge responses.
//
// Every judge call is followed by a strict parse step; downstream logic
// dispatches only on the typed verdict, never on raw text. A response that
// does not parse into the expected shape yields ErrMalformedVerdict and the
// calling stage applies its fail-open/fail-closed default.

package ai

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedVerdict = errors.New("malformed judge verdict")

// HRVerdict is the parsed answer to "is this company a staffing/HR firm?".
type HRVerdict struct {
	IsHRCompany bool
	Reason      string
}

// SponsorshipVerdict is the parsed answer to "does this employer sponsor
// work visas?".
type SponsorshipVerdict struct {
	AcceptsSponsorship bool
	Reason             string
}

// FitVerdict is the parsed 0-10 fit score from one scoring pass.
type FitVerdict struct {
	Score  float64
	Reason string
}

func ParseHRVerdict(raw string) (HRVerdict, error) {
	var payload struct {
		IsHRCompany *bool  `json:"is_hr_company"`
		Reason      string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return HRVerdict{}, fmt.Errorf("%w: %v", ErrMalformedVerdict, err)
	}
	if payload.IsHRCompany == nil {
		return HRVerdict{}, fmt.Errorf("%w: missing is_hr_company", ErrMalformedVerdict)
	}
	return HRVerdict{IsHRCompany: *payload.IsHRCompany, Reason: payload.Reason}, nil
}

func ParseSponsorshipVerdict(raw string) (SponsorshipVerdict, error) {
	var payload struct {
		AcceptsSponsorship *bool  `json:"accepts_sponsorship"`
		Reason             string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return SponsorshipVerdict{}, fmt.Errorf("%w: %v", ErrMalformedVerdict, err)
	}
	if payload.AcceptsSponsorship == nil {
		return SponsorshipVerdict{}, fmt.Errorf("%w: missing accepts_sponsorship", ErrMalformedVerdict)
	}
	return SponsorshipVerdict{AcceptsSponsorship: *payload.AcceptsSponsorship, Reason: payload.Reason}, nil
}

func ParseFitVerdict(raw string) (FitVerdict, error) {
	var payload struct {
		Score  *float64 `json:"score"`
		Reason string   `json:"reason"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return FitVerdict{}, fmt.Errorf("%w: %v", ErrMalformedVerdict, err)
	}
	if payload.Score == nil {
		return FitVerdict{}, fmt.Errorf("%w: missing score", ErrMalformedVerdict)
	}
	if *payload.Score < 0 || *payload.Score > 10 {
		return FitVerdict{}, fmt.Errorf("%w: score %.2f out of range", ErrMalformedVerdict, *payload.Score)
	}
	return FitVerdict{Score: *payload.Score, Reason: payload.Reason}, nil
}
