package models

import "time"

// SearchQuery describes one configured role search. Built once per role by
// the query builder and never mutated afterwards.
type SearchQuery struct {
	Role                string
	Location            string
	DateWindow          string // "r<seconds>" token, clamped to 1h..24h
	ExperienceLevels    []string
	Remote              bool
	RequiresSponsorship bool
	SkipHRCheck         bool
}

// PostingSummary is one job card from the search results list. Ephemeral:
// previously-seen postings are dropped before detail extraction and nothing
// here is persisted.
type PostingSummary struct {
	PostingID      string
	Title          string
	Company        string
	Location       string
	PreviouslySeen bool
}

// PostingDetail is the full posting as extracted from the detail pane.
// Never mutated after creation; decisions are attached externally.
type PostingDetail struct {
	PostingID      string
	Title          string
	Company        string
	Location       string
	Description    string
	Seniority      string
	Remote         bool
	PostedTime     string
	ApplicantCount int
	CanonicalURL   string
}

// AcceptedJob is the unit handed to storage and the notifier. It exists only
// when every filter stage accepted and the final fit score cleared the
// configured threshold.
type AcceptedJob struct {
	Posting    PostingDetail
	FitScore   float64
	Trail      DecisionTrail
	Outreach   []OutreachRecord
	AcceptedAt time.Time
}
