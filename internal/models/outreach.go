package models

// OutreachAction is what the coordinator did for one person card.
type OutreachAction string

const (
	ActionConnectSent      OutreachAction = "connect_sent"
	ActionMessageAvailable OutreachAction = "message_available"
	ActionNone             OutreachAction = "none"
)

// OutreachRecord is one contacted person from the people search. Immutable
// once created.
type OutreachRecord struct {
	PersonName  string
	PersonTitle string
	ProfileURL  string
	RoleMatched bool
	Action      OutreachAction
	PageNumber  int
}

// OutreachSummary aggregates what happened across one coordinator run.
// Logged per accepted posting.
type OutreachSummary struct {
	PagesProcessed   int
	ConnectsMatch    int
	ConnectsNonMatch int
	MessageAvailable int
	Skipped          int
	Failed           int
}
