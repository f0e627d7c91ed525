package filter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestGate(judge *fakeJudge, cfg SponsorshipGateConfig) *SponsorshipGate {
	return NewSponsorshipGate(judge, baseModel, cfg, zap.NewNop().Sugar())
}

func TestSponsorshipStrongNegativeRejectsWithoutJudge(t *testing.T) {
	judge := &fakeJudge{}
	gate := newTestGate(judge, SponsorshipGateConfig{AllowPhDRequired: true})

	verdict := gate.Check(context.Background(),
		"Great role for US citizens only. Competitive pay.")

	assert.False(t, verdict.AcceptsSponsorship)
	assert.Empty(t, judge.calls)
}

func TestSponsorshipNoSignalAcceptsWithoutJudge(t *testing.T) {
	judge := &fakeJudge{}
	gate := newTestGate(judge, SponsorshipGateConfig{AllowPhDRequired: true})

	verdict := gate.Check(context.Background(),
		"We are hiring a backend engineer to build our payments platform.")

	assert.True(t, verdict.AcceptsSponsorship)
	assert.Empty(t, judge.calls)
}

func TestSponsorshipEligibilityPreChecks(t *testing.T) {
	tests := []struct {
		name        string
		cfg         SponsorshipGateConfig
		description string
		wantAccept  bool
	}{
		{
			name:        "unpaid role rejected",
			cfg:         SponsorshipGateConfig{RejectUnpaidRoles: true, AllowPhDRequired: true},
			description: "This is an unpaid internship with great learning opportunities.",
			wantAccept:  false,
		},
		{
			name:        "volunteer role rejected",
			cfg:         SponsorshipGateConfig{RejectVolunteer: true, AllowPhDRequired: true},
			description: "Join us as a volunteer data analyst.",
			wantAccept:  false,
		},
		{
			name:        "experience ceiling rejected",
			cfg:         SponsorshipGateConfig{MaxExperienceYears: 3, AllowPhDRequired: true},
			description: "Requires 7+ years of professional experience in Python.",
			wantAccept:  false,
		},
		{
			name:        "experience within ceiling accepted",
			cfg:         SponsorshipGateConfig{MaxExperienceYears: 3, AllowPhDRequired: true},
			description: "Requires 2 years of experience in Python.",
			wantAccept:  true,
		},
		{
			name:        "phd requirement rejected when disallowed",
			cfg:         SponsorshipGateConfig{AllowPhDRequired: false},
			description: "PhD in computer science required.",
			wantAccept:  false,
		},
		{
			name:        "phd requirement allowed",
			cfg:         SponsorshipGateConfig{AllowPhDRequired: true},
			description: "PhD in computer science required.",
			wantAccept:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := newTestGate(&fakeJudge{}, tt.cfg)
			verdict := gate.Check(context.Background(), tt.description)
			assert.Equal(t, tt.wantAccept, verdict.AcceptsSponsorship)
		})
	}
}

func TestSponsorshipJudgeRejectForLackOfMentionOverridden(t *testing.T) {
	judge := &fakeJudge{replies: []judgeReply{
		{raw: `{"accepts_sponsorship": false, "reason": "the description does not mention sponsorship"}`},
	}}
	gate := newTestGate(judge, SponsorshipGateConfig{AllowPhDRequired: true})

	verdict := gate.Check(context.Background(),
		"Candidates must be authorized to work. We value international experience.")

	assert.True(t, verdict.AcceptsSponsorship, "lack of mention is not a denial")
	assert.Len(t, judge.calls, 1)
}

func TestSponsorshipJudgeExplicitRejectStands(t *testing.T) {
	judge := &fakeJudge{replies: []judgeReply{
		{raw: `{"accepts_sponsorship": false, "reason": "employer explicitly requires existing authorization"}`},
	}}
	gate := newTestGate(judge, SponsorshipGateConfig{AllowPhDRequired: true})

	verdict := gate.Check(context.Background(),
		"Work authorization requirements discussed during interview. Visa questions welcome.")

	assert.False(t, verdict.AcceptsSponsorship)
}

func TestSponsorshipMalformedVerdictFailsOpen(t *testing.T) {
	judge := &fakeJudge{replies: []judgeReply{{raw: "sure, probably"}}}
	gate := newTestGate(judge, SponsorshipGateConfig{AllowPhDRequired: true})

	verdict := gate.Check(context.Background(), "We sponsor H-1B visas case by case.")

	assert.True(t, verdict.AcceptsSponsorship)
}

func TestSponsorshipEmptyDescriptionAccepts(t *testing.T) {
	gate := newTestGate(&fakeJudge{}, SponsorshipGateConfig{AllowPhDRequired: true})
	verdict := gate.Check(context.Background(), "   ")
	assert.True(t, verdict.AcceptsSponsorship)
}
