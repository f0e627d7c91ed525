package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHRVerdict(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    HRVerdict
		wantErr bool
	}{
		{
			name: "hr company",
			raw:  `{"is_hr_company": true, "reason": "staffing agency"}`,
			want: HRVerdict{IsHRCompany: true, Reason: "staffing agency"},
		},
		{
			name: "not hr company",
			raw:  `{"is_hr_company": false, "reason": "product company"}`,
			want: HRVerdict{IsHRCompany: false, Reason: "product company"},
		},
		{
			name:    "missing verdict field",
			raw:     `{"reason": "no idea"}`,
			wantErr: true,
		},
		{
			name:    "not json",
			raw:     "I think this is a staffing firm",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHRVerdict(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedVerdict)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSponsorshipVerdict(t *testing.T) {
	got, err := ParseSponsorshipVerdict(`{"accepts_sponsorship": false, "reason": "citizens only"}`)
	assert.NoError(t, err)
	assert.False(t, got.AcceptsSponsorship)
	assert.Equal(t, "citizens only", got.Reason)

	_, err = ParseSponsorshipVerdict(`{"reason": "unclear"}`)
	assert.ErrorIs(t, err, ErrMalformedVerdict)
}

func TestParseFitVerdict(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{name: "valid score", raw: `{"score": 8.5, "reason": "strong match"}`, want: 8.5},
		{name: "zero score", raw: `{"score": 0, "reason": "no overlap"}`, want: 0},
		{name: "missing score", raw: `{"reason": "good"}`, wantErr: true},
		{name: "score above range", raw: `{"score": 11, "reason": "great"}`, wantErr: true},
		{name: "score below range", raw: `{"score": -1, "reason": "bad"}`, wantErr: true},
		{name: "garbage", raw: "maybe an 8?", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFitVerdict(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedVerdict)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.Score)
		})
	}
}

func TestCleanMarkdownJSON(t *testing.T) {
	assert.Equal(t, `{"score": 8}`, cleanMarkdownJSON("```json\n{\"score\": 8}\n```"))
	assert.Equal(t, `{"score": 8}`, cleanMarkdownJSON("```\n{\"score\": 8}\n```"))
	assert.Equal(t, `{"score": 8}`, cleanMarkdownJSON(`{"score": 8}`))
}
