package linkedin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobscout-automation/internal/models"
)

func TestBuildSearchURL(t *testing.T) {
	q := models.SearchQuery{
		Role:             "Data Scientist",
		Location:         "United States",
		DateWindow:       "r86400",
		ExperienceLevels: []string{"Entry level", "Associate"},
		Remote:           true,
	}

	url := BuildSearchURL(q)

	assert.Contains(t, url, "https://www.linkedin.com/jobs/search/?")
	assert.Contains(t, url, "keywords=Data+Scientist")
	assert.Contains(t, url, "location=United+States")
	assert.Contains(t, url, "f_WT=2")
	assert.Contains(t, url, "f_E=2,3")
	assert.Contains(t, url, "f_TPR=r86400")
	assert.Contains(t, url, "pageNum=0")
}

func TestBuildSearchURLOmitsUnsetFilters(t *testing.T) {
	url := BuildSearchURL(models.SearchQuery{Role: "ML Engineer", DateWindow: "r86400"})

	assert.NotContains(t, url, "f_WT=")
	assert.NotContains(t, url, "f_E=")
	assert.NotContains(t, url, "location=")
}

func TestBuildSearchURLExperienceCodes(t *testing.T) {
	q := models.SearchQuery{
		Role:       "Engineer",
		DateWindow: "r86400",
		ExperienceLevels: []string{
			"Internship", "Entry level", "Associate",
			"Mid-Senior level", "Director", "Executive",
			"Not A Level",
		},
	}

	assert.Contains(t, BuildSearchURL(q), "f_E=1,2,3,4,5,6")
}

func TestDateWindowClamping(t *testing.T) {
	tests := []struct {
		name   string
		window string
		want   string
	}{
		{name: "within range", window: "r43200", want: "f_TPR=r43200"},
		{name: "clamped low", window: "r600", want: "f_TPR=r3600"},
		{name: "clamped high", window: "r2592000", want: "f_TPR=r86400"},
		{name: "lower bound", window: "r3600", want: "f_TPR=r3600"},
		{name: "upper bound", window: "r86400", want: "f_TPR=r86400"},
		{name: "garbage falls back", window: "yesterday", want: "f_TPR=r86400"},
		{name: "empty falls back", window: "", want: "f_TPR=r86400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := BuildSearchURL(models.SearchQuery{Role: "x", DateWindow: tt.window})
			assert.Contains(t, url, tt.want)
		})
	}
}

func TestNextPageURL(t *testing.T) {
	base := BuildSearchURL(models.SearchQuery{Role: "x", DateWindow: "r86400"})

	page2 := NextPageURL(base, 2)
	assert.Contains(t, page2, "pageNum=2")
	assert.NotContains(t, page2, "pageNum=0")

	// Idempotent rewrite.
	page3 := NextPageURL(page2, 3)
	assert.Contains(t, page3, "pageNum=3")
	assert.NotContains(t, page3, "pageNum=2")

	// URL without the parameter gets one added.
	assert.Equal(t, "https://example.com/jobs?a=1&pageNum=4", NextPageURL("https://example.com/jobs?a=1", 4))
}
