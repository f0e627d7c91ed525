// Search URL construction for LinkedIn job search. Pure string building,
// no browser involvement.

package linkedin

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go-jobscout-automation/internal/models"
)

const baseSearchURL = "https://www.linkedin.com/jobs/search/"

// LinkedIn experience level codes used by the f_E filter.
var experienceCodes = map[string]string{
	"Internship":       "1",
	"Entry level":      "2",
	"Associate":        "3",
	"Mid-Senior level": "4",
	"Director":         "5",
	"Executive":        "6",
}

var dateWindowRe = regexp.MustCompile(`^r(\d+)$`)

// BuildSearchURL maps a search query to a complete LinkedIn job search URL.
// The date window is normalized to f_TPR=r<seconds> clamped to the 1h-24h
// range LinkedIn accepts; unrecognized windows fall back to the past 24 hours.
func BuildSearchURL(q models.SearchQuery) string {
	var params []string

	if q.Role != "" {
		params = append(params, "keywords="+url.QueryEscape(q.Role))
	}
	if q.Location != "" {
		params = append(params, "location="+url.QueryEscape(q.Location))
	}
	if q.Remote {
		params = append(params, "f_WT=2")
	}

	var codes []string
	for _, level := range q.ExperienceLevels {
		if code, ok := experienceCodes[level]; ok {
			codes = append(codes, code)
		}
	}
	if len(codes) > 0 {
		params = append(params, "f_E="+strings.Join(codes, ","))
	}

	params = append(params, "f_TPR="+normalizeDateWindow(q.DateWindow))
	params = append(params, "position=1", "pageNum=0")

	return baseSearchURL + "?" + strings.Join(params, "&")
}

func normalizeDateWindow(window string) string {
	m := dateWindowRe.FindStringSubmatch(strings.TrimSpace(window))
	if m == nil {
		return "r86400"
	}
	seconds, err := strconv.Atoi(m[1])
	if err != nil {
		return "r86400"
	}
	if seconds < 3600 {
		seconds = 3600
	}
	if seconds > 86400 {
		seconds = 86400
	}
	return fmt.Sprintf("r%d", seconds)
}

var pageNumRe = regexp.MustCompile(`pageNum=\d+`)

// NextPageURL rewrites the pageNum parameter for the given zero-indexed page.
func NextPageURL(searchURL string, page int) string {
	if pageNumRe.MatchString(searchURL) {
		return pageNumRe.ReplaceAllString(searchURL, fmt.Sprintf("pageNum=%d", page))
	}
	sep := "?"
	if strings.Contains(searchURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spageNum=%d", searchURL, sep, page)
}
