package linkedin

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"go-jobscout-automation/internal/browser"
	"go-jobscout-automation/internal/models"
	"go-jobscout-automation/internal/scraper"
)

// DetailSource fetches the full detail pane for one posting on the current
// results page. The playwright implementation lives below; tests substitute
// a fake.
type DetailSource interface {
	FetchDetail(postingID string) (models.PostingDetail, error)
}

// DetailExtractor applies the retry policy around a DetailSource: transient
// faults retry immediately up to a bound, timeouts retry with linear backoff
// up to a separate bound. Exhausting either bound skips the posting, never
// the cycle.
type DetailExtractor struct {
	src            DetailSource
	faultRetries   int
	timeoutRetries int
	backoffStep    time.Duration
	log            *zap.SugaredLogger
}

func NewDetailExtractor(src DetailSource, faultRetries, timeoutRetries int, log *zap.SugaredLogger) *DetailExtractor {
	return &DetailExtractor{
		src:            src,
		faultRetries:   faultRetries,
		timeoutRetries: timeoutRetries,
		backoffStep:    2 * time.Second,
		log:            log,
	}
}

// Fetch returns the posting's detail or a *scraper.PostingSkipped once
// retries are exhausted. A lost session propagates untouched so the cycle
// runner can abort the cycle.
func (e *DetailExtractor) Fetch(postingID string) (models.PostingDetail, error) {
	faults, timeouts := 0, 0
	for {
		detail, err := e.src.FetchDetail(postingID)
		if err == nil {
			return detail, nil
		}
		if errors.Is(err, scraper.ErrSessionLost) {
			return models.PostingDetail{}, err
		}

		switch {
		case scraper.IsFault(err):
			faults++
			if faults > e.faultRetries {
				return models.PostingDetail{}, &scraper.PostingSkipped{PostingID: postingID, Err: err}
			}
			e.log.Debugw("detail fault, retrying", "posting_id", postingID, "attempt", faults, "error", err)
		case scraper.IsTimeout(err):
			timeouts++
			if timeouts > e.timeoutRetries {
				return models.PostingDetail{}, &scraper.PostingSkipped{PostingID: postingID, Err: err}
			}
			e.log.Debugw("detail timeout, backing off", "posting_id", postingID, "attempt", timeouts, "error", err)
			time.Sleep(time.Duration(timeouts) * e.backoffStep)
		default:
			return models.PostingDetail{}, &scraper.PostingSkipped{PostingID: postingID, Err: err}
		}
	}
}

var remoteKeywords = []string{"remote", "work from home", "wfh", "hybrid"}

// ResolveRemote decides remote eligibility. The explicit workplace-type field
// wins whenever the source renders one; the description keyword scan is the
// fallback only.
func ResolveRemote(workplaceType, description string) bool {
	if wt := strings.ToLower(strings.TrimSpace(workplaceType)); wt != "" {
		return strings.Contains(wt, "remote") || strings.Contains(wt, "hybrid")
	}
	desc := strings.ToLower(description)
	for _, kw := range remoteKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

var applicantRe = regexp.MustCompile(`(\d+)`)

// playwrightDetailSource drives the detail pane of the live results page:
// click the card, wait for the pane, read the fields.
type playwrightDetailSource struct {
	page playwright.Page
}

// NewDetailSource wraps a live page as a DetailSource.
func NewDetailSource(page playwright.Page) DetailSource {
	return &playwrightDetailSource{page: page}
}

func (s *playwrightDetailSource) FetchDetail(postingID string) (models.PostingDetail, error) {
	detail := models.PostingDetail{
		PostingID:    postingID,
		CanonicalURL: "https://www.linkedin.com/jobs/view/" + postingID + "/",
	}

	card := s.page.Locator("li[data-occludable-job-id='" + postingID + "'] a, a[data-job-id='" + postingID + "'], a[href*='/jobs/view/" + postingID + "']").First()
	if err := card.ScrollIntoViewIfNeeded(); err != nil {
		return detail, classifyPageError("scroll to job card", err)
	}
	if err := card.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(5000)}); err != nil {
		return detail, classifyPageError("click job card", err)
	}

	if _, err := s.page.WaitForSelector(".jobs-search__job-details, .jobs-details__main-content", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		browser.CaptureScreenshot(s.page, "detail-pane-timeout")
		return detail, classifyPageError("wait for detail pane", err)
	}

	if title, err := s.page.Locator(".job-details-jobs-unified-top-card__job-title, .jobs-unified-top-card__job-title").First().InnerText(); err == nil {
		detail.Title = strings.TrimSpace(title)
	}
	if company, err := s.page.Locator(".job-details-jobs-unified-top-card__company-name, .jobs-unified-top-card__company-name").First().InnerText(); err == nil {
		detail.Company = strings.TrimSpace(company)
	}
	if location, err := s.page.Locator(".job-details-jobs-unified-top-card__bullet, .jobs-unified-top-card__bullet").First().InnerText(); err == nil {
		detail.Location = strings.TrimSpace(location)
	}

	detail.Description = s.readDescription()
	if detail.Description == "" {
		return detail, &scraper.ExtractionFault{Op: "read description", Err: errors.New("description empty")}
	}

	detail.Seniority = s.readSeniority()
	detail.PostedTime = s.readPostedTime()
	detail.ApplicantCount = s.readApplicantCount()

	workplaceType := ""
	if wt, err := s.page.Locator(".jobs-unified-top-card__workplace-type, .job-details-jobs-unified-top-card__workplace-type").First().InnerText(); err == nil {
		workplaceType = wt
	}
	detail.Remote = ResolveRemote(workplaceType, detail.Description)

	return detail, nil
}

func (s *playwrightDetailSource) readDescription() string {
	// Expand truncated descriptions before reading.
	showMore := s.page.Locator("button[aria-label*='more'], button[data-testid='expandable-text-button']").First()
	if visible, _ := showMore.IsVisible(); visible {
		_ = showMore.Click(playwright.LocatorClickOptions{Force: playwright.Bool(true)})
		time.Sleep(500 * time.Millisecond)
	}

	for _, selector := range []string{".jobs-description__content", "#job-details"} {
		el := s.page.Locator(selector).First()
		if count, _ := el.Count(); count > 0 {
			if text, err := el.InnerText(); err == nil {
				return strings.TrimSpace(text)
			}
		}
	}
	return ""
}

func (s *playwrightDetailSource) readSeniority() string {
	items, err := s.page.Locator(".job-details-jobs-unified-top-card__job-insight, .jobs-unified-top-card__job-insight").All()
	if err != nil {
		return "Unknown"
	}
	for _, item := range items {
		text, err := item.InnerText()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if strings.Contains(strings.ToLower(text), "level") {
			return strings.TrimSpace(strings.ReplaceAll(text, "Seniority level", ""))
		}
	}
	return "Unknown"
}

func (s *playwrightDetailSource) readPostedTime() string {
	items, err := s.page.Locator(".job-details-jobs-unified-top-card__primary-description, span.tvm__text--low-emphasis").All()
	if err != nil {
		return "Unknown"
	}
	for _, item := range items {
		text, err := item.InnerText()
		if err != nil {
			continue
		}
		lower := strings.ToLower(text)
		for _, kw := range []string{"ago", "hours", "days", "weeks", "reposted", "posted"} {
			if strings.Contains(lower, kw) {
				return strings.TrimSpace(text)
			}
		}
	}
	return "Unknown"
}

func (s *playwrightDetailSource) readApplicantCount() int {
	items, err := s.page.Locator(".jobs-unified-top-card__applicant-count, span.tvm__text--low-emphasis, .job-details-jobs-unified-top-card__primary-description").All()
	if err != nil {
		return 0
	}
	for _, item := range items {
		text, err := item.InnerText()
		if err != nil {
			continue
		}
		if !strings.Contains(strings.ToLower(text), "applicant") {
			continue
		}
		if m := applicantRe.FindString(text); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				return n
			}
		}
	}
	return 0
}
