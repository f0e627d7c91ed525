package linkedin

import (
	"errors"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"go-jobscout-automation/internal/browser"
	"go-jobscout-automation/internal/models"
	"go-jobscout-automation/internal/scraper"
)

// ListSource fetches the raw posting summaries rendered on one search results
// page. The playwright implementation lives in this package; tests substitute
// a fake.
type ListSource interface {
	FetchPage(url string) ([]models.PostingSummary, error)
}

// ListExtractor walks a query's result pages. One extractor per query:
// deduplication by posting id spans all pages the extractor has seen, since
// a card can re-render on scroll or bleed into the next page.
type ListExtractor struct {
	src         ListSource
	pageRetries int
	delayMinMs  int
	delayMaxMs  int
	seen        mapset.Set[string]
	log         *zap.SugaredLogger
}

func NewListExtractor(src ListSource, pageRetries, delayMinMs, delayMaxMs int, log *zap.SugaredLogger) *ListExtractor {
	return &ListExtractor{
		src:         src,
		pageRetries: pageRetries,
		delayMinMs:  delayMinMs,
		delayMaxMs:  delayMaxMs,
		seen:        mapset.NewSet[string](),
		log:         log,
	}
}

// NextPage fetches page `cursor` (zero-indexed) of the query's results and
// returns the postings not yet seen by this extractor, plus whether another
// page is worth fetching. A transient fault retries the same page up to the
// configured bound; after that the page is treated as exhausted with a
// degraded-page warning, never as a query abort.
func (e *ListExtractor) NextPage(query models.SearchQuery, cursor int) ([]models.PostingSummary, bool, error) {
	pageURL := NextPageURL(BuildSearchURL(query), cursor)

	if cursor > 0 {
		browser.RandomDelay(e.delayMinMs, e.delayMaxMs)
	}

	var raw []models.PostingSummary
	var err error
	for attempt := 0; ; attempt++ {
		raw, err = e.src.FetchPage(pageURL)
		if err == nil {
			break
		}
		if errors.Is(err, scraper.ErrSessionLost) {
			return nil, false, err
		}
		if !scraper.IsFault(err) && !scraper.IsTimeout(err) {
			return nil, false, err
		}
		if attempt >= e.pageRetries {
			e.log.Warnw("page degraded after retries, treating as exhausted",
				"role", query.Role, "page", cursor, "error", err)
			return nil, false, nil
		}
		e.log.Debugw("retrying results page", "page", cursor, "attempt", attempt+1, "error", err)
	}

	if len(raw) == 0 {
		return nil, false, nil
	}

	var postings []models.PostingSummary
	for _, p := range raw {
		if p.PostingID == "" {
			continue
		}
		if !e.seen.Add(p.PostingID) {
			continue
		}
		postings = append(postings, p)
	}

	e.log.Infow("results page extracted",
		"role", query.Role, "page", cursor, "cards", len(raw), "new", len(postings))
	return postings, true, nil
}

// playwrightListSource drives the live search results page.
type playwrightListSource struct {
	page playwright.Page
}

// NewListSource wraps a live page as a ListSource.
func NewListSource(page playwright.Page) ListSource {
	return &playwrightListSource{page: page}
}

func (s *playwrightListSource) FetchPage(url string) ([]models.PostingSummary, error) {
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return nil, classifyPageError("load results page", err)
	}

	if _, err := s.page.WaitForSelector(".scaffold-layout__list, ul.jobs-search__results-list", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(15000),
	}); err != nil {
		browser.CaptureScreenshot(s.page, "results-list-timeout")
		return nil, &scraper.ExtractionTimeout{Op: "wait for results list", Err: err}
	}

	// Lazy-loaded cards only enter the DOM on scroll.
	if err := browser.HumanScroll(s.page); err != nil {
		return nil, classifyPageError("scroll results list", err)
	}

	cards, err := s.page.Locator("li[data-occludable-job-id], .job-card-container").All()
	if err != nil {
		return nil, classifyPageError("locate job cards", err)
	}

	var postings []models.PostingSummary
	for _, card := range cards {
		summary, err := extractCard(card)
		if err != nil {
			// One unreadable card does not fail the page.
			continue
		}
		if summary.PostingID != "" {
			postings = append(postings, summary)
		}
	}
	return postings, nil
}

func extractCard(card playwright.Locator) (models.PostingSummary, error) {
	var summary models.PostingSummary

	if id, err := card.GetAttribute("data-occludable-job-id"); err == nil && id != "" {
		summary.PostingID = id
	} else if id, err := card.GetAttribute("data-job-id"); err == nil && id != "" {
		summary.PostingID = id
	}

	link := card.Locator("a.job-card-container__link, a[href*='/jobs/view/']").First()
	href, _ := link.GetAttribute("href")
	if summary.PostingID == "" && strings.Contains(href, "/jobs/view/") {
		rest := strings.SplitN(href, "/jobs/view/", 2)[1]
		summary.PostingID = strings.FieldsFunc(rest, func(r rune) bool {
			return r == '/' || r == '?'
		})[0]
	}
	if summary.PostingID == "" {
		return summary, fmt.Errorf("no posting id on card")
	}

	if title, err := link.InnerText(); err == nil {
		summary.Title = strings.TrimSpace(title)
	}
	if company, err := card.Locator(".job-card-container__company-name, .artdeco-entity-lockup__subtitle").First().InnerText(); err == nil {
		summary.Company = strings.TrimSpace(company)
	}
	if location, err := card.Locator(".job-card-container__metadata-item, .artdeco-entity-lockup__caption").First().InnerText(); err == nil {
		summary.Location = strings.TrimSpace(location)
	}

	summary.PreviouslySeen = cardIsViewed(card, link)
	return summary, nil
}

// cardIsViewed reads the source's own viewed marker. The pipeline keeps no
// seen-set of its own; this flag is the single source of truth.
func cardIsViewed(card, link playwright.Locator) bool {
	cardClasses, _ := card.GetAttribute("class")
	linkClasses, _ := link.GetAttribute("class")
	for _, marker := range []string{
		"job-card-container--visited",
		"job-card-list--visited",
		"job-card-container--is-viewed",
	} {
		if strings.Contains(cardClasses, marker) || strings.Contains(linkClasses, marker) {
			return true
		}
	}

	if v, _ := card.GetAttribute("data-viewed"); strings.EqualFold(v, "true") {
		return true
	}

	text, _ := card.InnerText()
	return strings.Contains(strings.ToLower(text), "viewed")
}
