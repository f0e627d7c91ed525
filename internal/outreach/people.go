package outreach

import (
	"net/url"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-jobscout-automation/internal/browser"
)

// PersonCard is one result card from a people search page.
type PersonCard struct {
	Name       string
	Title      string
	ProfileURL string
	CanConnect bool
	CanMessage bool
}

// PeoplePage drives one people-search tab. The playwright implementation
// lives below; tests substitute a fake.
type PeoplePage interface {
	Search(query string) error
	ScrapePage() ([]PersonCard, error)
	// Connect clicks the connect affordance of the i-th card from the last
	// ScrapePage call.
	Connect(i int) error
	// NextPage advances to the next results page, reporting false when there
	// is none.
	NextPage() (bool, error)
}

const peopleSearchURL = "https://www.linkedin.com/search/results/people/?keywords="

type playwrightPeoplePage struct {
	page  playwright.Page
	cards []playwright.Locator
}

// NewPeoplePage wraps a live tab as a PeoplePage.
func NewPeoplePage(page playwright.Page) PeoplePage {
	return &playwrightPeoplePage{page: page}
}

func (p *playwrightPeoplePage) Search(query string) error {
	_, err := p.page.Goto(peopleSearchURL+url.QueryEscape(query), playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	})
	return err
}

func (p *playwrightPeoplePage) ScrapePage() ([]PersonCard, error) {
	if _, err := p.page.WaitForSelector(
		"[data-view-name='people-search-result'], li.reusable-search__result-container, div.entity-result",
		playwright.PageWaitForSelectorOptions{Timeout: playwright.Float(15000)},
	); err != nil {
		// A query with no hits renders no cards; treat as an empty page.
		return nil, nil
	}

	if _, err := p.page.Evaluate("window.scrollTo(0, document.body.scrollHeight)"); err == nil {
		time.Sleep(time.Second)
	}

	locators, err := p.page.Locator(
		"[data-view-name='people-search-result'], li.reusable-search__result-container, div.entity-result",
	).All()
	if err != nil {
		return nil, err
	}

	p.cards = locators
	people := make([]PersonCard, 0, len(locators))
	for _, card := range locators {
		people = append(people, extractPerson(card))
	}
	return people, nil
}

func extractPerson(card playwright.Locator) PersonCard {
	var person PersonCard

	link := card.Locator("a[data-view-name='search-result-lockup-title'], a.app-aware-link").First()
	if href, err := link.GetAttribute("href"); err == nil {
		person.ProfileURL = strings.SplitN(href, "?", 2)[0]
	}
	if name, err := link.InnerText(); err == nil {
		person.Name = strings.TrimSpace(name)
	}

	if title, err := card.Locator(
		"p[data-view-name='search-result-subtitle'], div.entity-result__primary-subtitle",
	).First().InnerText(); err == nil {
		title = strings.TrimSpace(title)
		if !strings.Contains(strings.ToLower(title), "mutual connection") {
			person.Title = title
		}
	}

	if n, err := card.Locator("button:has-text('Connect')").Count(); err == nil && n > 0 {
		person.CanConnect = true
	}
	if n, err := card.Locator("button:has-text('Message')").Count(); err == nil && n > 0 {
		person.CanMessage = true
	}
	return person
}

func (p *playwrightPeoplePage) Connect(i int) error {
	if i < 0 || i >= len(p.cards) {
		return nil
	}
	if err := p.cards[i].Locator("button:has-text('Connect')").First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(5000),
	}); err != nil {
		return err
	}

	// LinkedIn usually asks whether to add a note; send without one.
	sendBtn := p.page.Locator("button[aria-label='Send without a note'], button[aria-label='Send now'], button:has-text('Send without a note')").First()
	if visible, _ := sendBtn.IsVisible(); visible {
		if err := sendBtn.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(5000)}); err != nil {
			return err
		}
	}
	browser.RandomDelay(500, 1200)
	return nil
}

func (p *playwrightPeoplePage) NextPage() (bool, error) {
	btn := p.page.Locator("button[aria-label='Next'], button.artdeco-pagination__button--next").First()
	if visible, _ := btn.IsVisible(); !visible {
		return false, nil
	}
	if disabled, _ := btn.IsDisabled(); disabled {
		return false, nil
	}
	if err := btn.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(5000)}); err != nil {
		return false, err
	}
	time.Sleep(time.Second)
	return true, nil
}
