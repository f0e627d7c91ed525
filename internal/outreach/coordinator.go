package outreach

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"go-jobscout-automation/internal/browser"
	"go-jobscout-automation/internal/models"
)

// Session is the scoped secondary-tab contract the coordinator needs. The
// tab is always closed and focus restored on every exit path.
type Session interface {
	OpenSecondary() (PeoplePage, error)
	CloseSecondary()
}

type browserSession struct {
	s *browser.Session
}

// NewSession adapts a live browser session for the coordinator.
func NewSession(s *browser.Session) Session {
	return &browserSession{s: s}
}

func (b *browserSession) OpenSecondary() (PeoplePage, error) {
	page, err := b.s.OpenSecondary()
	if err != nil {
		return nil, err
	}
	return NewPeoplePage(page), nil
}

func (b *browserSession) CloseSecondary() { b.s.CloseSecondary() }

// Coordinator runs people outreach for one accepted posting: search
// "<role> at <company>", walk up to maxPages result pages, connect with each
// person that offers a connect affordance and record message availability
// without ever sending one.
type Coordinator struct {
	session    Session
	maxPages   int
	delayMinMs int
	delayMaxMs int
	log        *zap.SugaredLogger
}

func NewCoordinator(session Session, maxPages, delayMinMs, delayMaxMs int, log *zap.SugaredLogger) *Coordinator {
	if maxPages <= 0 {
		maxPages = 3
	}
	return &Coordinator{
		session:    session,
		maxPages:   maxPages,
		delayMinMs: delayMinMs,
		delayMaxMs: delayMaxMs,
		log:        log,
	}
}

// Run performs outreach for one role/company pair. An empty record list is a
// valid outcome, never an error; person-level failures are counted and
// skipped.
func (c *Coordinator) Run(role, company string) ([]models.OutreachRecord, models.OutreachSummary) {
	var records []models.OutreachRecord
	var summary models.OutreachSummary

	query := strings.TrimSpace(role + " at " + company)
	c.log.Infow("starting outreach", "query", query)

	page, err := c.session.OpenSecondary()
	if err != nil {
		c.log.Warnw("could not open people search tab", "error", err)
		return records, summary
	}
	defer c.session.CloseSecondary()

	if err := page.Search(query); err != nil {
		c.log.Warnw("people search failed", "query", query, "error", err)
		return records, summary
	}

	seen := mapset.NewSet[string]()
	for pageNum := 1; pageNum <= c.maxPages; pageNum++ {
		people, err := page.ScrapePage()
		if err != nil {
			c.log.Warnw("could not scrape people page", "page", pageNum, "error", err)
			break
		}
		summary.PagesProcessed++

		newPeople := 0
		for i, person := range people {
			key := person.ProfileURL
			if key == "" {
				key = person.Name + "|" + person.Title
			}
			if !seen.Add(key) {
				continue
			}
			newPeople++

			record := models.OutreachRecord{
				PersonName:  person.Name,
				PersonTitle: person.Title,
				ProfileURL:  person.ProfileURL,
				RoleMatched: RoleMatch(person.Title, role),
				Action:      models.ActionNone,
				PageNumber:  pageNum,
			}

			switch {
			case person.CanConnect:
				// Connect regardless of role match; the match flag only
				// feeds the record and counters.
				if err := page.Connect(i); err != nil {
					summary.Failed++
					c.log.Warnw("connect failed, moving on",
						"person", person.Name, "page", pageNum, "error", err)
					continue
				}
				record.Action = models.ActionConnectSent
				if record.RoleMatched {
					summary.ConnectsMatch++
				} else {
					summary.ConnectsNonMatch++
				}
			case person.CanMessage:
				// Availability only; messages are never sent here.
				record.Action = models.ActionMessageAvailable
				summary.MessageAvailable++
			default:
				summary.Skipped++
			}

			records = append(records, record)
			browser.RandomDelay(c.delayMinMs, c.delayMaxMs)
		}

		if newPeople == 0 {
			c.log.Infow("no new people on page, stopping", "page", pageNum)
			break
		}
		if pageNum == c.maxPages {
			break
		}
		more, err := page.NextPage()
		if err != nil {
			c.log.Warnw("could not advance people page", "page", pageNum, "error", err)
			break
		}
		if !more {
			break
		}
	}

	c.log.Infow("outreach complete",
		"query", query,
		"pages", summary.PagesProcessed,
		"connects_match", summary.ConnectsMatch,
		"connects_non_match", summary.ConnectsNonMatch,
		"message_available", summary.MessageAvailable,
		"skipped", summary.Skipped,
		"failed", summary.Failed)
	return records, summary
}

// RoleMatch reports whether a person's title contains the queried role phrase
// as a case-insensitive substring. Deliberately strict: "data scientist"
// matches "Senior Data Scientist" but not "Machine Learning Engineer". The
// one allowed variant folds "scientist" to "science" so titles like
// "Director of Data Science" still match.
func RoleMatch(title, role string) bool {
	title = strings.ToLower(strings.TrimSpace(title))
	role = strings.ToLower(strings.TrimSpace(role))
	if title == "" || role == "" {
		return false
	}
	if strings.Contains(title, role) {
		return true
	}
	if strings.Contains(role, "scientist") {
		return strings.Contains(title, strings.ReplaceAll(role, "scientist", "science"))
	}
	return false
}
