package outreach

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"go-jobscout-automation/internal/models"
)

// fakePeoplePage serves scripted result pages and records connect clicks.
type fakePeoplePage struct {
	pages      [][]PersonCard
	pageIdx    int
	searchErr  error
	scrapeErr  error
	connectErr map[string]error
	connected  []string
	searched   string
}

func (p *fakePeoplePage) Search(query string) error {
	p.searched = query
	return p.searchErr
}

func (p *fakePeoplePage) ScrapePage() ([]PersonCard, error) {
	if p.scrapeErr != nil {
		return nil, p.scrapeErr
	}
	if p.pageIdx >= len(p.pages) {
		return nil, nil
	}
	return p.pages[p.pageIdx], nil
}

func (p *fakePeoplePage) Connect(i int) error {
	card := p.pages[p.pageIdx][i]
	if err, ok := p.connectErr[card.Name]; ok {
		return err
	}
	p.connected = append(p.connected, card.Name)
	return nil
}

func (p *fakePeoplePage) NextPage() (bool, error) {
	if p.pageIdx+1 >= len(p.pages) {
		return false, nil
	}
	p.pageIdx++
	return true, nil
}

type fakeOutreachSession struct {
	page    *fakePeoplePage
	openErr error
	opened  int
	closed  int
}

func (s *fakeOutreachSession) OpenSecondary() (PeoplePage, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	s.opened++
	return s.page, nil
}

func (s *fakeOutreachSession) CloseSecondary() { s.closed++ }

func person(name, title string, canConnect, canMessage bool) PersonCard {
	return PersonCard{
		Name:       name,
		Title:      title,
		ProfileURL: "https://www.linkedin.com/in/" + name,
		CanConnect: canConnect,
		CanMessage: canMessage,
	}
}

func newTestCoordinator(session Session, maxPages int) *Coordinator {
	return NewCoordinator(session, maxPages, 0, 0, zap.NewNop().Sugar())
}

func TestCoordinatorConnectsRegardlessOfMatch(t *testing.T) {
	page := &fakePeoplePage{pages: [][]PersonCard{{
		person("alice", "Senior Data Scientist", true, false),
		person("bob", "Machine Learning Engineer", true, false),
		person("carol", "Data Science Lead", false, true),
		person("dave", "Recruiter", false, false),
	}}}
	session := &fakeOutreachSession{page: page}

	records, summary := newTestCoordinator(session, 3).Run("Data Scientist", "Acme")

	assert.Equal(t, "Data Scientist at Acme", page.searched)
	assert.Len(t, records, 4)

	assert.Equal(t, models.ActionConnectSent, records[0].Action)
	assert.True(t, records[0].RoleMatched)
	assert.Equal(t, models.ActionConnectSent, records[1].Action)
	assert.False(t, records[1].RoleMatched, "connect is still sent for non-matching titles")
	assert.Equal(t, models.ActionMessageAvailable, records[2].Action)
	assert.Equal(t, models.ActionNone, records[3].Action)

	assert.Equal(t, 1, summary.ConnectsMatch)
	assert.Equal(t, 1, summary.ConnectsNonMatch)
	assert.Equal(t, 1, summary.MessageAvailable)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, []string{"alice", "bob"}, page.connected)
}

func TestCoordinatorNeverExceedsPageBound(t *testing.T) {
	pages := make([][]PersonCard, 5)
	for i := range pages {
		pages[i] = []PersonCard{person(fmt.Sprintf("p%d", i), "Data Scientist", true, false)}
	}
	session := &fakeOutreachSession{page: &fakePeoplePage{pages: pages}}

	_, summary := newTestCoordinator(session, 3).Run("Data Scientist", "Acme")

	assert.Equal(t, 3, summary.PagesProcessed)
	assert.Equal(t, 1, session.closed)
}

func TestCoordinatorStopsOnZeroNewPeople(t *testing.T) {
	repeat := person("alice", "Data Scientist", true, false)
	session := &fakeOutreachSession{page: &fakePeoplePage{pages: [][]PersonCard{
		{repeat},
		{repeat},
		{person("bob", "Data Scientist", true, false)},
	}}}

	records, summary := newTestCoordinator(session, 3).Run("Data Scientist", "Acme")

	assert.Len(t, records, 1, "a page of already-seen people stops the walk")
	assert.Equal(t, 2, summary.PagesProcessed)
}

func TestCoordinatorRestoresContextOnFailure(t *testing.T) {
	page := &fakePeoplePage{scrapeErr: fmt.Errorf("results pane detached")}
	session := &fakeOutreachSession{page: page}

	records, summary := newTestCoordinator(session, 3).Run("Data Scientist", "Acme")

	assert.Empty(t, records)
	assert.Equal(t, 0, summary.PagesProcessed)
	assert.Equal(t, 1, session.closed, "secondary context must close on the failure path too")
}

func TestCoordinatorContinuesPastPersonFailure(t *testing.T) {
	page := &fakePeoplePage{
		pages: [][]PersonCard{{
			person("alice", "Data Scientist", true, false),
			person("bob", "Data Scientist", true, false),
		}},
		connectErr: map[string]error{"alice": fmt.Errorf("invite dialog vanished")},
	}
	session := &fakeOutreachSession{page: page}

	records, summary := newTestCoordinator(session, 3).Run("Data Scientist", "Acme")

	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.ConnectsMatch)
	assert.Len(t, records, 1)
	assert.Equal(t, "bob", records[0].PersonName)
}

func TestCoordinatorSessionOpenFailureIsNotFatal(t *testing.T) {
	session := &fakeOutreachSession{openErr: fmt.Errorf("tab limit reached")}

	records, summary := newTestCoordinator(session, 3).Run("Data Scientist", "Acme")

	assert.Empty(t, records)
	assert.Equal(t, models.OutreachSummary{}, summary)
}

func TestRoleMatch(t *testing.T) {
	tests := []struct {
		title string
		role  string
		want  bool
	}{
		{title: "Senior Data Scientist", role: "Data Scientist", want: true},
		{title: "Machine Learning Engineer", role: "Data Scientist", want: false},
		{title: "Director of Data Science", role: "Data Scientist", want: true},
		{title: "AI Scientist", role: "Data Scientist", want: false},
		{title: "data scientist ii", role: "Data Scientist", want: true},
		{title: "", role: "Data Scientist", want: false},
		{title: "Data Scientist", role: "", want: false},
		{title: "Software Engineer, Payments", role: "Software Engineer", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.title+"/"+tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleMatch(tt.title, tt.role))
		})
	}
}
