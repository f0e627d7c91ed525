package linkedin

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"go-jobscout-automation/internal/models"
	"go-jobscout-automation/internal/scraper"
)

// fakeListSource replays one response per FetchPage call.
type fakeListSource struct {
	responses []fakeListResponse
	calls     int
}

type fakeListResponse struct {
	postings []models.PostingSummary
	err      error
}

func (s *fakeListSource) FetchPage(string) ([]models.PostingSummary, error) {
	if s.calls >= len(s.responses) {
		return nil, nil
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp.postings, resp.err
}

func posting(id string) models.PostingSummary {
	return models.PostingSummary{PostingID: id, Title: "Data Scientist", Company: "Acme"}
}

func newTestListExtractor(src ListSource, retries int) *ListExtractor {
	return NewListExtractor(src, retries, 0, 0, zap.NewNop().Sugar())
}

func testQuery() models.SearchQuery {
	return models.SearchQuery{Role: "Data Scientist", DateWindow: "r86400"}
}

func TestListExtractorDedupWithinPage(t *testing.T) {
	src := &fakeListSource{responses: []fakeListResponse{
		{postings: []models.PostingSummary{posting("1"), posting("2"), posting("1")}},
	}}
	e := newTestListExtractor(src, 3)

	postings, hasMore, err := e.NextPage(testQuery(), 0)

	assert.NoError(t, err)
	assert.True(t, hasMore)
	assert.Len(t, postings, 2)
}

func TestListExtractorDedupAcrossPages(t *testing.T) {
	src := &fakeListSource{responses: []fakeListResponse{
		{postings: []models.PostingSummary{posting("1"), posting("2")}},
		{postings: []models.PostingSummary{posting("2"), posting("3")}},
	}}
	e := newTestListExtractor(src, 3)

	first, _, err := e.NextPage(testQuery(), 0)
	assert.NoError(t, err)
	assert.Len(t, first, 2)

	second, _, err := e.NextPage(testQuery(), 1)
	assert.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, "3", second[0].PostingID)
}

func TestListExtractorPreservesSeenFlag(t *testing.T) {
	seen := posting("1")
	seen.PreviouslySeen = true
	src := &fakeListSource{responses: []fakeListResponse{
		{postings: []models.PostingSummary{seen, posting("2")}},
	}}
	e := newTestListExtractor(src, 3)

	postings, _, err := e.NextPage(testQuery(), 0)

	assert.NoError(t, err)
	assert.True(t, postings[0].PreviouslySeen)
	assert.False(t, postings[1].PreviouslySeen)
}

func TestListExtractorRetriesTransientFault(t *testing.T) {
	src := &fakeListSource{responses: []fakeListResponse{
		{err: &scraper.ExtractionFault{Op: "locate job cards", Err: fmt.Errorf("stale element")}},
		{err: &scraper.ExtractionFault{Op: "locate job cards", Err: fmt.Errorf("stale element")}},
		{postings: []models.PostingSummary{posting("1")}},
	}}
	e := newTestListExtractor(src, 3)

	postings, hasMore, err := e.NextPage(testQuery(), 0)

	assert.NoError(t, err)
	assert.True(t, hasMore)
	assert.Len(t, postings, 1)
	assert.Equal(t, 3, src.calls)
}

func TestListExtractorDegradedPageAfterRetries(t *testing.T) {
	fault := fakeListResponse{err: &scraper.ExtractionFault{Op: "locate job cards", Err: fmt.Errorf("stale element")}}
	src := &fakeListSource{responses: []fakeListResponse{fault, fault, fault}}
	e := newTestListExtractor(src, 2)

	postings, hasMore, err := e.NextPage(testQuery(), 0)

	assert.NoError(t, err, "a degraded page is not a query abort")
	assert.False(t, hasMore)
	assert.Empty(t, postings)
	assert.Equal(t, 3, src.calls)
}

func TestListExtractorEmptyPageEndsQuery(t *testing.T) {
	src := &fakeListSource{responses: []fakeListResponse{{postings: nil}}}
	e := newTestListExtractor(src, 3)

	postings, hasMore, err := e.NextPage(testQuery(), 0)

	assert.NoError(t, err)
	assert.False(t, hasMore)
	assert.Empty(t, postings)
}

func TestListExtractorSessionLostPropagates(t *testing.T) {
	src := &fakeListSource{responses: []fakeListResponse{
		{err: fmt.Errorf("load results page: %w", scraper.ErrSessionLost)},
	}}
	e := newTestListExtractor(src, 3)

	_, _, err := e.NextPage(testQuery(), 0)

	assert.True(t, errors.Is(err, scraper.ErrSessionLost))
	assert.Equal(t, 1, src.calls, "a lost session must not be retried")
}
