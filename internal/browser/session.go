package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Session is the authenticated browsing session handed to the pipeline.
// It owns the main page (search results) and at most one secondary page
// (people search). The secondary page must be closed before the next posting
// is processed; OpenSecondary/CloseSecondary enforce that discipline.
type Session struct {
	ctx       playwright.BrowserContext
	main      playwright.Page
	secondary playwright.Page
}

func NewSession(ctx playwright.BrowserContext) (*Session, error) {
	page, err := ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create main page: %w", err)
	}
	return &Session{ctx: ctx, main: page}, nil
}

// CurrentPage returns the main page.
func (s *Session) CurrentPage() playwright.Page {
	return s.main
}

// OpenSecondary opens a dedicated tab in the same context. Only one
// secondary tab may exist at a time.
func (s *Session) OpenSecondary() (playwright.Page, error) {
	if s.secondary != nil {
		return nil, fmt.Errorf("secondary page already open")
	}
	page, err := s.ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not open secondary page: %w", err)
	}
	s.secondary = page
	return page, nil
}

// CloseSecondary closes the secondary tab (if any) and restores focus to the
// main page. Safe to call on every exit path.
func (s *Session) CloseSecondary() {
	if s.secondary != nil {
		_ = s.secondary.Close()
		s.secondary = nil
	}
	_ = s.main.BringToFront()
}

// Close tears down the whole context.
func (s *Session) Close() error {
	s.CloseSecondary()
	return s.ctx.Close()
}
