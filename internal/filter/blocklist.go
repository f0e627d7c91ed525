package filter

import (
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// BlocklistStore persists blocklist entries. Append-only; the file format is
// owned by the store.
type BlocklistStore interface {
	Load() (blocked, patterns []string, err error)
	Append(company string) error
}

// Blocklist rejects companies by exact name or wildcard pattern. Entries grow
// monotonically: companies flagged as staffing firms are appended and never
// removed. Matching is case-insensitive; patterns use `*` as a
// multi-character glob.
type Blocklist struct {
	mu       sync.Mutex
	store    BlocklistStore
	blocked  []string
	patterns []*regexp.Regexp
	fold     cases.Caser
	log      *zap.SugaredLogger
}

func NewBlocklist(store BlocklistStore, log *zap.SugaredLogger) (*Blocklist, error) {
	blocked, patterns, err := store.Load()
	if err != nil {
		return nil, err
	}

	b := &Blocklist{
		store:   store,
		blocked: blocked,
		fold:    cases.Fold(),
		log:     log,
	}
	for _, p := range patterns {
		re, err := compilePattern(p)
		if err != nil {
			log.Debugw("ignoring invalid blocklist pattern", "pattern", p, "error", err)
			continue
		}
		b.patterns = append(b.patterns, re)
	}
	return b, nil
}

// compilePattern converts a simple `*` wildcard to a case-insensitive,
// unanchored regexp. Raw regular expressions in the pattern file still work.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + strings.ReplaceAll(pattern, "*", ".*"))
}

// IsBlocked reports whether the company matches an exact entry or a pattern.
func (b *Blocklist) IsBlocked(company string) bool {
	name := strings.TrimSpace(company)
	if name == "" {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	folded := b.fold.String(name)
	for _, item := range b.blocked {
		if b.fold.String(item) == folded {
			return true
		}
	}
	for _, re := range b.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Add appends a company and persists it. Returns true when the entry is new.
func (b *Blocklist) Add(company string) bool {
	name := strings.TrimSpace(company)
	if name == "" {
		return false
	}
	if b.IsBlocked(name) {
		return false
	}

	b.mu.Lock()
	b.blocked = append(b.blocked, name)
	b.mu.Unlock()

	if err := b.store.Append(name); err != nil {
		b.log.Warnw("could not persist blocklist entry", "company", name, "error", err)
	}
	b.log.Infow("company added to blocklist", "company", name)
	return true
}
