package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeStore struct {
	blocked  []string
	patterns []string
	appended []string
}

func (s *fakeStore) Load() ([]string, []string, error) {
	return s.blocked, s.patterns, nil
}

func (s *fakeStore) Append(company string) error {
	s.appended = append(s.appended, company)
	return nil
}

func newTestBlocklist(t *testing.T, store *fakeStore) *Blocklist {
	t.Helper()
	b, err := NewBlocklist(store, zap.NewNop().Sugar())
	assert.NoError(t, err)
	return b
}

func TestBlocklistExactMatch(t *testing.T) {
	b := newTestBlocklist(t, &fakeStore{blocked: []string{"Lensa", "CyberCoders"}})

	assert.True(t, b.IsBlocked("Lensa"))
	assert.True(t, b.IsBlocked("lensa"))
	assert.True(t, b.IsBlocked("  LENSA  "))
	assert.False(t, b.IsBlocked("Lensa Inc"))
	assert.False(t, b.IsBlocked(""))
}

func TestBlocklistWildcardPattern(t *testing.T) {
	b := newTestBlocklist(t, &fakeStore{patterns: []string{"*staffing*", "Jobot*"}})

	assert.True(t, b.IsBlocked("Acme Staffing Group"))
	assert.True(t, b.IsBlocked("Jobot"))
	assert.True(t, b.IsBlocked("Jobot Consulting"))
	assert.False(t, b.IsBlocked("Acme Corp"))
}

func TestBlocklistIgnoresInvalidPattern(t *testing.T) {
	b := newTestBlocklist(t, &fakeStore{patterns: []string{"[bad", "*recruiting*"}})

	assert.True(t, b.IsBlocked("Best Recruiting LLC"))
	assert.False(t, b.IsBlocked("Acme Corp"))
}

func TestBlocklistAdd(t *testing.T) {
	store := &fakeStore{}
	b := newTestBlocklist(t, store)

	assert.True(t, b.Add("Staffing Inc"))
	assert.True(t, b.IsBlocked("staffing inc"))
	assert.Equal(t, []string{"Staffing Inc"}, store.appended)

	// Adding again is a no-op.
	assert.False(t, b.Add("Staffing Inc"))
	assert.False(t, b.Add("STAFFING INC"))
	assert.Len(t, store.appended, 1)

	assert.False(t, b.Add("   "))
}
