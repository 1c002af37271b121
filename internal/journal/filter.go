package journal

import (
	"strings"
	"time"

	"github.com/openbooks-dev/openbooks/internal/model"
)

// FilterByDateRange returns the entries dated within [from, to]
// inclusive. A zero bound leaves that side open. The input is not
// modified; filtering twice with the same bounds yields the same set.
func FilterByDateRange(entries []model.JournalEntry, from, to time.Time) []model.JournalEntry {
	var out []model.JournalEntry
	for _, e := range entries {
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && e.Date.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// AccountNamer resolves an account ID to a display name.
type AccountNamer interface {
	Name(id int) string
}

// Search returns entries matching a case-insensitive substring query
// against reference, narration, line descriptions, and account names.
// Lines referencing deleted accounts still match via the placeholder
// label, so historical activity stays reachable.
func Search(entries []model.JournalEntry, names AccountNamer, query string) []model.JournalEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}

	var out []model.JournalEntry
	for _, e := range entries {
		if matchesQuery(e, names, q) {
			out = append(out, e)
		}
	}
	return out
}

func matchesQuery(e model.JournalEntry, names AccountNamer, q string) bool {
	if strings.Contains(strings.ToLower(e.Reference), q) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Narration), q) {
		return true
	}
	for _, line := range e.Lines {
		if strings.Contains(strings.ToLower(line.Description), q) {
			return true
		}
		if strings.Contains(strings.ToLower(names.Name(line.AccountID)), q) {
			return true
		}
	}
	return false
}
