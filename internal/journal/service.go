package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/id"
	"github.com/openbooks-dev/openbooks/internal/model"
	"github.com/openbooks-dev/openbooks/internal/store"
)

// Service provides business logic for journal entries.
type Service struct {
	repo     store.Repository
	accounts AccountChecker
}

// NewService creates a journal Service.
func NewService(repo store.Repository, accounts AccountChecker) *Service {
	return &Service{repo: repo, accounts: accounts}
}

// LineParams is one line of an entry being posted.
type LineParams struct {
	AccountID   int
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// PostParams holds parameters for posting a journal entry.
type PostParams struct {
	Date      time.Time
	Reference string
	Narration string
	Lines     []LineParams
}

// Post validates and appends a journal entry. Nothing is written when
// validation fails. Returns the entry ID.
func (s *Service) Post(params PostParams) (string, error) {
	seq, err := s.NextEntrySeq(params.Date.Year(), int(params.Date.Month()))
	if err != nil {
		return "", err
	}

	entryID := id.FormatEntryID(params.Date.Year(), int(params.Date.Month()), seq)
	entry := model.JournalEntry{
		ID:        entryID,
		Date:      params.Date,
		Reference: params.Reference,
		Narration: params.Narration,
	}
	for i, lp := range params.Lines {
		entry.Lines = append(entry.Lines, model.JournalLine{
			ID:          id.FormatLineID(entryID, i),
			AccountID:   lp.AccountID,
			Description: lp.Description,
			Debit:       lp.Debit,
			Credit:      lp.Credit,
		})
	}

	if verrs := ValidateEntry(entry, s.accounts); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return "", fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	if err := s.repo.AppendEntry(entry); err != nil {
		return "", fmt.Errorf("appending entry: %w", err)
	}
	return entryID, nil
}

// Delete removes an entry. Entries have no edit path; correcting a
// mistake means deleting and re-posting.
func (s *Service) Delete(entryID string) error {
	if err := s.repo.DeleteEntry(entryID); err != nil {
		return fmt.Errorf("deleting entry %s: %w", entryID, err)
	}
	return nil
}

// All returns every journal entry.
func (s *Service) All() ([]model.JournalEntry, error) {
	return s.repo.ListEntries()
}

// NextEntrySeq returns the next available sequence number for a month.
func (s *Service) NextEntrySeq(year, month int) (int, error) {
	entries, err := s.repo.ListEntries()
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, e := range entries {
		y, m, seq, err := id.ParseEntryID(e.ID)
		if err != nil || y != year || m != month {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}
