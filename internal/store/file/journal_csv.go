package file

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/model"
)

// JournalHeader is the CSV header for journal.csv.
const JournalHeader = "line_id,date,reference,narration,account_id,description,debit,credit"

const (
	jnlNumFields    = 8
	jnlDateFormat   = "2006-01-02"
	jnlColLineID    = 0
	jnlColDate      = 1
	jnlColReference = 2
	jnlColNarration = 3
	jnlColAcctID    = 4
	jnlColDesc      = 5
	jnlColDebit     = 6
	jnlColCredit    = 7
)

// journalRow is the flattened on-disk form: one row per line, entry
// fields repeated on each of its lines.
type journalRow struct {
	Line      model.JournalLine
	Date      time.Time
	Reference string
	Narration string
}

// ReadJournalRows reads all rows from a journal.csv reader.
func ReadJournalRows(r io.Reader) ([]journalRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = jnlNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var rows []journalRow
	for i, rec := range records[1:] {
		row, err := unmarshalJournalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteJournalRows writes entries to a journal.csv writer (including header).
func WriteJournalRows(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(JournalHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range entries {
		for _, line := range e.Lines {
			if err := cw.Write(marshalJournalRow(e, line)); err != nil {
				return fmt.Errorf("writing entry %s: %w", e.ID, err)
			}
		}
	}
	return cw.Error()
}

// AppendJournalEntry appends one entry's rows to an existing journal.csv
// writer (no header).
func AppendJournalEntry(w io.Writer, e model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for _, line := range e.Lines {
		if err := cw.Write(marshalJournalRow(e, line)); err != nil {
			return fmt.Errorf("writing entry %s: %w", e.ID, err)
		}
	}
	return cw.Error()
}

func marshalJournalRow(e model.JournalEntry, line model.JournalLine) []string {
	row := make([]string, jnlNumFields)
	row[jnlColLineID] = line.ID
	row[jnlColDate] = e.Date.Format(jnlDateFormat)
	row[jnlColReference] = e.Reference
	row[jnlColNarration] = e.Narration
	row[jnlColAcctID] = strconv.Itoa(line.AccountID)
	row[jnlColDesc] = line.Description

	if !line.Debit.IsZero() {
		row[jnlColDebit] = line.Debit.StringFixed(2)
	}
	if !line.Credit.IsZero() {
		row[jnlColCredit] = line.Credit.StringFixed(2)
	}
	return row
}

func unmarshalJournalRow(record []string) (journalRow, error) {
	if len(record) != jnlNumFields {
		return journalRow{}, fmt.Errorf("expected %d fields, got %d", jnlNumFields, len(record))
	}

	date, err := time.Parse(jnlDateFormat, record[jnlColDate])
	if err != nil {
		return journalRow{}, fmt.Errorf("parsing date %q: %w", record[jnlColDate], err)
	}

	accountID, err := strconv.Atoi(record[jnlColAcctID])
	if err != nil {
		return journalRow{}, fmt.Errorf("parsing account_id %q: %w", record[jnlColAcctID], err)
	}

	var debit, credit decimal.Decimal
	if record[jnlColDebit] != "" {
		debit, err = decimal.NewFromString(record[jnlColDebit])
		if err != nil {
			return journalRow{}, fmt.Errorf("parsing debit %q: %w", record[jnlColDebit], err)
		}
	}
	if record[jnlColCredit] != "" {
		credit, err = decimal.NewFromString(record[jnlColCredit])
		if err != nil {
			return journalRow{}, fmt.Errorf("parsing credit %q: %w", record[jnlColCredit], err)
		}
	}

	return journalRow{
		Line: model.JournalLine{
			ID:          record[jnlColLineID],
			AccountID:   accountID,
			Description: record[jnlColDesc],
			Debit:       debit,
			Credit:      credit,
		},
		Date:      date,
		Reference: record[jnlColReference],
		Narration: record[jnlColNarration],
	}, nil
}

// GroupRows folds flat journal rows back into entries, preserving the
// order in which entry IDs first appear.
func GroupRows(rows []journalRow) []model.JournalEntry {
	byID := make(map[string]*model.JournalEntry)
	var order []string
	for _, row := range rows {
		group := row.Line.EntryGroup()
		e, ok := byID[group]
		if !ok {
			e = &model.JournalEntry{
				ID:        group,
				Date:      row.Date,
				Reference: row.Reference,
				Narration: row.Narration,
			}
			byID[group] = e
			order = append(order, group)
		}
		e.Lines = append(e.Lines, row.Line)
	}

	entries := make([]model.JournalEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, *byID[id])
	}
	return entries
}
