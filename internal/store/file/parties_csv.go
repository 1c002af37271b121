package file

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/openbooks-dev/openbooks/internal/model"
)

const (
	partyNumFields   = 8
	partyColID       = 0
	partyColName     = 1
	partyColKind     = 2
	partyColEmail    = 3
	partyColPhone    = 4
	partyColGSTIN    = 5
	partyColAddress  = 6
	partyColCreditTD = 7
)

var partyHeader = []string{"party_id", "name", "kind", "email", "phone", "gstin", "address", "credit_term_days"}

// ReadParties reads parties.csv.
func ReadParties(r io.Reader) ([]model.Party, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = partyNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading parties CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var parties []model.Party
	for i, rec := range records[1:] {
		p, err := UnmarshalParty(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		parties = append(parties, p)
	}
	return parties, nil
}

// WriteParties writes parties.csv.
func WriteParties(w io.Writer, parties []model.Party) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(partyHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, p := range parties {
		if err := cw.Write(MarshalParty(p)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalParty converts a Party to a CSV row.
func MarshalParty(p model.Party) []string {
	row := make([]string, partyNumFields)
	row[partyColID] = p.ID
	row[partyColName] = p.Name
	row[partyColKind] = string(p.Kind)
	row[partyColEmail] = p.Email
	row[partyColPhone] = p.Phone
	row[partyColGSTIN] = p.GSTIN
	row[partyColAddress] = p.Address
	if p.CreditTermDays != 0 {
		row[partyColCreditTD] = strconv.Itoa(p.CreditTermDays)
	}
	return row
}

// UnmarshalParty converts a CSV row to a Party.
func UnmarshalParty(record []string) (model.Party, error) {
	if len(record) != partyNumFields {
		return model.Party{}, fmt.Errorf("expected %d fields, got %d", partyNumFields, len(record))
	}

	var creditTermDays int
	if record[partyColCreditTD] != "" {
		var err error
		creditTermDays, err = strconv.Atoi(record[partyColCreditTD])
		if err != nil {
			return model.Party{}, fmt.Errorf("parsing credit_term_days %q: %w", record[partyColCreditTD], err)
		}
	}

	return model.Party{
		ID:             record[partyColID],
		Name:           record[partyColName],
		Kind:           model.PartyKind(record[partyColKind]),
		Email:          record[partyColEmail],
		Phone:          record[partyColPhone],
		GSTIN:          record[partyColGSTIN],
		Address:        record[partyColAddress],
		CreditTermDays: creditTermDays,
	}, nil
}
