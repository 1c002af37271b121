package file

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/openbooks-dev/openbooks/internal/model"
)

const (
	acctNumFields = 6
	acctColID     = 0
	acctColCode   = 1
	acctColName   = 2
	acctColType   = 3
	acctColDesc   = 4
	acctColSystem = 5
)

var acctHeader = []string{"account_id", "code", "account_name", "account_type", "description", "system"}

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = acctNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(acctHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, acctNumFields)
	row[acctColID] = strconv.Itoa(acct.ID)
	row[acctColCode] = acct.Code
	row[acctColName] = acct.Name
	row[acctColType] = string(acct.Type)
	row[acctColDesc] = acct.Description
	if acct.System {
		row[acctColSystem] = "true"
	}
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != acctNumFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", acctNumFields, len(record))
	}

	id, err := strconv.Atoi(record[acctColID])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing account_id %q: %w", record[acctColID], err)
	}

	return model.Account{
		ID:          id,
		Code:        record[acctColCode],
		Name:        record[acctColName],
		Type:        model.AccountType(record[acctColType]),
		Description: record[acctColDesc],
		System:      record[acctColSystem] == "true",
	}, nil
}
