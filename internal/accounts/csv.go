package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankist-dev/bankist/internal/model"
)

// Header is the CSV header for accounts.csv.
const Header = "owner,interest_rate,pin,movements"

const (
	numFields    = 4
	colOwner     = 0
	colRate      = 1
	colPIN       = 2
	colMovements = 3

	movementSep = ";"
)

// ReadAccounts reads accounts.csv. User names are not part of the file.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

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

// WriteAccounts writes accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
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
	movs := make([]string, len(acct.Movements))
	for i, m := range acct.Movements {
		movs[i] = m.String()
	}

	row := make([]string, numFields)
	row[colOwner] = acct.Owner
	row[colRate] = acct.InterestRate.String()
	row[colPIN] = strconv.Itoa(acct.PIN)
	row[colMovements] = strings.Join(movs, movementSep)
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	rate, err := decimal.NewFromString(record[colRate])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing interest_rate %q: %w", record[colRate], err)
	}

	pin, err := strconv.Atoi(record[colPIN])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing pin %q: %w", record[colPIN], err)
	}

	var movs []model.Movement
	if record[colMovements] != "" {
		for _, field := range strings.Split(record[colMovements], movementSep) {
			m, err := decimal.NewFromString(strings.TrimSpace(field))
			if err != nil {
				return model.Account{}, fmt.Errorf("parsing movement %q: %w", field, err)
			}
			movs = append(movs, m)
		}
	}

	return model.Account{
		Owner:        record[colOwner],
		InterestRate: rate,
		PIN:          pin,
		Movements:    movs,
	}, nil
}
