package model

import "github.com/shopspring/decimal"

// MovementType classifies a movement for display.
type MovementType string

const (
	MovementDeposit    MovementType = "deposit"
	MovementWithdrawal MovementType = "withdrawal"
)

// Movement is one signed transaction amount: positive = deposit, negative = withdrawal.
type Movement = decimal.Decimal

// TypeOf classifies a movement. Zero counts as a withdrawal.
func TypeOf(m Movement) MovementType {
	if m.IsPositive() {
		return MovementDeposit
	}
	return MovementWithdrawal
}

// Account is one bank customer.
type Account struct {
	Owner        string
	UserName     string // derived from Owner when the store is built
	Movements    []Movement
	InterestRate decimal.Decimal // percent
	PIN          int
}

// Append records a new movement at the end of the history.
func (a *Account) Append(m Movement) {
	a.Movements = append(a.Movements, m)
}
