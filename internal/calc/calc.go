// Package calc derives display values from an account's movement history.
package calc

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/bankist-dev/bankist/internal/model"
)

// DefaultInterestFloor is the smallest per-deposit interest that is credited.
var DefaultInterestFloor = decimal.NewFromInt(1)

var hundred = decimal.NewFromInt(100)

// Summary is the (income, expense, interest) triple of an account.
type Summary struct {
	Income   decimal.Decimal
	Expense  decimal.Decimal // absolute value
	Interest decimal.Decimal
}

// Balance returns the sum of movs. An empty history has a zero balance.
func Balance(movs []model.Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movs {
		total = total.Add(m)
	}
	return total
}

// Summarize computes the summary of movs. Interest is deposit*rate/100 per
// deposit, and only amounts >= floor are counted. Empty inputs give zeros.
func Summarize(movs []model.Movement, rate, floor decimal.Decimal) Summary {
	s := Summary{
		Income:   decimal.Zero,
		Expense:  decimal.Zero,
		Interest: decimal.Zero,
	}
	for _, m := range movs {
		switch {
		case m.IsPositive():
			s.Income = s.Income.Add(m)
			interest := m.Mul(rate).Div(hundred)
			if interest.GreaterThanOrEqual(floor) {
				s.Interest = s.Interest.Add(interest)
			}
		case m.IsNegative():
			s.Expense = s.Expense.Add(m.Abs())
		}
	}
	return s
}

// UserName lowercases owner and joins the first letter of every word.
// "Jonas Schmedtmann" -> "js"
func UserName(owner string) string {
	var b strings.Builder
	for _, word := range strings.Fields(strings.ToLower(owner)) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}

// FirstName returns the first word of owner, or "" if there is none.
func FirstName(owner string) string {
	fields := strings.Fields(owner)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
