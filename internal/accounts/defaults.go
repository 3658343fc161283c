package accounts

import (
	"github.com/shopspring/decimal"

	"github.com/bankist-dev/bankist/internal/model"
)

// DefaultAccounts returns the four demo accounts the app starts with.
func DefaultAccounts() []model.Account {
	return []model.Account{
		{
			Owner:        "Jonas Schmedtmann",
			Movements:    amounts(200, 450, -400, 3000, -650, -130, 70, 1300),
			InterestRate: decimal.RequireFromString("1.2"),
			PIN:          1111,
		},
		{
			Owner:        "Jessica Davis",
			Movements:    amounts(5000, 3400, -150, -790, -3210, -1000, 8500, -30),
			InterestRate: decimal.RequireFromString("1.5"),
			PIN:          2222,
		},
		{
			Owner:        "Steven Thomas Williams",
			Movements:    amounts(200, -200, 340, -300, -20, 50, 400, -460),
			InterestRate: decimal.RequireFromString("0.7"),
			PIN:          3333,
		},
		{
			Owner:        "Sarah Smith",
			Movements:    amounts(430, 1000, 700, 50, 90),
			InterestRate: decimal.NewFromInt(1),
			PIN:          4444,
		},
	}
}

func amounts(values ...int64) []model.Movement {
	out := make([]model.Movement, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}
