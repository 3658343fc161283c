// Package view derives everything the UI shows for one account.
//
// Refresh is the single sync point: every successful ledger mutation, and every
// login, rebuilds the whole View from the movement history and passes it to a
// Renderer. There is no diffing.
package view

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bankist-dev/bankist/internal/calc"
	"github.com/bankist-dev/bankist/internal/model"
)

// Row is one displayed movement.
type Row struct {
	Index  int // 1-based position in the (possibly sorted) source order
	Type   model.MovementType
	Amount decimal.Decimal
}

// View is a full snapshot of the derived values for an account.
type View struct {
	Owner    string
	UserName string
	Rows     []Row // most recent first
	Balance  decimal.Decimal
	Summary  calc.Summary
	Sorted   bool
}

// Options controls derivations that are configurable.
type Options struct {
	InterestFloor decimal.Decimal
}

// Refresh re-derives the rows, balance and summary of acc.
func Refresh(acc *model.Account, sorted bool, opts Options) View {
	return View{
		Owner:    acc.Owner,
		UserName: acc.UserName,
		Rows:     Rows(acc.Movements, sorted),
		Balance:  calc.Balance(acc.Movements),
		Summary:  calc.Summarize(acc.Movements, acc.InterestRate, opts.InterestFloor),
		Sorted:   sorted,
	}
}

// Rows lays out movs for display. The source order is insertion order, or
// ascending amount when sorted; each row is prepended so the last source
// element ends up on top.
func Rows(movs []model.Movement, sorted bool) []Row {
	src := movs
	if sorted {
		src = append([]model.Movement(nil), movs...)
		sort.SliceStable(src, func(i, j int) bool { return src[i].LessThan(src[j]) })
	}

	rows := make([]Row, len(src))
	for i, m := range src {
		rows[len(src)-1-i] = Row{
			Index:  i + 1,
			Type:   model.TypeOf(m),
			Amount: m,
		}
	}
	return rows
}

// Renderer presents views. The ledger calls it after each state change.
type Renderer interface {
	Welcome(firstName string) error
	Render(v View) error
	Hide() error
	Alert(msg string) error
}
