package view

import (
	"fmt"
	"io"
	"strings"
)

// TextRenderer writes views as plain text.
type TextRenderer struct {
	w        io.Writer
	currency string
}

// NewTextRenderer returns a renderer writing to w. Amounts are suffixed with currency.
func NewTextRenderer(w io.Writer, currency string) *TextRenderer {
	return &TextRenderer{w: w, currency: currency}
}

// Welcome prints the greeting shown after login.
func (r *TextRenderer) Welcome(firstName string) error {
	_, err := fmt.Fprintf(r.w, "Welcome back, %s\n", firstName)
	return err
}

// Render prints the movements, then the balance, then the summary.
func (r *TextRenderer) Render(v View) error {
	var b strings.Builder

	order := "insertion"
	if v.Sorted {
		order = "sorted"
	}
	fmt.Fprintf(&b, "Movements of %s (%s, %s order)\n", v.Owner, v.UserName, order)
	for _, row := range v.Rows {
		fmt.Fprintf(&b, "  %3d %-10s %12s %s\n", row.Index, row.Type, row.Amount.String(), r.currency)
	}
	fmt.Fprintf(&b, "Balance: %s %s\n", v.Balance.String(), r.currency)
	fmt.Fprintf(&b, "In: %s %s  Out: %s %s  Interest: %s %s\n",
		v.Summary.Income.String(), r.currency,
		v.Summary.Expense.String(), r.currency,
		v.Summary.Interest.StringFixed(2), r.currency)

	_, err := io.WriteString(r.w, b.String())
	return err
}

// Hide prints the logged-out notice.
func (r *TextRenderer) Hide() error {
	_, err := fmt.Fprintln(r.w, "Logged out.")
	return err
}

// Alert prints a blocking user-facing message.
func (r *TextRenderer) Alert(msg string) error {
	_, err := fmt.Fprintf(r.w, "! %s\n", msg)
	return err
}
