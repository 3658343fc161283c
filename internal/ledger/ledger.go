// Package ledger holds the session state and the actions that change it.
//
// A State starts logged out. Login moves it to logged in; Transfer, RequestLoan
// and ToggleSort keep it there; CloseAccount removes the account and logs out.
// Every action validates its preconditions first and leaves the store untouched
// on failure, returning one of the sentinel errors in this package.
package ledger

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bankist-dev/bankist/internal/accounts"
	"github.com/bankist-dev/bankist/internal/calc"
	"github.com/bankist-dev/bankist/internal/model"
	"github.com/bankist-dev/bankist/internal/view"
)

// DefaultLoanRatio is the share of a requested loan that some past movement must reach.
var DefaultLoanRatio = decimal.RequireFromString("0.1")

// Policy holds the tunable rules of the ledger.
type Policy struct {
	LoanRatio     decimal.Decimal
	InterestFloor decimal.Decimal
}

// DefaultPolicy returns the standard rules.
func DefaultPolicy() Policy {
	return Policy{
		LoanRatio:     DefaultLoanRatio,
		InterestFloor: calc.DefaultInterestFloor,
	}
}

// State is the application state: the account store plus the current session.
type State struct {
	store    *accounts.Store
	renderer view.Renderer
	policy   Policy
	log      zerolog.Logger

	current *model.Account
	sorted  bool
}

// Option configures a State.
type Option func(*State)

// WithPolicy overrides the default policy.
func WithPolicy(p Policy) Option {
	return func(s *State) { s.policy = p }
}

// WithLogger sets the logger used for action outcomes.
func WithLogger(l zerolog.Logger) Option {
	return func(s *State) { s.log = l }
}

// New returns a logged-out State over store. Views are pushed to r.
func New(store *accounts.Store, r view.Renderer, opts ...Option) *State {
	s := &State{
		store:    store,
		renderer: r,
		policy:   DefaultPolicy(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the account store.
func (s *State) Store() *accounts.Store { return s.store }

// Current returns the logged-in account, or nil.
func (s *State) Current() *model.Account { return s.current }

// Sorted reports whether movements are displayed in ascending order.
func (s *State) Sorted() bool { return s.sorted }

// Login authenticates userName with pin and shows the account.
func (s *State) Login(userName, pin string) error {
	acc, ok := s.store.Find(userName)
	if !ok {
		return s.reject("login", ErrUnknownUser)
	}
	if !pinMatches(acc, pin) {
		return s.reject("login", ErrWrongPIN)
	}

	s.current = acc
	s.sorted = false
	s.log.Info().Str("user", acc.UserName).Msg("login")

	if err := s.renderer.Welcome(calc.FirstName(acc.Owner)); err != nil {
		return err
	}
	return s.Refresh()
}

// Transfer moves amount from the current account to toUserName.
func (s *State) Transfer(toUserName, amount string) error {
	if s.current == nil {
		return s.reject("transfer", ErrNotLoggedIn)
	}
	amt, ok := parseAmount(amount)
	if !ok {
		return s.reject("transfer", ErrInvalidAmount)
	}
	receiver, found := s.store.Find(toUserName)
	if !found {
		return s.reject("transfer", ErrUnknownUser)
	}
	if receiver.UserName == s.current.UserName {
		return s.reject("transfer", ErrSelfTransfer)
	}
	if calc.Balance(s.current.Movements).LessThan(amt) {
		return s.reject("transfer", ErrInsufficientFunds)
	}

	s.current.Append(amt.Neg())
	receiver.Append(amt)
	s.log.Info().
		Str("from", s.current.UserName).
		Str("to", receiver.UserName).
		Str("amount", amt.String()).
		Msg("transfer")

	return s.Refresh()
}

// RequestLoan credits amount to the current account if some past movement is
// at least LoanRatio of it. A refusal raises an alert.
func (s *State) RequestLoan(amount string) error {
	if s.current == nil {
		return s.reject("loan", ErrNotLoggedIn)
	}
	amt, ok := parseAmount(amount)
	if !ok || !s.creditworthy(amt) {
		if err := s.renderer.Alert(LoanAlert); err != nil {
			return err
		}
		return s.reject("loan", ErrLoanNotValid)
	}

	s.current.Append(amt)
	s.log.Info().Str("user", s.current.UserName).Str("amount", amt.String()).Msg("loan")

	return s.Refresh()
}

// CloseAccount deletes the current account when userName and pin are its own.
func (s *State) CloseAccount(userName, pin string) error {
	if s.current == nil {
		return s.reject("close", ErrNotLoggedIn)
	}
	if userName != s.current.UserName || !pinMatches(s.current, pin) {
		return s.reject("close", ErrCredentialsMismatch)
	}

	closed := s.current.UserName
	s.store.Remove(closed)
	s.current = nil
	s.sorted = false
	s.log.Info().Str("user", closed).Msg("close")

	return s.renderer.Hide()
}

// ToggleSort flips between insertion order and ascending order.
func (s *State) ToggleSort() error {
	if s.current == nil {
		return s.reject("sort", ErrNotLoggedIn)
	}
	s.sorted = !s.sorted
	return s.Refresh()
}

// Refresh re-derives and renders the current account.
func (s *State) Refresh() error {
	if s.current == nil {
		return ErrNotLoggedIn
	}
	v := view.Refresh(s.current, s.sorted, view.Options{InterestFloor: s.policy.InterestFloor})
	return s.renderer.Render(v)
}

func (s *State) creditworthy(amt decimal.Decimal) bool {
	threshold := amt.Mul(s.policy.LoanRatio)
	for _, m := range s.current.Movements {
		if m.GreaterThanOrEqual(threshold) {
			return true
		}
	}
	return false
}

func (s *State) reject(action string, err error) error {
	s.log.Debug().Str("action", action).Err(err).Msg("rejected")
	return err
}

// parseAmount reads a user-typed amount. Blank or non-numeric input and
// amounts <= 0 are rejected.
func parseAmount(input string) (decimal.Decimal, bool) {
	amt, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil || !amt.IsPositive() {
		return decimal.Zero, false
	}
	return amt, true
}

// pinMatches compares the typed pin numerically, so "01111" equals 1111.
func pinMatches(acc *model.Account, input string) bool {
	pin, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return false
	}
	return pin.Equal(decimal.NewFromInt(int64(acc.PIN)))
}
