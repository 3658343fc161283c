package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankist-dev/bankist/internal/accounts"
	"github.com/bankist-dev/bankist/internal/calc"
	"github.com/bankist-dev/bankist/internal/model"
	"github.com/bankist-dev/bankist/internal/view"
)

// recorder is a Renderer that keeps everything it is given.
type recorder struct {
	welcomes []string
	views    []view.View
	alerts   []string
	hides    int
}

func (r *recorder) Welcome(name string) error { r.welcomes = append(r.welcomes, name); return nil }
func (r *recorder) Render(v view.View) error { r.views = append(r.views, v); return nil }
func (r *recorder) Hide() error { r.hides++; return nil }
func (r *recorder) Alert(msg string) error { r.alerts = append(r.alerts, msg); return nil }
func (r *recorder) last() view.View { return r.views[len(r.views)-1] }

func newState(t *testing.T) (*State, *recorder) {
	t.Helper()
	rec := &recorder{}
	return New(accounts.NewStore(accounts.DefaultAccounts()), rec), rec
}

func loggedIn(t *testing.T, user, pin string) (*State, *recorder) {
	t.Helper()
	s, rec := newState(t)
	require.NoError(t, s.Login(user, pin))
	return s, rec
}

func movementStrings(a *model.Account) []string {
	out := make([]string, len(a.Movements))
	for i, m := range a.Movements {
		out[i] = m.String()
	}
	return out
}

func find(t *testing.T, s *State, user string) *model.Account {
	t.Helper()
	a, ok := s.Store().Find(user)
	require.True(t, ok, "account %s should exist", user)
	return a
}

func assertBalancesHold(t *testing.T, s *State, rec *recorder) {
	t.Helper()
	if len(rec.views) == 0 {
		return
	}
	v := rec.last()
	a := find(t, s, v.UserName)
	assert.True(t, v.Balance.Equal(calc.Balance(a.Movements)), "rendered balance must equal sum of movements")
}

func TestLogin(t *testing.T) {
	s, rec := newState(t)

	require.NoError(t, s.Login("js", "1111"))

	require.NotNil(t, s.Current())
	assert.Equal(t, "Jonas Schmedtmann", s.Current().Owner)
	assert.Equal(t, []string{"Jonas"}, rec.welcomes)
	require.Len(t, rec.views, 1)
	assert.Equal(t, "3840", rec.last().Balance.String())
	assert.Equal(t, "59.40", rec.last().Summary.Interest.StringFixed(2))
}

func TestLogin_NumericPIN(t *testing.T) {
	s, _ := newState(t)
	require.NoError(t, s.Login("ss", " 04444 "))
	assert.Equal(t, "ss", s.Current().UserName)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name string
		user string
		pin  string
		want error
	}{
		{"unknown user", "xx", "1111", ErrUnknownUser},
		{"wrong pin", "js", "2222", ErrWrongPIN},
		{"blank pin", "js", "", ErrWrongPIN},
		{"case sensitive", "JS", "1111", ErrUnknownUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rec := newState(t)
			err := s.Login(tt.user, tt.pin)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, s.Current())
			assert.Empty(t, rec.views)
			assert.Empty(t, rec.welcomes)
			assert.Empty(t, rec.alerts, "failed login is silent")
		})
	}
}

func TestLogin_WrongPINKeepsPreviousSession(t *testing.T) {
	s, _ := loggedIn(t, "js", "1111")
	require.ErrorIs(t, s.Login("jd", "0000"), ErrWrongPIN)
	assert.Equal(t, "js", s.Current().UserName)
}

func TestTransfer(t *testing.T) {
	s, rec := loggedIn(t, "js", "1111")

	require.NoError(t, s.Transfer("jd", "100"))

	js := find(t, s, "js")
	jd := find(t, s, "jd")
	assert.Equal(t, "-100", js.Movements[len(js.Movements)-1].String())
	assert.Equal(t, "100", jd.Movements[len(jd.Movements)-1].String())
	assert.Equal(t, "3740", rec.last().Balance.String())
	assert.Equal(t, "js", rec.last().UserName, "view sync is for the sender")
	assertBalancesHold(t, s, rec)
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	rec := &recorder{}
	store := accounts.NewStore([]model.Account{
		{Owner: "Ann Lee", Movements: []model.Movement{decimal.NewFromInt(1000)}, InterestRate: decimal.NewFromInt(1), PIN: 1},
		{Owner: "Bob Ray", Movements: []model.Movement{decimal.NewFromInt(50)}, InterestRate: decimal.NewFromInt(1), PIN: 2},
	})
	s := New(store, rec)
	require.NoError(t, s.Login("al", "1"))

	err := s.Transfer("br", "1500")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, []string{"1000"}, movementStrings(find(t, s, "al")))
	assert.Equal(t, []string{"50"}, movementStrings(find(t, s, "br")))
	assert.Len(t, rec.views, 1, "only the login view")

	// Exactly the balance is allowed.
	require.NoError(t, s.Transfer("br", "1000"))
	assert.True(t, calc.Balance(find(t, s, "al").Movements).IsZero())
}

func TestTransfer_ToSelf(t *testing.T) {
	for _, amount := range []string{"1", "100", "999999"} {
		s, rec := loggedIn(t, "js", "1111")
		before := movementStrings(s.Current())

		err := s.Transfer("js", amount)
		assert.ErrorIs(t, err, ErrSelfTransfer)
		assert.Equal(t, before, movementStrings(s.Current()))
		assert.Len(t, rec.views, 1)
	}
}

func TestTransfer_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		to     string
		amount string
		want   error
	}{
		{"zero", "jd", "0", ErrInvalidAmount},
		{"negative", "jd", "-5", ErrInvalidAmount},
		{"blank", "jd", "", ErrInvalidAmount},
		{"not a number", "jd", "ten", ErrInvalidAmount},
		{"unknown receiver", "zz", "10", ErrUnknownUser},
		// Several guards fail at once: amount, receiver, self, balance.
		{"bad amount to unknown receiver", "zz", "-5", ErrInvalidAmount},
		{"unknown receiver over balance", "zz", "999999", ErrUnknownUser},
		{"self over balance", "js", "999999", ErrSelfTransfer},
		{"over balance", "jd", "999999", ErrInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rec := loggedIn(t, "js", "1111")
			before := movementStrings(find(t, s, "jd"))

			assert.ErrorIs(t, s.Transfer(tt.to, tt.amount), tt.want)
			assert.Len(t, s.Current().Movements, 8)
			assert.Equal(t, before, movementStrings(find(t, s, "jd")))
			assert.Empty(t, rec.alerts)
		})
	}
}

func TestRequestLoan(t *testing.T) {
	s, rec := loggedIn(t, "js", "1111")

	require.NoError(t, s.RequestLoan("100"))

	movs := movementStrings(s.Current())
	assert.Len(t, movs, 9)
	assert.Equal(t, "100", movs[8])
	assert.Equal(t, "3940", rec.last().Balance.String())
	assert.Empty(t, rec.alerts)
	assertBalancesHold(t, s, rec)
}

func TestRequestLoan_Refused(t *testing.T) {
	s, rec := loggedIn(t, "js", "1111")

	err := s.RequestLoan("50000")
	assert.ErrorIs(t, err, ErrLoanNotValid)
	assert.True(t, Alerts(err))
	assert.Len(t, s.Current().Movements, 8)
	assert.Equal(t, []string{LoanAlert}, rec.alerts)
	assert.Len(t, rec.views, 1)

	// 3000 is exactly 10% of 30000.
	require.NoError(t, s.RequestLoan("30000"))
}

func TestRequestLoan_InvalidAmountAlerts(t *testing.T) {
	s, rec := loggedIn(t, "js", "1111")

	for _, amount := range []string{"0", "-100", "abc"} {
		assert.ErrorIs(t, s.RequestLoan(amount), ErrLoanNotValid)
	}
	assert.Len(t, rec.alerts, 3)
}

func TestRequestLoan_Policy(t *testing.T) {
	rec := &recorder{}
	s := New(accounts.NewStore(accounts.DefaultAccounts()), rec, WithPolicy(Policy{
		LoanRatio:     decimal.RequireFromString("0.5"),
		InterestFloor: calc.DefaultInterestFloor,
	}))
	require.NoError(t, s.Login("js", "1111"))

	assert.ErrorIs(t, s.RequestLoan("7000"), ErrLoanNotValid)
	require.NoError(t, s.RequestLoan("6000"))
}

func TestCloseAccount(t *testing.T) {
	s, rec := loggedIn(t, "js", "1111")

	require.NoError(t, s.CloseAccount("js", "1111"))

	assert.Nil(t, s.Current())
	_, found := s.Store().Find("js")
	assert.False(t, found)
	assert.Equal(t, 3, s.Store().Len())
	assert.Equal(t, 1, rec.hides)

	// Logged out now.
	assert.ErrorIs(t, s.Transfer("jd", "10"), ErrNotLoggedIn)
	assert.ErrorIs(t, s.Login("js", "1111"), ErrUnknownUser)
}

func TestCloseAccount_Mismatch(t *testing.T) {
	tests := []struct {
		name string
		user string
		pin  string
	}{
		{"wrong pin", "js", "9999"},
		{"other account", "jd", "2222"},
		{"blank", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rec := loggedIn(t, "js", "1111")

			assert.ErrorIs(t, s.CloseAccount(tt.user, tt.pin), ErrCredentialsMismatch)
			for _, user := range []string{"js", "jd"} {
				_, found := s.Store().Find(user)
				assert.True(t, found, user)
			}
			assert.Equal(t, 4, s.Store().Len())
			assert.NotNil(t, s.Current())
			assert.Zero(t, rec.hides)
		})
	}
}

func TestToggleSort(t *testing.T) {
	s, rec := loggedIn(t, "js", "1111")
	original := rec.last().Rows

	require.NoError(t, s.ToggleSort())
	assert.True(t, s.Sorted())
	sorted := rec.last().Rows
	assert.Equal(t, "3000", sorted[0].Amount.String())
	assert.Equal(t, "-650", sorted[len(sorted)-1].Amount.String())

	require.NoError(t, s.ToggleSort())
	assert.False(t, s.Sorted())
	back := rec.last().Rows
	require.Len(t, back, len(original))
	for i := range original {
		assert.True(t, original[i].Amount.Equal(back[i].Amount))
		assert.Equal(t, original[i].Index, back[i].Index)
	}

	// The store is never reordered.
	assert.Equal(t, "200", s.Current().Movements[0].String())
}

func TestLogin_ResetsSort(t *testing.T) {
	s, _ := loggedIn(t, "js", "1111")
	require.NoError(t, s.ToggleSort())
	require.True(t, s.Sorted())

	require.NoError(t, s.Login("jd", "2222"))
	assert.False(t, s.Sorted())
}

func TestLoggedOutActions(t *testing.T) {
	s, rec := newState(t)

	assert.ErrorIs(t, s.Transfer("jd", "10"), ErrNotLoggedIn)
	assert.ErrorIs(t, s.RequestLoan("10"), ErrNotLoggedIn)
	assert.ErrorIs(t, s.CloseAccount("js", "1111"), ErrNotLoggedIn)
	assert.ErrorIs(t, s.ToggleSort(), ErrNotLoggedIn)
	assert.ErrorIs(t, s.Refresh(), ErrNotLoggedIn)
	assert.Empty(t, rec.views)
	assert.Empty(t, rec.alerts)
}

func TestBalanceInvariantAcrossSession(t *testing.T) {
	s, rec := loggedIn(t, "jd", "2222")

	steps := []func() error{
		func() error { return s.Transfer("js", "500") },
		func() error { return s.Transfer("ss", "99999") },
		func() error { return s.RequestLoan("2000") },
		func() error { return s.ToggleSort() },
		func() error { return s.Transfer("stw", "12.5") },
	}
	for _, step := range steps {
		_ = step()
		assertBalancesHold(t, s, rec)
	}

	for _, a := range s.Store().All() {
		var sum decimal.Decimal
		for _, m := range a.Movements {
			sum = sum.Add(m)
		}
		assert.True(t, sum.Equal(calc.Balance(a.Movements)))
	}
	assert.Equal(t, "-12.5", s.Current().Movements[len(s.Current().Movements)-1].String())
}

type failingRenderer struct{ recorder }

var errRender = errors.New("render failed")

func (f *failingRenderer) Render(view.View) error { return errRender }

func TestRendererErrorPropagates(t *testing.T) {
	s := New(accounts.NewStore(accounts.DefaultAccounts()), &failingRenderer{})
	assert.ErrorIs(t, s.Login("js", "1111"), errRender)
	assert.NotNil(t, s.Current(), "state changes before rendering")
}
