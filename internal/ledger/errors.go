package ledger

import "errors"

var (
	// ErrNotLoggedIn indicates that the action needs a logged-in session.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrUnknownUser indicates that no account has the given user name.
	ErrUnknownUser = errors.New("unknown user")
	// ErrWrongPIN indicates that the PIN does not match the account.
	ErrWrongPIN = errors.New("wrong pin")
	// ErrInvalidAmount indicates a non-numeric, zero or negative amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds indicates that the balance does not cover the transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrSelfTransfer indicates a transfer to the sender's own account.
	ErrSelfTransfer = errors.New("transfer to own account")
	// ErrLoanNotValid indicates that the loan request failed the credit check.
	ErrLoanNotValid = errors.New("loan is not valid")
	// ErrCredentialsMismatch indicates that close credentials are not the current account's.
	ErrCredentialsMismatch = errors.New("credentials do not match current account")
)

// LoanAlert is the message shown when a loan request is refused.
const LoanAlert = "LOAN IS NOT VALID"

// Alerts reports whether err is surfaced to the user. Only refused loans are;
// every other failure leaves the UI untouched.
func Alerts(err error) bool {
	return errors.Is(err, ErrLoanNotValid)
}

var rejections = []struct {
	err  error
	code string
}{
	{ErrNotLoggedIn, "not_logged_in"},
	{ErrUnknownUser, "unknown_user"},
	{ErrWrongPIN, "wrong_pin"},
	{ErrInvalidAmount, "invalid_amount"},
	{ErrInsufficientFunds, "insufficient_funds"},
	{ErrSelfTransfer, "self_transfer"},
	{ErrLoanNotValid, "loan_not_valid"},
	{ErrCredentialsMismatch, "credentials_mismatch"},
}

// IsRejection reports whether err is a refused action rather than a failure
// of the renderer or another collaborator.
func IsRejection(err error) bool {
	return Reason(err) != ""
}

// Reason returns the stable code of the rejection wrapped by err, such as
// "insufficient_funds". It returns "" for nil and for errors that are not
// rejections.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.code
		}
	}
	return ""
}
