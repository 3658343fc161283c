package ledger

import (
	"fmt"
	"strings"

	"github.com/bankist-dev/bankist/internal/accounts"
	"github.com/bankist-dev/bankist/internal/calc"
)

// ValidationError describes a single store invariant violation.
type ValidationError struct {
	UserName    string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s]: %s", e.UserName, e.Description)
}

// Validate checks the store for problems the app does not prevent on its own:
// blank owners, user names that do not match their owner, and collisions.
func Validate(store *accounts.Store) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]string)
	for _, a := range store.All() {
		if strings.TrimSpace(a.Owner) == "" {
			errs = append(errs, ValidationError{
				UserName:    a.UserName,
				Description: "owner is blank",
			})
			continue
		}

		if want := calc.UserName(a.Owner); a.UserName != want {
			errs = append(errs, ValidationError{
				UserName:    a.UserName,
				Description: fmt.Sprintf("user name should be %q for owner %q", want, a.Owner),
			})
		}

		if prev, dup := seen[a.UserName]; dup {
			errs = append(errs, ValidationError{
				UserName:    a.UserName,
				Description: fmt.Sprintf("%q shadows %q; only the first can log in", a.Owner, prev),
			})
			continue
		}
		seen[a.UserName] = a.Owner
	}

	return errs
}
