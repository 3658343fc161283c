package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bankist-dev/bankist/internal/calc"
	"github.com/bankist-dev/bankist/internal/model"
)

// SeedFile is the seed file name written by init, relative to the project directory.
const SeedFile = "accounts.csv"

// Store is the ordered in-memory collection of accounts, looked up by user name.
type Store struct {
	accounts []*model.Account
}

// NewStore builds a Store from accounts, generating every user name before the
// store is handed out.
func NewStore(accounts []model.Account) *Store {
	s := &Store{accounts: make([]*model.Account, 0, len(accounts))}
	for _, a := range accounts {
		a.Movements = append([]model.Movement(nil), a.Movements...)
		a.UserName = calc.UserName(a.Owner)
		s.accounts = append(s.accounts, &a)
	}
	return s
}

// Load reads a seed CSV file and returns a Store.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading seed accounts: %w", err)
	}
	return NewStore(accts), nil
}

// All returns the accounts in store order. The pointers are live.
func (s *Store) All() []*model.Account {
	return s.accounts
}

// Len returns the number of accounts.
func (s *Store) Len() int {
	return len(s.accounts)
}

// Find returns the first account with the given user name.
func (s *Store) Find(userName string) (*model.Account, bool) {
	i := s.indexOf(userName)
	if i < 0 {
		return nil, false
	}
	return s.accounts[i], true
}

// Remove deletes the first account with the given user name.
// It reports whether an account was removed.
func (s *Store) Remove(userName string) bool {
	i := s.indexOf(userName)
	if i < 0 {
		return false
	}
	s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
	return true
}

// Save writes the store to <dir>/accounts.csv.
func (s *Store) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating seed dir: %w", err)
	}

	path := filepath.Join(dir, SeedFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating seed file: %w", err)
	}
	defer f.Close()

	accts := make([]model.Account, len(s.accounts))
	for i, a := range s.accounts {
		accts[i] = *a
	}
	if err := WriteAccounts(f, accts); err != nil {
		return fmt.Errorf("writing seed accounts: %w", err)
	}
	return nil
}

func (s *Store) indexOf(userName string) int {
	for i, a := range s.accounts {
		if a.UserName == userName {
			return i
		}
	}
	return -1
}
