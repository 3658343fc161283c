package commands

import (
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/bankist-dev/bankist/internal/accounts"
	"github.com/bankist-dev/bankist/internal/config"
	"github.com/bankist-dev/bankist/internal/ledger"
	"github.com/bankist-dev/bankist/internal/logging"
)

// app is everything a command needs, built from the config file.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *accounts.Store
}

// loadApp reads configPath (optional), sets up logging to logOut and builds
// the account store from the seed file or the built-in accounts.
func loadApp(configPath string, logOut io.Writer) (*app, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logOut, cfg.Log)
	if err != nil {
		return nil, err
	}

	var store *accounts.Store
	if cfg.Seed.AccountsFile == "" {
		store = accounts.NewStore(accounts.DefaultAccounts())
	} else {
		path := cfg.Seed.AccountsFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(configPath), path)
		}
		store, err = accounts.Load(path)
		if err != nil {
			return nil, err
		}
	}

	for _, verr := range ledger.Validate(store) {
		log.Warn().Str("user", verr.UserName).Msg(verr.Description)
	}
	log.Debug().Int("accounts", store.Len()).Msg("store ready")

	return &app{cfg: cfg, log: log, store: store}, nil
}

func (a *app) activityPath(configPath string) string {
	path := a.cfg.Activity.Path
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(configPath), path)
}
