// Package shell turns action lines such as "transfer jd 100" into ledger calls.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bankist-dev/bankist/internal/activity"
	"github.com/bankist-dev/bankist/internal/ledger"
)

var (
	// ErrUsage wraps every malformed line.
	ErrUsage = errors.New("usage")
	// ErrQuit is returned by Exec for quit and exit.
	ErrQuit = errors.New("quit")
)

const helpText = `Actions:
  login <user> <pin>        log in
  transfer <user> <amount>  send money to another account
  loan <amount>             request a loan
  close <user> <pin>        close the current account
  sort                      toggle movement order
  show                      show the current account
  help                      this text
  quit                      leave
`

// Shell dispatches action lines to a ledger State.
type Shell struct {
	state *ledger.State
	rec   *activity.Recorder
	out   io.Writer
	log   zerolog.Logger
}

// New returns a Shell. Help text and usage errors go to out; views go to the
// state's renderer.
func New(state *ledger.State, rec *activity.Recorder, out io.Writer, log zerolog.Logger) *Shell {
	return &Shell{state: state, rec: rec, out: out, log: log}
}

// Exec runs one line. Blank lines and # comments are ignored. Refused actions
// are not errors here: they are recorded and logged, and the ledger decides
// whether the user sees anything.
func (sh *Shell) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "login":
		if len(args) != 2 {
			return usage("login <user> <pin>")
		}
		return sh.act(cmd, func() error { return sh.state.Login(args[0], args[1]) })
	case "transfer":
		if len(args) != 2 {
			return usage("transfer <user> <amount>")
		}
		return sh.act(cmd, func() error { return sh.state.Transfer(args[0], args[1]) })
	case "loan":
		if len(args) != 1 {
			return usage("loan <amount>")
		}
		return sh.act(cmd, func() error { return sh.state.RequestLoan(args[0]) })
	case "close":
		if len(args) != 2 {
			return usage("close <user> <pin>")
		}
		return sh.act(cmd, func() error { return sh.state.CloseAccount(args[0], args[1]) })
	case "sort":
		return sh.act(cmd, sh.state.ToggleSort)
	case "show":
		if sh.state.Current() == nil {
			_, err := fmt.Fprintln(sh.out, "Not logged in.")
			return err
		}
		return sh.state.Refresh()
	case "help":
		_, err := io.WriteString(sh.out, helpText)
		return err
	case "quit", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("%w: unknown action %q (try help)", ErrUsage, cmd)
	}
}

// Run reads lines from r until EOF, quit, or ctx is cancelled. In interactive
// mode a prompt is printed and usage errors are reported without stopping;
// otherwise the first usage error ends the run. Cancellation is noticed while
// Run waits for input, not only between lines.
func (sh *Shell) Run(ctx context.Context, r io.Reader, interactive bool) error {
	defer sh.flush()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, readErr := scan(ctx, r)

	lineNo := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if interactive {
			sh.prompt()
		}

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			break
		}
		lineNo++

		err := sh.Exec(line)
		switch {
		case err == nil:
		case errors.Is(err, ErrQuit):
			return nil
		case errors.Is(err, ErrUsage) && interactive:
			fmt.Fprintln(sh.out, err)
		default:
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := <-readErr; err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// scan feeds the lines of r to the returned channel until EOF or until ctx is
// done. The channel is closed when scanning stops; the scanner error, if any,
// is then available on the second channel. A goroutine blocked in Read on r
// is only released when r returns.
func scan(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

func (sh *Shell) act(action string, fn func() error) error {
	user := ""
	if cur := sh.state.Current(); cur != nil {
		user = cur.UserName
	}

	err := fn()
	e := sh.rec.Record(action, user, err)
	switch e.Outcome {
	case activity.OutcomeRejected:
		sh.log.Debug().
			Str("action", action).
			Str("reason", e.Reason).
			Bool("alerted", ledger.Alerts(err)).
			Msg("action refused")
		return nil
	case activity.OutcomeFailed:
		return err
	}
	return nil
}

func (sh *Shell) prompt() {
	name := "guest"
	if cur := sh.state.Current(); cur != nil {
		name = cur.UserName
	}
	fmt.Fprintf(sh.out, "%s> ", name)
}

func (sh *Shell) flush() {
	n := len(sh.rec.Pending())
	if err := sh.rec.Flush(); err != nil {
		sh.log.Warn().Err(err).Int("entries", n).Msg("failed to write activity log")
	}
}

func usage(form string) error {
	return fmt.Errorf("%w: %s", ErrUsage, form)
}
