// Package activity keeps an append-only CSV trail of user actions: who did
// what in which shell session, and whether the ledger accepted it.
package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bankist-dev/bankist/internal/ledger"
)

// Outcome says how the ledger answered an action.
type Outcome string

const (
	// OutcomeOK means the action was applied.
	OutcomeOK Outcome = "ok"
	// OutcomeRejected means the ledger refused the action. Nothing changed.
	OutcomeRejected Outcome = "rejected"
	// OutcomeFailed means something other than the ledger rules went wrong,
	// for example the renderer. The store may already have been mutated.
	OutcomeFailed Outcome = "failed"
)

// ParseOutcome validates a serialized outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomeOK, OutcomeRejected, OutcomeFailed:
		return o, nil
	}
	return "", fmt.Errorf("unknown outcome %q", s)
}

// Classify maps the result of a ledger call to an outcome and, for
// rejections, the ledger's reason code.
func Classify(err error) (Outcome, string) {
	switch {
	case err == nil:
		return OutcomeOK, ""
	case ledger.IsRejection(err):
		return OutcomeRejected, ledger.Reason(err)
	default:
		return OutcomeFailed, ""
	}
}

// Entry is one action in the trail.
type Entry struct {
	Timestamp time.Time
	Session   string
	Action    string
	User      string // logged-in user when the action ran, "" for guests
	Outcome   Outcome
	Reason    string // ledger reason code, set for rejections only
	Detail    string // error text for anything but OutcomeOK
}

var header = []string{"timestamp", "session", "action", "user", "outcome", "reason", "detail"}

// Header is the first line of every activity file.
var Header = strings.Join(header, ",")

// MarshalEntry converts an Entry to a CSV record.
func MarshalEntry(e Entry) []string {
	return []string{
		e.Timestamp.UTC().Format(time.RFC3339),
		e.Session,
		e.Action,
		e.User,
		string(e.Outcome),
		e.Reason,
		e.Detail,
	}
}

// UnmarshalEntry parses a CSV record written by MarshalEntry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != len(header) {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", len(header), len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[0])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[0], err)
	}
	outcome, err := ParseOutcome(record[4])
	if err != nil {
		return Entry{}, err
	}
	if outcome == OutcomeRejected && record[5] == "" {
		return Entry{}, errors.New("rejected entry without a reason")
	}

	return Entry{
		Timestamp: ts,
		Session:   record[1],
		Action:    record[2],
		User:      record[3],
		Outcome:   outcome,
		Reason:    record[5],
		Detail:    record[6],
	}, nil
}

// Log is an activity file on disk.
type Log struct {
	path string
}

// Open returns the Log at path. The file is created on the first Append.
func Open(path string) *Log {
	return &Log{path: path}
}

// Path returns the file the log writes to.
func (l *Log) Path() string { return l.path }

// Append adds entries to the end of the file, writing the header first when
// the file is new.
func (l *Log) Append(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating activity dir: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat activity log: %w", err)
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		cw.Write(header)
	}
	for _, e := range entries {
		cw.Write(MarshalEntry(e))
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing activity log: %w", err)
	}
	return nil
}

// Entries reads the whole file. A missing file is an empty log.
func (l *Log) Entries() ([]Entry, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	entries, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	return entries, nil
}

func decode(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	var entries []Entry
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		if line == 1 {
			if !slices.Equal(record, header) {
				return nil, fmt.Errorf("unexpected header %q", record)
			}
			continue
		}
		e, err := UnmarshalEntry(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
}

// Tally counts outcomes for one action.
type Tally struct {
	Action   string
	OK       int
	Rejected int
	Failed   int
	Reasons  map[string]int // rejection reason code -> count
}

// Summarize groups entries by action, in order of first appearance.
func Summarize(entries []Entry) []Tally {
	var tallies []Tally
	index := map[string]int{}
	for _, e := range entries {
		i, ok := index[e.Action]
		if !ok {
			i = len(tallies)
			index[e.Action] = i
			tallies = append(tallies, Tally{Action: e.Action, Reasons: map[string]int{}})
		}
		t := &tallies[i]
		switch e.Outcome {
		case OutcomeOK:
			t.OK++
		case OutcomeRejected:
			t.Rejected++
			t.Reasons[e.Reason]++
		case OutcomeFailed:
			t.Failed++
		}
	}
	return tallies
}
