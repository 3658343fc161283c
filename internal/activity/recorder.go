package activity

import (
	"time"

	"github.com/google/uuid"
)

// Recorder buffers the entries of one shell session until Flush.
type Recorder struct {
	log     *Log
	session string
	now     func() time.Time
	pending []Entry
}

// NewRecorder returns a Recorder with a fresh session ID. An empty path
// disables writing; entries are still kept until Flush.
func NewRecorder(path string) *Recorder {
	r := &Recorder{
		session: uuid.NewString(),
		now:     time.Now,
	}
	if path != "" {
		r.log = Open(path)
	}
	return r
}

// Session returns the session ID stamped on every entry.
func (r *Recorder) Session() string { return r.session }

// Record buffers the result of one ledger call. err is classified with
// Classify, so a renderer failure after a mutation is not mistaken for a
// refused action.
func (r *Recorder) Record(action, user string, err error) Entry {
	outcome, reason := Classify(err)
	e := Entry{
		Timestamp: r.now().UTC(),
		Session:   r.session,
		Action:    action,
		User:      user,
		Outcome:   outcome,
		Reason:    reason,
	}
	if err != nil {
		e.Detail = err.Error()
	}
	r.pending = append(r.pending, e)
	return e
}

// Pending returns the entries not yet flushed.
func (r *Recorder) Pending() []Entry { return r.pending }

// Flush appends pending entries to the log file and clears them. On error the
// entries stay pending.
func (r *Recorder) Flush() error {
	if r.log != nil && len(r.pending) > 0 {
		if err := r.log.Append(r.pending); err != nil {
			return err
		}
	}
	r.pending = nil
	return nil
}
