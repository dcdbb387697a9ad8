// Package calc implements a four-function-plus calculator on top of formula:
// a display line that is evaluated on demand, a bounded history of results,
// and the last answer for reuse.
package calc

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/zephyrtronium/formula"
	"github.com/zephyrtronium/formula/arena"
)

const (
	// HistMax is the number of entries the in-memory history holds.
	HistMax = 64
	// HistLine bounds the stored length of expressions and results, which
	// are truncated to HistLine-1 bytes.
	HistLine = 128
	// DisplayMax is the longest display line in bytes.
	DisplayMax = 511
)

// tracer traces with key 'formula.calc'.
func tracer() tracing.Trace {
	return tracing.Select("formula.calc")
}

// Entry is one evaluation in the history.
type Entry struct {
	// Seq is the sequence number of the entry in the persistent store, or 0
	// if the session has no store.
	Seq int
	// Expr is the evaluated text.
	Expr string
	// Result is the formatted result, ResultError, or ResultSyntax.
	Result string
	// Err is the parse error when Result is ResultSyntax. It is not
	// persisted.
	Err error
}

// Session is an interactive calculator. A Session is not safe for concurrent
// use.
type Session struct {
	a        *arena.Arena
	capacity int
	display  string
	answer   string
	// hist is a ring of the last HistMax entries; count is the total number
	// ever added.
	hist  [HistMax]Entry
	count int

	store Store
	trace tracing.Trace
	err   error
}

// New creates a calculator session.
func New(opts ...Option) *Session {
	s := &Session{
		capacity: arena.DefaultCap,
		answer:   "0",
	}
	for _, opt := range opts {
		opt.option(s)
	}
	if s.trace == nil {
		s.trace = tracer()
	}
	s.a = arena.New(s.capacity)
	if s.store != nil {
		s.load()
	}
	return s
}

// load fills the in-memory history with the newest entries in the store.
func (s *Session) load() {
	next, err := s.store.NextSeq()
	if err != nil {
		s.fail(fmt.Errorf("calc: loading history: %w", err))
		return
	}
	from := next - HistMax
	if from < 1 {
		from = 1
	}
	entries, err := s.store.Entries(from, next)
	if err != nil {
		s.fail(fmt.Errorf("calc: loading history: %w", err))
		return
	}
	for _, e := range entries {
		s.push(e)
		if e.Result != ResultSyntax {
			s.answer = e.Result
		}
	}
	s.trace.Debugf("calc: loaded %d history entries", len(entries))
}

func (s *Session) push(e Entry) {
	s.hist[s.count%HistMax] = e
	s.count++
}

// Evaluate evaluates display at x = 0 and records the result in the
// history. If display is empty, nothing happens and the result is false.
//
// On success, the display becomes the formatted result so that the next
// input continues from it, and the result becomes the last answer. On a
// syntax error, the display is cleared and the entry carries the error.
func (s *Session) Evaluate(display string) (Entry, bool) {
	if display == "" {
		return Entry{}, false
	}
	s.a.Reset()
	e := Entry{Expr: truncate(display, HistLine-1)}
	n, err := formula.Parse(display, s.a)
	if err != nil {
		s.trace.Debugf("calc: %q: %v", display, err)
		e.Result = ResultSyntax
		e.Err = err
		s.display = ""
	} else {
		e.Result = truncate(Format(n.Eval(0, 0)), HistLine-1)
		s.trace.Debugf("calc: %q = %s", display, e.Result)
		s.answer = e.Result
		s.display = e.Result
	}
	if s.store != nil {
		seq, err := s.store.AddEntry(e)
		if err != nil {
			s.fail(fmt.Errorf("calc: saving history: %w", err))
		} else {
			e.Seq = seq
		}
	}
	s.push(e)
	return e, true
}

// Eval evaluates the current display. It is a shortcut for
// s.Evaluate(s.Display()).
func (s *Session) Eval() (Entry, bool) {
	return s.Evaluate(s.display)
}

// History returns the in-memory history, newest first.
func (s *Session) History() []Entry {
	n := s.count
	if n > HistMax {
		n = HistMax
	}
	r := make([]Entry, 0, n)
	for i := s.count - 1; i >= s.count-n; i-- {
		r = append(r, s.hist[i%HistMax])
	}
	return r
}

// Len returns the total number of evaluations, including those that have
// fallen out of the in-memory history.
func (s *Session) Len() int {
	return s.count
}

// Answer returns the last successful result, initially "0".
func (s *Session) Answer() string {
	return s.answer
}

// Display returns the current display line.
func (s *Session) Display() string {
	return s.display
}

// SetDisplay replaces the display line, truncated to DisplayMax bytes.
func (s *Session) SetDisplay(text string) {
	s.display = truncate(text, DisplayMax)
}

// Insert appends text to the display if it fits.
func (s *Session) Insert(text string) bool {
	if len(s.display)+len(text) > DisplayMax {
		return false
	}
	s.display += text
	return true
}

// InsertAnswer appends the last answer to the display if it fits.
func (s *Session) InsertAnswer() bool {
	return s.Insert(s.answer)
}

// Clear empties the display.
func (s *Session) Clear() {
	s.display = ""
}

// Backspace removes the last byte of the display.
func (s *Session) Backspace() {
	if s.display != "" {
		s.display = s.display[:len(s.display)-1]
	}
}

// Err returns the first error from the persistent store, if any. Store errors
// never interrupt evaluation.
func (s *Session) Err() error {
	return s.err
}

func (s *Session) fail(err error) {
	s.trace.Errorf("%v", err)
	if s.err == nil {
		s.err = err
	}
}

// Close releases the session's arena and closes its store. The session must
// not be used afterward.
func (s *Session) Close() error {
	s.a.Destroy()
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	if err != nil {
		return fmt.Errorf("calc: closing history: %w", err)
	}
	return nil
}
