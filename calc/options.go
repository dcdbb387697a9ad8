package calc

import (
	"github.com/npillmayer/schuko/tracing"
)

// Option is an option for creating a Session.
type Option interface {
	option(*Session)
}

type (
	storeopt struct{ s Store }
	capopt   int
	traceopt struct{ t tracing.Trace }
)

// WithStore persists every evaluation to s in addition to the in-memory
// history. The session closes s when it is closed.
func WithStore(s Store) Option {
	return storeopt{s}
}

func (o storeopt) option(s *Session) {
	s.store = o.s
}

// WithCapacity sets the size in bytes of the arena the session parses into.
// Non-positive sizes use arena.DefaultCap.
func WithCapacity(n int) Option {
	return capopt(n)
}

func (o capopt) option(s *Session) {
	if o > 0 {
		s.capacity = int(o)
	}
}

// WithTrace sets the tracer the session reports to. The default is the
// "formula.calc" tracer.
func WithTrace(t tracing.Trace) Option {
	return traceopt{t}
}

func (o traceopt) option(s *Session) {
	if o.t != nil {
		s.trace = o.t
	}
}
