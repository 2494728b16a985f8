package sim

import (
	"github.com/jrvargas/ampsim/pkg/spec"
	"github.com/jrvargas/ampsim/pkg/wave"
)

// Session holds the current load and signal between recomputations. Either
// spec is replaced wholesale; nothing inside a spec is ever mutated, and a
// run carries no state over from the previous one.
type Session struct {
	load   spec.LoadSpec
	signal spec.SignalSpec
}

// NewSession creates a session with an initial load and signal.
func NewSession(load spec.LoadSpec, signal spec.SignalSpec) *Session {
	return &Session{load: load, signal: signal}
}

// SetLoad replaces the current load.
func (s *Session) SetLoad(load spec.LoadSpec) { s.load = load }

// SetSignal replaces the current signal.
func (s *Session) SetSignal(signal spec.SignalSpec) { s.signal = signal }

// Load returns the current load.
func (s *Session) Load() spec.LoadSpec { return s.load }

// Signal returns the current signal.
func (s *Session) Signal() spec.SignalSpec { return s.signal }

// Run recomputes everything from the current specs. See Run.
func (s *Session) Run(tv wave.TimeVector) (Result, []Component, wave.Series, error) {
	return Run(s.load, s.signal, tv)
}
