// Package bootstrap tracks the startup sequence of the API process:
// configuration is loaded, the database is connected, then the server
// listens. Any failure before listening is terminal.
package bootstrap

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Phase string

const (
	PhaseLoading    Phase = "loading"
	PhaseConnecting Phase = "connecting"
	PhaseServing    Phase = "serving"
	PhaseFailed     Phase = "failed"
)

var ErrInvalidTransition = errors.New("invalid bootstrap transition")

var transitions = map[Phase][]Phase{
	PhaseLoading:    {PhaseConnecting, PhaseFailed},
	PhaseConnecting: {PhaseServing, PhaseFailed},
	PhaseServing:    {},
	PhaseFailed:     {},
}

type Sequencer struct {
	mu    sync.Mutex
	phase Phase
	err   error
	log   *zap.SugaredLogger
}

func New(log *zap.SugaredLogger) *Sequencer {
	return &Sequencer{phase: PhaseLoading, log: log}
}

func (s *Sequencer) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Err returns the failure recorded by Fail, if any.
func (s *Sequencer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Enter moves to the next phase. Only forward transitions are accepted.
func (s *Sequencer) Enter(next Phase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !allowed(s.phase, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.phase, next)
	}
	s.log.Infow("bootstrap phase", "from", s.phase, "to", next)
	s.phase = next
	return nil
}

// Fail records err and moves to PhaseFailed. The first failure wins.
func (s *Sequencer) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseFailed {
		return
	}
	s.log.Errorw("bootstrap failed", "phase", s.phase, "err", err)
	s.phase = PhaseFailed
	s.err = err
}

func allowed(from, to Phase) bool {
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

var Module = fx.Options(
	fx.Provide(New),
)
