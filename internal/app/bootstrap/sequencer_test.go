package bootstrap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSequencer_HappyPath(t *testing.T) {
	s := New(zap.NewNop().Sugar())
	require.Equal(t, PhaseLoading, s.Phase())
	require.NoError(t, s.Enter(PhaseConnecting))
	require.NoError(t, s.Enter(PhaseServing))
	require.Equal(t, PhaseServing, s.Phase())
	require.NoError(t, s.Err())
}

func TestSequencer_CannotServeWithoutConnecting(t *testing.T) {
	s := New(zap.NewNop().Sugar())
	err := s.Enter(PhaseServing)
	require.True(t, errors.Is(err, ErrInvalidTransition))
	require.Equal(t, PhaseLoading, s.Phase())
}

func TestSequencer_FailIsTerminal(t *testing.T) {
	s := New(zap.NewNop().Sugar())
	require.NoError(t, s.Enter(PhaseConnecting))

	first := errors.New("connection refused")
	s.Fail(first)
	s.Fail(errors.New("later"))

	require.Equal(t, PhaseFailed, s.Phase())
	require.Equal(t, first, s.Err())
	require.Error(t, s.Enter(PhaseServing))
}
