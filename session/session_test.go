package session_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/connectxyz/connect-sdk-go/session"
)

func TestSession_New(t *testing.T) {
	s := session.New("auth", nil, nil, zerolog.Nop())

	require.True(t, s.IsActive())
	require.Equal(t, "auth", s.Kind())
	require.NotEmpty(t, s.ID())
	require.False(t, s.CreatedAt().IsZero())
}

func TestSession_Close(t *testing.T) {
	t.Run("tears down then dismisses once", func(t *testing.T) {
		var order []string
		s := session.New("auth",
			func() { order = append(order, "dismiss") },
			func() { order = append(order, "teardown") },
			zerolog.Nop())

		s.Close()

		require.False(t, s.IsActive())
		require.Equal(t, []string{"teardown", "dismiss"}, order)
	})

	t.Run("idempotent", func(t *testing.T) {
		dismissals := 0
		s := session.New("auth", func() { dismissals++ }, nil, zerolog.Nop())

		s.Close()
		s.Close()
		s.Cancel()

		require.False(t, s.IsActive())
		require.Equal(t, 1, dismissals)
	})

	t.Run("never reactivates", func(t *testing.T) {
		s := session.New("auth", nil, nil, zerolog.Nop())
		s.Cancel()

		require.False(t, s.IsActive())
	})
}

func TestSession_NotifyDismissed(t *testing.T) {
	dismissals := 0
	teardowns := 0
	s := session.New("auth", func() { dismissals++ }, func() { teardowns++ }, zerolog.Nop())

	s.NotifyDismissed()

	require.False(t, s.IsActive())
	require.Equal(t, 1, teardowns)
	require.Zero(t, dismissals, "host already removed the surface")

	// A later Close finds nothing left to do.
	s.Close()
	require.Zero(t, dismissals)
	require.Equal(t, 1, teardowns)
}
