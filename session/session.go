// Package session tracks one live embedded-flow instance: its identity, its
// active flag and its non-owning ties back to the host surface.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Session is a live, presented instance of a flow. It never reactivates once
// deactivated; a new flow presentation creates a new Session.
//
// The dismiss and teardown handles are non-owning: the Session can trigger
// dismissal of the host surface without holding it, and either side can close
// first without a reference cycle across the host boundary.
type Session struct {
	id        uuid.UUID
	kind      string
	createdAt time.Time
	log       zerolog.Logger

	mu       sync.Mutex
	active   bool
	dismiss  func()
	teardown func()
}

// New creates an active Session for the given flow kind. dismiss asks the
// host to take down the presented surface; teardown releases SDK-side
// resources. Either may be nil.
func New(kind string, dismiss, teardown func(), log zerolog.Logger) *Session {
	return &Session{
		id:        uuid.New(),
		kind:      kind,
		createdAt: time.Now(),
		log:       log,
		active:    true,
		dismiss:   dismiss,
		teardown:  teardown,
	}
}

// ID returns the session's opaque identity token.
func (s *Session) ID() string {
	return s.id.String()
}

// Kind returns the flow kind, currently always "auth".
func (s *Session) Kind() string {
	return s.kind
}

// CreatedAt returns the session's creation time.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// IsActive reports whether the session is still live.
func (s *Session) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Close deactivates the session, releases SDK resources and asks the host to
// dismiss the presented surface. Idempotent; only the first call has effect.
func (s *Session) Close() {
	s.deactivate(true)
}

// Cancel deactivates the session exactly as Close does. It exists so hosts
// can express intent; repeated calls are safe.
func (s *Session) Cancel() {
	s.deactivate(true)
}

// NotifyDismissed records that the host surface is already gone, deactivating
// the session without asking for another dismissal. Hosts call this when the
// surface disappears on their side first.
func (s *Session) NotifyDismissed() {
	s.deactivate(false)
}

func (s *Session) deactivate(dismissHost bool) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	dismiss := s.dismiss
	teardown := s.teardown
	s.dismiss = nil
	s.teardown = nil
	s.mu.Unlock()

	s.log.Debug().Str("sessionID", s.id.String()).Str("kind", s.kind).Msg("session deactivated")

	if teardown != nil {
		teardown()
	}
	if dismissHost && dismiss != nil {
		dismiss()
	}
}
