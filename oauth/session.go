package oauth

import "net/url"

// Completion delivers the outcome of a WebAuthSession: the callback URL the
// provider redirected to, or the error that ended the session. Exactly one
// call is made per session.
type Completion func(callbackURL *url.URL, err error)

// WebAuthSession is one externally mediated authentication attempt: it opens
// the authorization URL in an isolated browser context and watches for a
// redirect matching the callback scheme. Sessions are single-use.
type WebAuthSession interface {
	// Start begins the session. A false return means the session could not
	// start; no completion will be delivered.
	Start() bool

	// Cancel tears the session down. The session reports ErrLoginCancelled
	// through its completion unless it already completed.
	Cancel()
}

// SessionFactory builds a WebAuthSession for one attempt. The handler owns
// when Start and Cancel are called; implementations may deliver the
// completion on any goroutine.
type SessionFactory func(authURL *url.URL, callbackScheme string, prefersEphemeral bool, complete Completion) WebAuthSession
