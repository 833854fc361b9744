package oauth

import "github.com/pkg/errors"

// Typed failure reasons for an OAuth attempt. Every failure is terminal for
// that attempt; a new attempt requires a fresh Authenticate call.
var (
	// ErrUserCancelled is reported when the user abandons the external
	// browser session, or when Cancel is called before completion.
	ErrUserCancelled = errors.New("user cancelled the authentication")

	// ErrInvalidURL is reported when the authorization URL does not parse.
	// No session is started.
	ErrInvalidURL = errors.New("invalid OAuth URL provided")

	// ErrMissingCallback is reported when the session completes without
	// producing a callback URL.
	ErrMissingCallback = errors.New("no callback URL received from OAuth provider")

	// ErrMissingParameters is reported when the callback carries no query or
	// fragment parameters at all.
	ErrMissingParameters = errors.New("missing required parameters in OAuth response")

	// ErrSessionFailed is reported when the web-auth session cannot start.
	ErrSessionFailed = errors.New("authentication session failed")

	// ErrInvalidCallbackURL is reported when the redirect does not match the
	// expected custom scheme+host or an HTTPS trusted-domain suffix. The
	// received URL is attached for diagnostics.
	ErrInvalidCallbackURL = errors.New("invalid callback URL received")

	// ErrInvalidIDToken is reported when an id_token callback parameter fails
	// verification against the configured issuer.
	ErrInvalidIDToken = errors.New("id_token verification failed")

	// ErrAttemptInProgress is reported to a second Authenticate call while a
	// prior attempt on the same handler is still live. The first attempt is
	// left untouched.
	ErrAttemptInProgress = errors.New("authentication attempt already in progress")

	// ErrLoginCancelled is how a WebAuthSession implementation reports that
	// the external session was dismissed; the handler maps it to
	// ErrUserCancelled.
	ErrLoginCancelled = errors.New("login cancelled")
)
