package connectsdk

import (
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/connectxyz/connect-sdk-go/events"
	"github.com/connectxyz/connect-sdk-go/internal/dispatch"
	"github.com/connectxyz/connect-sdk-go/oauth"
	"github.com/connectxyz/connect-sdk-go/session"
	"github.com/connectxyz/connect-sdk-go/webview"
)

// AuthSession is a configured, not-yet-presented auth flow. The first Present
// call consumes it into a live Session; later calls return that Session
// unchanged. Created via ConfigureAuth.
type AuthSession struct {
	app            App
	jwt            string
	environment    Environment
	theme          Theme
	callbacks      events.AuthCallbacks
	allowedOrigins []string
	trustedDomains []string
	factory        oauth.SessionFactory
	poster         dispatch.Poster
	log            zerolog.Logger

	mu         sync.Mutex
	session    *session.Session
	controller *webview.Controller
}

// Present displays the embedded flow against the host environment and returns
// the live Session. Idempotent: a second call returns the existing Session
// without any new host-level display. Returns nil when the credential is
// empty or the surface cannot be built; presentation failures are logged, not
// fatal.
func (a *AuthSession) Present(env webview.HostEnvironment) *session.Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		return a.session
	}
	if a.jwt == "" {
		a.log.Warn().Msg("cannot present auth flow, credential is empty")
		return nil
	}
	if env == nil {
		a.log.Warn().Msg("cannot present auth flow, host environment is nil")
		return nil
	}

	a.logCredentialClaims()

	poster := a.poster
	var loop *dispatch.Loop
	if poster == nil {
		loop = dispatch.NewLoop()
		poster = loop
	}

	// Teardown may be triggered from the host's goroutine; controller state is
	// only touched on the run loop, so the teardown is posted. Stop drains
	// queued work, which includes the posted teardown.
	var ctrl *webview.Controller
	sess := session.New(a.app.Identifier(), env.Dismiss, func() {
		poster.Post(func() {
			if ctrl != nil {
				ctrl.Teardown()
			}
		})
		if loop != nil {
			loop.Stop()
		}
	}, a.log)

	controller, err := webview.NewController(webview.Config{
		JWT:            a.jwt,
		Environment:    string(a.environment),
		Theme:          string(a.theme),
		BaseURL:        a.app.BaseURL(),
		AllowedOrigins: a.allowedOrigins,
		TrustedDomains: a.trustedDomains,
		Callbacks:      a.callbacks,
		SessionFactory: a.factory,
		Poster:         poster,
		Logger:         a.log,
		OnClose:        sess.Close,
	}, env)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to build embedded session")
		if loop != nil {
			loop.Stop()
		}
		return nil
	}
	ctrl = controller
	controller.Start()

	a.session = sess
	a.controller = controller
	return sess
}

// Cancel deactivates the live Session if there is one. Safe to call before
// any presentation and safe to call repeatedly.
func (a *AuthSession) Cancel() {
	a.mu.Lock()
	sess := a.session
	a.mu.Unlock()

	if sess != nil {
		sess.Close()
	}
}

// Session returns the live Session, or nil before the first presentation.
func (a *AuthSession) Session() *session.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// IsActive reports whether a presented Session exists and is still live.
func (a *AuthSession) IsActive() bool {
	a.mu.Lock()
	sess := a.session
	a.mu.Unlock()

	return sess != nil && sess.IsActive()
}

// logCredentialClaims logs the credential's subject and expiry when it parses
// as a JWT. The parse is unverified and purely diagnostic; an opaque
// credential still presents.
func (a *AuthSession) logCredentialClaims() {
	token, _, err := jwt.NewParser().ParseUnverified(a.jwt, jwt.MapClaims{})
	if err != nil {
		a.log.Debug().Err(err).Msg("credential is not a parseable JWT")
		return
	}

	evt := a.log.Debug()
	if subject, err := token.Claims.GetSubject(); err == nil && subject != "" {
		evt = evt.Str("subject", subject)
	}
	if expiry, err := token.Claims.GetExpirationTime(); err == nil && expiry != nil {
		evt = evt.Time("expiresAt", expiry.Time)
	}
	evt.Msg("presenting auth flow")
}
