package connectsdk

import (
	"github.com/rs/zerolog"

	"github.com/connectxyz/connect-sdk-go/events"
	"github.com/connectxyz/connect-sdk-go/internal/dispatch"
	"github.com/connectxyz/connect-sdk-go/oauth"
)

// Option modifies a configured flow before presentation.
type Option func(*AuthSession)

// WithEnvironment selects the backend environment. Defaults to production.
func WithEnvironment(environment Environment) Option {
	return func(a *AuthSession) {
		a.environment = environment
	}
}

// WithTheme selects the visual theme. Defaults to system.
func WithTheme(theme Theme) Option {
	return func(a *AuthSession) {
		a.theme = theme
	}
}

// WithCallbacks registers the host's event handler set.
func WithCallbacks(callbacks events.AuthCallbacks) Option {
	return func(a *AuthSession) {
		a.callbacks = callbacks
	}
}

// WithLogger sets the SDK logger. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *AuthSession) {
		a.log = log
	}
}

// WithAllowedOrigins overrides the inbound message origin allow-list.
func WithAllowedOrigins(origins []string) Option {
	return func(a *AuthSession) {
		a.allowedOrigins = append([]string(nil), origins...)
	}
}

// WithTrustedDomains overrides the HTTPS OAuth callback trust set.
func WithTrustedDomains(domains []string) Option {
	return func(a *AuthSession) {
		a.trustedDomains = append([]string(nil), domains...)
	}
}

// WithSessionFactory overrides how external web-auth sessions are created.
// Platform hosts with an OS-mediated authentication session supply their own
// factory here; the default opens the system browser against a loopback
// redirect listener.
func WithSessionFactory(factory oauth.SessionFactory) Option {
	return func(a *AuthSession) {
		a.factory = factory
	}
}

// WithPoster overrides the serial execution context all SDK state runs on.
// Defaults to a dedicated run loop per presentation.
func WithPoster(poster dispatch.Poster) Option {
	return func(a *AuthSession) {
		a.poster = poster
	}
}

// ConfigureAuth creates a not-yet-presented auth flow for the given JWT
// credential. The flow becomes a live Session on the first Present call.
func ConfigureAuth(jwt string, options ...Option) *AuthSession {
	a := &AuthSession{
		app:            AppAuth,
		jwt:            jwt,
		environment:    EnvironmentProduction,
		theme:          ThemeSystem,
		allowedOrigins: append([]string(nil), DefaultAllowedOrigins...),
		trustedDomains: append([]string(nil), oauth.DefaultTrustedDomains...),
		log:            zerolog.Nop(),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}
