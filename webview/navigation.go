package webview

import (
	"github.com/connectxyz/connect-sdk-go/oauth"
	"github.com/rs/zerolog"
)

// Mobile target hints carried by navigate messages.
const (
	TargetInApp = "in_app"
	TargetOAuth = "oauth"
)

// Authenticator starts an external OAuth attempt. Satisfied by oauth.Handler.
type Authenticator interface {
	Authenticate(rawURL, callbackURLPrefix string, prefersEphemeral bool, complete oauth.AuthCompletion)
	Cancel()
}

// Router interprets a navigate message's target hint and dispatches the URL
// to one of three destinations: a same-session in-app sub-browser, the OAuth
// coordinator, or the external browser. One decision per message; a second
// navigate simply starts a second independent action.
type Router struct {
	host          Host
	opener        ExternalOpener
	authenticator Authenticator
	theme         string
	onOAuthResult oauth.AuthCompletion
	log           zerolog.Logger
}

// NewRouter builds a Router. onOAuthResult receives the outcome of any OAuth
// attempt the router starts.
func NewRouter(host Host, opener ExternalOpener, authenticator Authenticator, theme string, onOAuthResult oauth.AuthCompletion, log zerolog.Logger) *Router {
	return &Router{
		host:          host,
		opener:        opener,
		authenticator: authenticator,
		theme:         theme,
		onOAuthResult: onOAuthResult,
		log:           log,
	}
}

// Route dispatches one navigate message.
func (r *Router) Route(rawURL, mobileTarget string) {
	switch mobileTarget {
	case TargetInApp:
		r.host.PushBrowser(rawURL, r.theme)

	case TargetOAuth:
		r.authenticator.Authenticate(rawURL, "", true, r.onOAuthResult)

	default:
		// Any other value, or no hint at all, opens externally.
		if !r.opener.CanOpen(rawURL) {
			r.log.Warn().Str("url", rawURL).Msg("cannot open URL externally")
			return
		}
		if err := r.opener.Open(rawURL); err != nil {
			r.log.Warn().Err(err).Str("url", rawURL).Msg("external browser open failed")
		}
	}
}
