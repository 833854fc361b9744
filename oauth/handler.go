// Package oauth implements the external-browser OAuth flow layered on top of
// the embedded web session: it launches a mediated authentication session
// against the identity provider, validates the callback redirect against an
// allow-list, extracts parameters from both query and fragment components,
// and reports a typed success or failure. It captures authorization callback
// parameters only; token exchange happens server-side or inside the embedded
// content.
package oauth

import (
	"context"
	"net/url"
	"strings"

	"github.com/connectxyz/connect-sdk-go/internal/dispatch"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// CallbackScheme is the custom URL scheme reserved for OAuth callbacks
	// when no HTTPS (Universal Link style) prefix is configured. Custom
	// schemes can be hijacked by other apps; HTTPS callbacks validated by
	// trusted-domain suffix are preferred in production.
	CallbackScheme = "connectsdk-oauth"

	// CallbackURLKey is the reserved parameter key under which the full
	// callback URL is always included for diagnostics.
	CallbackURLKey = "callback_url"

	// expectedCallbackHost is the only host accepted with the custom scheme.
	expectedCallbackHost = "callback"
)

// DefaultTrustedDomains are the HTTPS callback domain suffixes trusted when
// the handler is not configured with an alternate set.
var DefaultTrustedDomains = []string{"connect.xyz", "zerohash.com"}

// AuthCompletion receives the outcome of one attempt: the merged parameter
// map on success, or exactly one of the typed failures from errors.go.
type AuthCompletion func(params map[string]string, err error)

// Handler coordinates one OAuth attempt at a time. All methods must be called
// on the SDK run loop; session completions arriving on other goroutines are
// re-posted through the configured Poster before any state is touched.
type Handler struct {
	factory        SessionFactory
	trustedDomains []string
	poster         dispatch.Poster
	verifier       *IDTokenVerifier
	log            zerolog.Logger

	session  WebAuthSession
	complete AuthCompletion
	authURL  *url.URL
}

// HandlerOption modifies a Handler instance.
type HandlerOption func(*Handler)

// WithTrustedDomains replaces the HTTPS callback trust set. The slice is
// copied; the trust set is immutable after construction.
func WithTrustedDomains(domains []string) HandlerOption {
	return func(h *Handler) {
		h.trustedDomains = append([]string(nil), domains...)
	}
}

// WithPoster sets the execution context completions are re-posted onto.
func WithPoster(p dispatch.Poster) HandlerOption {
	return func(h *Handler) {
		h.poster = p
	}
}

// WithLogger sets the handler logger.
func WithLogger(log zerolog.Logger) HandlerOption {
	return func(h *Handler) {
		h.log = log
	}
}

// WithIDTokenVerifier enables verification of an id_token callback parameter
// against a configured issuer.
func WithIDTokenVerifier(v *IDTokenVerifier) HandlerOption {
	return func(h *Handler) {
		h.verifier = v
	}
}

// NewHandler builds a Handler around the given session factory.
func NewHandler(factory SessionFactory, options ...HandlerOption) (*Handler, error) {
	if factory == nil {
		return nil, errors.New("[NewHandler] session factory is required")
	}

	h := &Handler{
		factory:        factory,
		trustedDomains: DefaultTrustedDomains,
		poster:         dispatch.Immediate{},
		log:            zerolog.Nop(),
	}
	for _, opt := range options {
		opt(h)
	}
	return h, nil
}

// InProgress reports whether an attempt is currently live.
func (h *Handler) InProgress() bool {
	return h.complete != nil
}

// Authenticate starts one OAuth attempt against rawURL.
//
// callbackURLPrefix, when set to an HTTPS URL, selects the Universal-Link
// style callback scheme; otherwise the reserved custom scheme is expected.
// prefersEphemeral requests a browser context that shares no cookies across
// attempts. complete is invoked exactly once with the outcome. A second call
// while an attempt is live fails that second call with ErrAttemptInProgress
// and leaves the first attempt untouched.
func (h *Handler) Authenticate(rawURL, callbackURLPrefix string, prefersEphemeral bool, complete AuthCompletion) {
	if h.InProgress() {
		evt := h.log.Warn().Str("url", rawURL)
		if h.authURL != nil {
			evt = evt.Str("activeURL", h.authURL.String())
		}
		evt.Msg("authenticate rejected, attempt already in progress")
		complete(nil, ErrAttemptInProgress)
		return
	}

	callbackScheme := CallbackScheme
	if prefix, err := url.Parse(callbackURLPrefix); callbackURLPrefix != "" && err == nil && prefix.Scheme == "https" {
		callbackScheme = "https"
	}

	authURL, err := url.Parse(rawURL)
	if err != nil || authURL.Scheme == "" {
		complete(nil, ErrInvalidURL)
		return
	}

	h.complete = complete
	h.authURL = authURL
	h.session = h.factory(authURL, callbackScheme, prefersEphemeral, func(callbackURL *url.URL, err error) {
		h.poster.Post(func() {
			h.handleResult(callbackURL, err)
		})
	})

	if !h.session.Start() {
		h.finish(nil, errors.Wrap(ErrSessionFailed, "failed to start authentication session"))
	}
}

// Cancel aborts any live attempt: the underlying session is cancelled, the
// pending completion resolves synchronously with ErrUserCancelled, and all
// internal references are cleared. Idempotent; a no-op without a live
// attempt.
func (h *Handler) Cancel() {
	if h.session != nil {
		h.session.Cancel()
	}
	h.finish(nil, ErrUserCancelled)
}

func (h *Handler) handleResult(callbackURL *url.URL, err error) {
	if h.complete == nil {
		// Already resolved, e.g. by Cancel; the late session completion is
		// dropped.
		return
	}

	if err != nil {
		if errors.Is(err, ErrLoginCancelled) {
			h.finish(nil, ErrUserCancelled)
			return
		}
		// Any other session error propagates unmodified.
		h.finish(nil, err)
		return
	}

	if callbackURL == nil {
		h.finish(nil, ErrMissingCallback)
		return
	}

	if !h.validateCallbackURL(callbackURL) {
		h.finish(nil, errors.Wrap(ErrInvalidCallbackURL, callbackURL.String()))
		return
	}

	params := parseCallbackParameters(callbackURL)
	if len(params) == 0 {
		h.finish(nil, ErrMissingParameters)
		return
	}
	params[CallbackURLKey] = callbackURL.String()

	if h.verifier != nil {
		if rawIDToken, ok := params["id_token"]; ok {
			if err := h.verifier.Verify(context.Background(), rawIDToken); err != nil {
				h.finish(nil, errors.Wrap(ErrInvalidIDToken, err.Error()))
				return
			}
		}
	}

	h.finish(params, nil)
}

// finish resolves the pending completion and clears all references. Cleanup
// runs exactly once regardless of which exit path triggered it.
func (h *Handler) finish(params map[string]string, err error) {
	complete := h.complete
	h.session = nil
	h.complete = nil
	h.authURL = nil
	if complete != nil {
		complete(params, err)
	}
}

// validateCallbackURL accepts a callback only when (a) its scheme is the
// reserved custom scheme and its host matches exactly, or (b) its scheme is
// HTTPS and its host suffix-matches a trusted domain. Everything else is
// rejected.
func (h *Handler) validateCallbackURL(u *url.URL) bool {
	switch u.Scheme {
	case "https":
		host := u.Hostname()
		if host == "" {
			return false
		}
		for _, domain := range h.trustedDomains {
			if strings.HasSuffix(host, domain) {
				return true
			}
		}
		return false
	case CallbackScheme:
		return u.Host == expectedCallbackHost
	}
	return false
}

// parseCallbackParameters merges parameters from the query component
// (authorization-code flow) and the fragment component (implicit flow).
// Fragment pairs win over query pairs on duplicate keys; within the fragment,
// pairs split on the first "=" and percent-decoding applies to values only.
func parseCallbackParameters(u *url.URL) map[string]string {
	params := make(map[string]string)

	for key, values := range u.Query() {
		if len(values) > 0 {
			params[key] = values[len(values)-1]
		}
	}

	if fragment := u.EscapedFragment(); fragment != "" {
		for _, pair := range strings.Split(fragment, "&") {
			key, rawValue, found := strings.Cut(pair, "=")
			if !found || key == "" {
				continue
			}
			value, err := url.PathUnescape(rawValue)
			if err != nil {
				value = rawValue
			}
			params[key] = value
		}
	}

	return params
}
