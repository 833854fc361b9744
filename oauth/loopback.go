package oauth

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"sync"

	"github.com/connectxyz/connect-sdk-go/internal/browser"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// DefaultLoopbackAddr is the loopback listen address used when the host does
// not supply its own session factory. The registered redirect URI must point
// at the same port.
const DefaultLoopbackAddr = "127.0.0.1:8910"

// NewLoopbackSessionFactory returns a SessionFactory whose sessions open the
// authorization URL in the system browser and capture the redirect on a
// loopback HTTP listener (the RFC 8252 native-app flow). It suits hosts whose
// registered callback points at the loopback address; platform hosts with an
// OS-mediated authentication session supply their own factory instead.
//
// The captured redirect is re-expressed under the reserved custom scheme and
// callback host before delivery, so it passes the handler's callback
// validation like any platform-delivered redirect would.
//
// listenAddr is the address to listen on, e.g. "127.0.0.1:8910"; port 0 picks
// a free port. openBrowser may be nil, in which case the system default
// browser is used. The ephemeral preference is inherently satisfied: no
// cookies are retained between attempts by the SDK itself.
func NewLoopbackSessionFactory(listenAddr string, openBrowser func(rawURL string) error, log zerolog.Logger) SessionFactory {
	if openBrowser == nil {
		openBrowser = browser.Open
	}
	return func(authURL *url.URL, callbackScheme string, prefersEphemeral bool, complete Completion) WebAuthSession {
		return &loopbackSession{
			authURL:     authURL,
			listenAddr:  listenAddr,
			openBrowser: openBrowser,
			complete:    complete,
			log:         log,
		}
	}
}

type loopbackSession struct {
	authURL     *url.URL
	listenAddr  string
	openBrowser func(rawURL string) error
	complete    Completion
	log         zerolog.Logger

	server *http.Server
	addr   string
	once   sync.Once
}

var _ WebAuthSession = (*loopbackSession)(nil)

func (s *loopbackSession) Start() bool {
	listener, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		s.log.Error().Err(err).Str("addr", s.listenAddr).Msg("loopback listener failed")
		return false
	}

	s.addr = listener.Addr().String()

	router := chi.NewRouter()
	router.Get("/*", s.handleRedirect)
	s.server = &http.Server{Handler: router}

	go func() {
		_ = s.server.Serve(listener)
	}()

	if err := s.openBrowser(s.authURL.String()); err != nil {
		s.log.Error().Err(err).Msg("failed to open system browser")
		_ = s.server.Close()
		return false
	}
	return true
}

func (s *loopbackSession) Cancel() {
	s.deliver(nil, ErrLoginCancelled)
	if s.server != nil {
		_ = s.server.Close()
	}
}

// handleRedirect captures the first request on the listener as the callback
// URL and tears the listener down. The redirect arrives as plain HTTP on the
// loopback address; it is rewritten into the custom-scheme callback form the
// handler validates, preserving the query parameters.
func (s *loopbackSession) handleRedirect(w http.ResponseWriter, r *http.Request) {
	callbackURL := &url.URL{
		Scheme:   CallbackScheme,
		Host:     expectedCallbackHost,
		RawQuery: r.URL.RawQuery,
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Authentication complete. You can close this window and return to the app."))

	s.deliver(callbackURL, nil)
	go func() {
		_ = s.server.Shutdown(context.Background())
	}()
}

// deliver invokes the completion at most once.
func (s *loopbackSession) deliver(callbackURL *url.URL, err error) {
	s.once.Do(func() {
		s.complete(callbackURL, err)
	})
}
