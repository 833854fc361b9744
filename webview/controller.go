package webview

import (
	"github.com/connectxyz/connect-sdk-go/bridge"
	"github.com/connectxyz/connect-sdk-go/events"
	"github.com/connectxyz/connect-sdk-go/internal/dispatch"
	"github.com/connectxyz/connect-sdk-go/oauth"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Config carries everything the controller needs for one embedded session.
type Config struct {
	JWT         string
	Environment string
	Theme       string
	BaseURL     string

	// AllowedOrigins is the inbound message origin allow-list.
	AllowedOrigins []string

	// TrustedDomains is the HTTPS OAuth callback trust set.
	TrustedDomains []string

	// Callbacks is the host-registered handler set.
	Callbacks events.AuthCallbacks

	// SessionFactory builds web-auth sessions for OAuth attempts. Defaults
	// to the loopback factory.
	SessionFactory oauth.SessionFactory

	// Poster is the run loop all state mutation is confined to. Defaults to
	// inline execution.
	Poster dispatch.Poster

	Logger zerolog.Logger

	// OnClose is invoked after the close callback has fanned out, when the
	// flow is closing for any reason (content close message or overlay close
	// affordance).
	OnClose func()
}

// Controller owns one embedded web session end to end: surface lifecycle,
// loading gate, message bridge, navigation routing and OAuth reconciliation.
type Controller struct {
	surface   ContentSurface
	host      Host
	messenger *bridge.Messenger
	loading   *LoadingController
	router    *Router
	oauth     *oauth.Handler
	events    *events.Dispatcher
	poster    dispatch.Poster
	log       zerolog.Logger

	baseURL string
	theme   string
	onClose func()
	closed  bool
}

var _ bridge.Delegate = (*Controller)(nil)

// NewController wires the embedded session against the host environment. The
// surface and overlay are constructed here; nothing is displayed until Start.
func NewController(cfg Config, env HostEnvironment) (*Controller, error) {
	if env == nil {
		return nil, errors.New("[NewController] host environment is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("[NewController] base URL is required")
	}

	poster := cfg.Poster
	if poster == nil {
		poster = dispatch.Immediate{}
	}
	factory := cfg.SessionFactory
	if factory == nil {
		factory = oauth.NewLoopbackSessionFactory(oauth.DefaultLoopbackAddr, nil, cfg.Logger)
	}

	c := &Controller{
		surface: env.NewSurface(),
		host:    env,
		poster:  poster,
		log:     cfg.Logger,
		baseURL: cfg.BaseURL,
		theme:   cfg.Theme,
		onClose: cfg.OnClose,
	}

	c.messenger = bridge.NewMessenger(c.surface, cfg.JWT, cfg.Environment, cfg.Theme, cfg.AllowedOrigins, c, cfg.Logger)
	c.loading = NewLoadingController(env.NewLoadingOverlay(cfg.Theme), c.surface, c.loadContent, cfg.Logger)
	c.events = events.NewDispatcher(cfg.Callbacks, cfg.Logger)

	handler, err := oauth.NewHandler(factory,
		oauth.WithTrustedDomains(cfg.TrustedDomains),
		oauth.WithPoster(poster),
		oauth.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[NewController] oauth handler")
	}
	c.oauth = handler
	c.router = NewRouter(env, env, handler, cfg.Theme, c.oauthCompleted, cfg.Logger)

	// Messages may arrive on a notification thread; re-post before any state
	// is touched.
	c.surface.SetMessageHandler(func(body any, originHost string) {
		c.poster.Post(func() {
			c.messenger.Receive(body, originHost)
		})
	})

	return c, nil
}

// Start displays the surface, enters the loading state and begins the page
// load.
func (c *Controller) Start() {
	c.host.DisplaySurface(c.surface, c.theme)
	c.loading.Begin()
	c.loadContent()
}

// Teardown abandons any in-flight OAuth attempt. Called when the session
// deactivates; further OAuth outcomes are not reported into the surface.
func (c *Controller) Teardown() {
	c.closed = true
	c.oauth.Cancel()
}

// Loading returns the loading controller, exposed for host load-failure
// reporting through the typed methods below and for tests.
func (c *Controller) Loading() *LoadingController {
	return c.loading
}

// NotifyLoadFailed reports a page load failure from the host surface. Safe to
// call from any goroutine.
func (c *Controller) NotifyLoadFailed(err error) {
	c.poster.Post(func() {
		c.loading.LoadFailed(err)
	})
}

// RequestRetry is wired to the overlay's retry affordance.
func (c *Controller) RequestRetry() {
	c.poster.Post(func() {
		c.loading.Retry()
	})
}

// RequestClose is wired to the overlay's close affordance; it takes the same
// path as a close message from the content.
func (c *Controller) RequestClose() {
	c.poster.Post(func() {
		c.CloseRequested()
	})
}

func (c *Controller) loadContent() {
	if err := c.surface.Load(c.baseURL); err != nil {
		c.loading.LoadFailed(err)
	}
}

// PageReady is informational; the messenger has already pushed the initial
// credential and configuration messages.
func (c *Controller) PageReady() {}

// ContentReady runs the one-shot loading-to-content transition.
func (c *Controller) ContentReady() {
	c.loading.ContentReady()
}

// Navigate dispatches a navigate message through the intent router.
func (c *Controller) Navigate(url, mobileTarget string) {
	c.router.Route(url, mobileTarget)
}

// CloseRequested fans out the close callback and closes the flow.
func (c *Controller) CloseRequested() {
	if c.closed {
		return
	}
	c.events.HandleClose()
	if c.onClose != nil {
		c.onClose()
	}
}

// ErrorReceived forwards an error payload to the host's error handler.
func (c *Controller) ErrorReceived(data map[string]any, raw string) {
	c.events.HandleError(data, raw)
}

// EventReceived forwards a generic event payload.
func (c *Controller) EventReceived(data map[string]any, raw string) {
	c.events.HandleEvent(data, raw)
}

// DepositReceived forwards a deposit payload.
func (c *Controller) DepositReceived(data map[string]any, raw string) {
	c.events.HandleDeposit(data, raw)
}

// oauthCompleted reconciles an OAuth outcome back into the embedded session
// as a simplified success/error signal.
func (c *Controller) oauthCompleted(params map[string]string, err error) {
	if c.closed {
		return
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("oauth attempt failed")
		c.messenger.SendOAuthResult(false, "", err.Error())
		return
	}

	connectionID, ok := params["connectionId"]
	if !ok {
		c.messenger.SendOAuthResult(false, "", "")
		return
	}
	c.messenger.SendOAuthResult(true, connectionID, "")
}
