package webview

import (
	"github.com/rs/zerolog"
)

// LoadState is the loading controller's state.
type LoadState int

const (
	// StateLoading: the surface is present but suppressed behind the overlay.
	StateLoading LoadState = iota

	// StateContentReady: the content is visible and interactive; the overlay
	// is gone. Terminal for one presentation.
	StateContentReady

	// StateError: the load failed; the overlay shows the failure and a retry
	// affordance.
	StateError
)

// Message shown on the overlay when the content fails to load.
const loadFailureMessage = "Failed to load"

// LoadingController gates visibility of the content surface until the page
// reports it has rendered usable UI. States: Loading -> ContentReady, with
// Loading -> Error -> Loading on retry.
type LoadingController struct {
	overlay LoadingOverlay
	surface ContentSurface
	reload  func()
	state   LoadState
	log     zerolog.Logger
}

// NewLoadingController builds the controller. reload re-issues the underlying
// page load on retry.
func NewLoadingController(overlay LoadingOverlay, surface ContentSurface, reload func(), log zerolog.Logger) *LoadingController {
	return &LoadingController{
		overlay: overlay,
		surface: surface,
		reload:  reload,
		log:     log,
	}
}

// State returns the current state.
func (c *LoadingController) State() LoadState {
	return c.state
}

// Begin enters Loading: the surface is suppressed and the overlay attached.
func (c *LoadingController) Begin() {
	c.state = StateLoading
	c.surface.SetVisible(false)
	c.surface.SetInteractive(false)
	c.overlay.Show()
}

// ContentReady transitions from the loading presentation to the content
// surface and re-enables interaction. Runs exactly once per presentation; a
// repeated signal is a no-op.
func (c *LoadingController) ContentReady() {
	if c.state == StateContentReady {
		return
	}
	c.state = StateContentReady
	c.overlay.Remove()
	c.surface.SetVisible(true)
	c.surface.SetInteractive(true)
}

// LoadFailed enters Error: the overlay freezes and shows the failure with a
// retry affordance. Ignored once the content is already showing.
func (c *LoadingController) LoadFailed(err error) {
	if c.state == StateContentReady {
		return
	}
	c.log.Warn().Err(err).Msg("content load failed")
	c.state = StateError
	c.overlay.ShowFailure(loadFailureMessage)
}

// Retry resets the loading visuals to their initial step and re-issues the
// page load. Only meaningful from Error.
func (c *LoadingController) Retry() {
	if c.state != StateError {
		return
	}
	c.state = StateLoading
	c.overlay.Reset()
	c.reload()
}
