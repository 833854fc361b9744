// Package webview drives one embedded web session: it gates the
// loading-to-content transition, routes navigation intents, and wires the
// message bridge between the content and the host's callback handlers. The
// host toolkit's presentation chrome stays behind the interfaces in this
// file; the SDK never owns a view.
package webview

// ContentSurface is the embedded web surface the host toolkit supplies. The
// SDK keeps the surface present but invisible and non-interactive until the
// content signals readiness.
//
// Implementations may deliver inbound messages on any goroutine; the SDK
// re-posts them onto its run loop before touching state.
type ContentSurface interface {
	// Load starts (or restarts) loading the given URL.
	Load(rawURL string) error

	// EvaluateScript executes a script inside the page.
	EvaluateScript(script string) error

	// SetVisible toggles the surface's visibility.
	SetVisible(visible bool)

	// SetInteractive toggles user interaction on the surface.
	SetInteractive(enabled bool)

	// SetMessageHandler registers the sink for messages posted by the page.
	// originHost is the security origin host of the posting frame.
	SetMessageHandler(handler func(body any, originHost string))
}

// LoadingOverlay is the loading presentation shown over the surface until the
// content is ready. A close affordance is expected to be part of the overlay
// and wired by the host to Controller.RequestClose.
type LoadingOverlay interface {
	// Show attaches the overlay and starts its animation.
	Show()

	// ShowFailure freezes the animation and displays a failure message with a
	// retry affordance (wired by the host to Controller.RequestRetry).
	ShowFailure(message string)

	// Reset returns the overlay to its initial animation step.
	Reset()

	// Remove detaches the overlay and releases its resources.
	Remove()
}

// Host is the presentation environment for an embedded flow.
type Host interface {
	// DisplaySurface presents the primary surface full screen, without
	// navigation chrome.
	DisplaySurface(surface ContentSurface, theme string)

	// Dismiss tears down whatever DisplaySurface presented.
	Dismiss()

	// PushBrowser opens a same-app sub-browser for the given URL with its own
	// navigation chrome visible, preserving the theme.
	PushBrowser(rawURL, theme string)
}

// ExternalOpener opens URLs in the device's external browser application.
type ExternalOpener interface {
	CanOpen(rawURL string) bool
	Open(rawURL string) error
}

// HostEnvironment bundles everything the host supplies for one presentation.
type HostEnvironment interface {
	Host
	ExternalOpener

	// NewSurface constructs the embedded surface for this presentation.
	NewSurface() ContentSurface

	// NewLoadingOverlay constructs the loading presentation for the theme.
	NewLoadingOverlay(theme string) LoadingOverlay
}
