// Package connectsdk is the host-facing entry point of the Connect SDK. It
// configures an embedded web-hosted flow, presents it against a host-supplied
// environment and delivers typed events back through registered callbacks.
package connectsdk

// Environment selects which backend the embedded content talks to.
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

// Theme selects the visual appearance handed to the embedded content and the
// host chrome.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// App identifies one purpose-specific embedded experience. The flow
// identifier routes inside the hosted content via the URL fragment.
type App struct {
	identifier string
}

// AppAuth is the authentication/deposit flow, currently the only flow.
var AppAuth = App{identifier: "auth"}

const baseContentURL = "https://sdk.connect.xyz/mobile/#"

// Identifier returns the flow identifier.
func (a App) Identifier() string {
	return a.identifier
}

// BaseURL returns the hosted content endpoint for this flow.
func (a App) BaseURL() string {
	return baseContentURL + a.identifier
}

// DefaultAllowedOrigins is the inbound message origin allow-list applied when
// the host does not override it.
var DefaultAllowedOrigins = []string{"sdk.connect.xyz"}
