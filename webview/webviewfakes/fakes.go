// Package webviewfakes provides test doubles for the webview package's host
// interfaces.
package webviewfakes

import (
	"github.com/connectxyz/connect-sdk-go/webview"
	"github.com/pkg/errors"
)

var (
	_ webview.ContentSurface  = (*FakeSurface)(nil)
	_ webview.LoadingOverlay  = (*FakeOverlay)(nil)
	_ webview.HostEnvironment = (*FakeEnvironment)(nil)
)

// FakeSurface records everything the SDK does to the embedded surface and
// lets tests push inbound messages through the registered handler.
type FakeSurface struct {
	Loads       []string
	Scripts     []string
	Visible     bool
	Interactive bool

	// LoadErr, when set, fails every Load call.
	LoadErr error

	// ScriptErr, when set, fails every EvaluateScript call.
	ScriptErr error

	handler func(body any, originHost string)
}

func (f *FakeSurface) Load(rawURL string) error {
	if f.LoadErr != nil {
		return f.LoadErr
	}
	f.Loads = append(f.Loads, rawURL)
	return nil
}

func (f *FakeSurface) EvaluateScript(script string) error {
	if f.ScriptErr != nil {
		return f.ScriptErr
	}
	f.Scripts = append(f.Scripts, script)
	return nil
}

func (f *FakeSurface) SetVisible(visible bool)     { f.Visible = visible }
func (f *FakeSurface) SetInteractive(enabled bool) { f.Interactive = enabled }

func (f *FakeSurface) SetMessageHandler(handler func(body any, originHost string)) {
	f.handler = handler
}

// Deliver pushes an inbound message body as the page would.
func (f *FakeSurface) Deliver(body any, originHost string) {
	if f.handler == nil {
		panic("no message handler registered")
	}
	f.handler(body, originHost)
}

// FakeOverlay records loading overlay transitions.
type FakeOverlay struct {
	ShowCalls    int
	RemoveCalls  int
	ResetCalls   int
	FailureTexts []string
}

func (f *FakeOverlay) Show()                      { f.ShowCalls++ }
func (f *FakeOverlay) Remove()                    { f.RemoveCalls++ }
func (f *FakeOverlay) Reset()                     { f.ResetCalls++ }
func (f *FakeOverlay) ShowFailure(message string) { f.FailureTexts = append(f.FailureTexts, message) }

// FakeEnvironment is a scriptable host environment.
type FakeEnvironment struct {
	Surface *FakeSurface
	Overlay *FakeOverlay

	DisplayCalls  int
	DismissCalls  int
	PushedURLs    []string
	PushedThemes  []string
	OpenedURLs    []string
	OpenableURLs  map[string]bool // nil means everything is openable
	OpenErr       error
	DisplayThemes []string
}

// NewEnvironment builds a fake environment with a fresh surface and overlay.
func NewEnvironment() *FakeEnvironment {
	return &FakeEnvironment{
		Surface: &FakeSurface{},
		Overlay: &FakeOverlay{},
	}
}

func (f *FakeEnvironment) NewSurface() webview.ContentSurface { return f.Surface }

func (f *FakeEnvironment) NewLoadingOverlay(theme string) webview.LoadingOverlay { return f.Overlay }

func (f *FakeEnvironment) DisplaySurface(surface webview.ContentSurface, theme string) {
	f.DisplayCalls++
	f.DisplayThemes = append(f.DisplayThemes, theme)
}

func (f *FakeEnvironment) Dismiss() { f.DismissCalls++ }

func (f *FakeEnvironment) PushBrowser(rawURL, theme string) {
	f.PushedURLs = append(f.PushedURLs, rawURL)
	f.PushedThemes = append(f.PushedThemes, theme)
}

func (f *FakeEnvironment) CanOpen(rawURL string) bool {
	if f.OpenableURLs == nil {
		return true
	}
	return f.OpenableURLs[rawURL]
}

func (f *FakeEnvironment) Open(rawURL string) error {
	if f.OpenErr != nil {
		return errors.Wrap(f.OpenErr, rawURL)
	}
	f.OpenedURLs = append(f.OpenedURLs, rawURL)
	return nil
}
