package main

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/connectxyz/connect-sdk-go/webview"
)

// consoleEnvironment renders the host side of the SDK onto the console: the
// surface and overlay log what a real UI toolkit would draw, and inbound
// messages are replayed through the registered handler.
type consoleEnvironment struct {
	log       zerolog.Logger
	surface   *consoleSurface
	dismissed chan struct{}
	once      sync.Once
}

var _ webview.HostEnvironment = (*consoleEnvironment)(nil)

func newConsoleEnvironment(log zerolog.Logger) *consoleEnvironment {
	return &consoleEnvironment{
		log:       log,
		surface:   &consoleSurface{log: log},
		dismissed: make(chan struct{}),
	}
}

func (e *consoleEnvironment) NewSurface() webview.ContentSurface {
	return e.surface
}

func (e *consoleEnvironment) NewLoadingOverlay(theme string) webview.LoadingOverlay {
	return &consoleOverlay{log: e.log, theme: theme}
}

func (e *consoleEnvironment) DisplaySurface(surface webview.ContentSurface, theme string) {
	e.log.Info().Str("theme", theme).Msg("host: surface displayed")
}

func (e *consoleEnvironment) Dismiss() {
	e.log.Info().Msg("host: surface dismissed")
	e.once.Do(func() { close(e.dismissed) })
}

func (e *consoleEnvironment) PushBrowser(rawURL, theme string) {
	e.log.Info().Str("url", rawURL).Str("theme", theme).Msg("host: in-app browser pushed")
}

func (e *consoleEnvironment) CanOpen(rawURL string) bool { return true }

func (e *consoleEnvironment) Open(rawURL string) error {
	e.log.Info().Str("url", rawURL).Msg("host: opened external browser")
	return nil
}

// replay pushes each raw message through the surface's message handler with a
// small gap, as the embedded page would post them.
func (e *consoleEnvironment) replay(messages []string, origin string) {
	for _, message := range messages {
		time.Sleep(200 * time.Millisecond)
		e.surface.deliver(message, origin)
	}
}

type consoleSurface struct {
	log     zerolog.Logger
	mu      sync.Mutex
	handler func(body any, originHost string)
}

func (s *consoleSurface) Load(rawURL string) error {
	s.log.Info().Str("url", rawURL).Msg("surface: loading")
	return nil
}

func (s *consoleSurface) EvaluateScript(script string) error {
	s.log.Info().Str("script", script).Msg("surface: script evaluated")
	return nil
}

func (s *consoleSurface) SetVisible(visible bool) {
	s.log.Debug().Bool("visible", visible).Msg("surface: visibility changed")
}

func (s *consoleSurface) SetInteractive(enabled bool) {
	s.log.Debug().Bool("interactive", enabled).Msg("surface: interactivity changed")
}

func (s *consoleSurface) SetMessageHandler(handler func(body any, originHost string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = handler
}

func (s *consoleSurface) deliver(body, origin string) {
	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()
	if handler != nil {
		handler(body, origin)
	}
}

type consoleOverlay struct {
	log   zerolog.Logger
	theme string
}

func (o *consoleOverlay) Show() {
	o.log.Info().Str("theme", o.theme).Msg("overlay: loading")
}

func (o *consoleOverlay) ShowFailure(message string) {
	o.log.Warn().Str("message", message).Msg("overlay: load failed")
}

func (o *consoleOverlay) Reset() {
	o.log.Info().Msg("overlay: reset")
}

func (o *consoleOverlay) Remove() {
	o.log.Info().Msg("overlay: removed")
}
