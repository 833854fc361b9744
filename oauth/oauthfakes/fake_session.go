// Package oauthfakes provides test doubles for the oauth package.
package oauthfakes

import (
	"net/url"

	"github.com/connectxyz/connect-sdk-go/oauth"
)

var _ oauth.WebAuthSession = (*FakeSession)(nil)

// FakeSession is a scriptable WebAuthSession. Tests drive the completion via
// Complete, or let Cancel report the cancelled-login error.
type FakeSession struct {
	// StartResult is returned from Start. Defaults to true via NewFactory.
	StartResult bool

	StartCalls  int
	CancelCalls int

	// Captured per-attempt arguments.
	AuthURL          *url.URL
	CallbackScheme   string
	PrefersEphemeral bool

	complete oauth.Completion
}

func (f *FakeSession) Start() bool {
	f.StartCalls++
	return f.StartResult
}

func (f *FakeSession) Cancel() {
	f.CancelCalls++
}

// Complete drives the session's completion as the external browser would.
func (f *FakeSession) Complete(callbackURL *url.URL, err error) {
	f.complete(callbackURL, err)
}

// CompleteRaw parses rawURL and drives the completion with it.
func (f *FakeSession) CompleteRaw(rawURL string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		panic(err)
	}
	f.complete(u, nil)
}

// NewFactory returns a factory handing out the given session, wiring the
// handler's completion and capturing the per-attempt arguments.
func NewFactory(session *FakeSession) oauth.SessionFactory {
	session.StartResult = true
	return func(authURL *url.URL, callbackScheme string, prefersEphemeral bool, complete oauth.Completion) oauth.WebAuthSession {
		session.AuthURL = authURL
		session.CallbackScheme = callbackScheme
		session.PrefersEphemeral = prefersEphemeral
		session.complete = complete
		return session
	}
}
