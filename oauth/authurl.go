package oauth

import (
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// AuthorizationRequest describes an authorization-code request against an
// identity provider, for hosts that build the IdP URL themselves rather than
// receiving it from the embedded content.
type AuthorizationRequest struct {
	ClientID    string
	AuthURL     string // the provider's authorization endpoint
	RedirectURI string
	Scopes      []string
	State       string
}

// BuildAuthorizationURL renders the request as an authorization URL with a
// PKCE S256 challenge attached. The returned verifier must be retained for
// the token exchange performed by the party completing the flow.
func BuildAuthorizationURL(req AuthorizationRequest) (authURL, codeVerifier string, err error) {
	if req.ClientID == "" {
		return "", "", errors.New("[BuildAuthorizationURL] client ID is required")
	}
	if req.AuthURL == "" {
		return "", "", errors.New("[BuildAuthorizationURL] authorization endpoint is required")
	}

	cfg := oauth2.Config{
		ClientID:    req.ClientID,
		RedirectURL: req.RedirectURI,
		Scopes:      req.Scopes,
		Endpoint:    oauth2.Endpoint{AuthURL: req.AuthURL},
	}

	verifier := oauth2.GenerateVerifier()
	return cfg.AuthCodeURL(req.State, oauth2.S256ChallengeOption(verifier)), verifier, nil
}
