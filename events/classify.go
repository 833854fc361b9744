package events

import (
	"strings"

	"github.com/connectxyz/connect-sdk-go/internal/utils"
	"github.com/pkg/errors"
)

// Sentinel errors for the error categories the content reports.
var (
	ErrNetwork              = errors.New("network error")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrWebViewFailure       = errors.New("webview error")
	ErrSessionExpired       = errors.New("session has expired")
	ErrUserCancelled        = errors.New("user cancelled the operation")
	ErrUnknown              = errors.New("unknown error")
)

// Classify maps an ErrorEvent onto one of the sentinel error categories based
// on the payload's type field, wrapped with the reported message. Unrecognized
// or missing types classify as ErrUnknown.
func (e ErrorEvent) Classify() error {
	kind, _ := utils.StringValue(e.Data, "type")
	message, ok := utils.StringValue(e.Data, "message")
	if !ok {
		message = "An error occurred"
	}

	var sentinel error
	switch strings.ToLower(kind) {
	case "network":
		sentinel = ErrNetwork
	case "authentication":
		sentinel = ErrAuthenticationFailed
	case "configuration":
		sentinel = ErrInvalidConfiguration
	case "webview":
		sentinel = ErrWebViewFailure
	case "session_expired":
		sentinel = ErrSessionExpired
	case "cancelled":
		sentinel = ErrUserCancelled
	default:
		sentinel = ErrUnknown
	}
	return errors.Wrap(sentinel, message)
}
