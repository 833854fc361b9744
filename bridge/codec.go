// Package bridge implements the trust-boundary message codec between the
// embedded web content and the native host. Inbound bodies are validated
// against an origin allow-list and a fixed message vocabulary before anything
// else sees them; outbound envelopes are serialized as a single JSON document
// so no content-controlled value is ever spliced into a script by string
// concatenation.
package bridge

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/pkg/errors"
)

// Inbound message types recognized across the content/native boundary.
const (
	TypePageReady    = "page-ready"
	TypeContentReady = "content-ready"
	TypeNavigate     = "navigate"
	TypeClose        = "close"
	TypeError        = "error"
	TypeEvent        = "event"
	TypeDeposit      = "deposit"
)

// Outbound message types sent into the content.
const (
	TypeJWT          = "jwt"
	TypeConfig       = "config"
	TypeOAuthSuccess = "oauth-success"
	TypeOAuthError   = "oauth-error"
)

var (
	ErrUnauthorizedOrigin = errors.New("message origin not in allow-list")
	ErrInvalidBody        = errors.New("message body is not a string")
	ErrMalformedJSON      = errors.New("message body is not a JSON object")
	ErrMissingType        = errors.New("message has no string type field")
	ErrUnknownType        = errors.New("unrecognized message type")
	ErrInvalidMessageType = errors.New("outbound message type contains disallowed characters")
)

var recognizedTypes = map[string]struct{}{
	TypePageReady:    {},
	TypeContentReady: {},
	TypeNavigate:     {},
	TypeClose:        {},
	TypeError:        {},
	TypeEvent:        {},
	TypeDeposit:      {},
}

// outboundTypeRe restricts outbound types to a safe character class before
// they are embedded in a generated script.
var outboundTypeRe = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Message is a decoded inbound envelope.
type Message struct {
	// Type is the validated message type.
	Type string

	// Data is the nested data object, empty when the envelope omitted it.
	Data map[string]any

	// Raw is the original JSON string, kept for pass-through and debugging.
	Raw string
}

// Decoder validates and parses inbound envelopes. The allow-list is fixed at
// construction and never mutated afterwards.
type Decoder struct {
	allowedOrigins map[string]struct{}
}

// NewDecoder builds a Decoder trusting exactly the given origin hosts.
func NewDecoder(allowedOrigins []string) *Decoder {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}
	return &Decoder{allowedOrigins: origins}
}

// Decode validates the raw message body against the origin allow-list and the
// envelope contract. A failed decode has no side effects; callers log and
// drop. The origin check runs first and rejects unconditionally, regardless
// of payload validity.
func (d *Decoder) Decode(rawBody any, originHost string) (*Message, error) {
	if _, ok := d.allowedOrigins[originHost]; !ok {
		return nil, errors.Wrap(ErrUnauthorizedOrigin, originHost)
	}

	body, ok := rawBody.(string)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidBody, "%T", rawBody)
	}

	var envelope map[string]any
	if err := json.Unmarshal([]byte(body), &envelope); err != nil {
		return nil, errors.Wrap(ErrMalformedJSON, err.Error())
	}

	msgType, ok := envelope["type"].(string)
	if !ok {
		return nil, ErrMissingType
	}
	if _, ok := recognizedTypes[msgType]; !ok {
		return nil, errors.Wrap(ErrUnknownType, msgType)
	}

	data, ok := envelope["data"].(map[string]any)
	if !ok {
		data = map[string]any{}
	}

	return &Message{Type: msgType, Data: data, Raw: body}, nil
}

// Encode builds the single script statement that delivers an outbound
// envelope into the content's message channel. The type is validated against
// [A-Za-z0-9-]+ and the whole envelope is marshalled at once; any failure
// aborts the send, there is no retry.
func Encode(msgType string, data map[string]any) (string, error) {
	if !outboundTypeRe.MatchString(msgType) {
		return "", errors.Wrap(ErrInvalidMessageType, msgType)
	}
	if data == nil {
		data = map[string]any{}
	}

	payload, err := json.Marshal(map[string]any{
		"type": msgType,
		"data": data,
	})
	if err != nil {
		return "", errors.Wrap(err, "[bridge.Encode] marshal envelope")
	}

	return fmt.Sprintf("window.postMessage(%s);", payload), nil
}
