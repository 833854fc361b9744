package bridge

import (
	"github.com/connectxyz/connect-sdk-go/internal/utils"
	"github.com/rs/zerolog"
)

// Text sent with an oauth-error envelope when no more specific message exists.
const defaultOAuthErrorText = "Error processing the data."

// ScriptEvaluator is the outbound half of the content surface: it executes a
// script inside the embedded page. The webview package's ContentSurface
// satisfies it.
type ScriptEvaluator interface {
	EvaluateScript(script string) error
}

// Delegate receives validated inbound messages, one method per message kind.
// All methods are invoked on the SDK run loop.
type Delegate interface {
	PageReady()
	ContentReady()
	Navigate(url string, mobileTarget string)
	CloseRequested()
	ErrorReceived(data map[string]any, raw string)
	EventReceived(data map[string]any, raw string)
	DepositReceived(data map[string]any, raw string)
}

// Messenger binds the codec to one embedded surface: it pushes outbound
// envelopes through the script channel and routes validated inbound messages
// to its delegate. Protocol violations are logged and dropped; the bridge
// must survive an adversarial page without surfacing a fatal error.
type Messenger struct {
	surface     ScriptEvaluator
	decoder     *Decoder
	delegate    Delegate
	jwt         string
	environment string
	theme       string
	log         zerolog.Logger
}

// NewMessenger builds a Messenger for one surface. allowedOrigins is the
// immutable origin allow-list for inbound messages.
func NewMessenger(surface ScriptEvaluator, jwt, environment, theme string, allowedOrigins []string, delegate Delegate, log zerolog.Logger) *Messenger {
	return &Messenger{
		surface:     surface,
		decoder:     NewDecoder(allowedOrigins),
		delegate:    delegate,
		jwt:         jwt,
		environment: environment,
		theme:       theme,
		log:         log,
	}
}

// Send encodes and delivers one outbound envelope. Encoding or evaluation
// failures abort the send and are logged, never retried or propagated.
func (m *Messenger) Send(msgType string, data map[string]any) {
	script, err := Encode(msgType, data)
	if err != nil {
		m.log.Error().Err(err).Str("type", msgType).Msg("outbound message rejected")
		return
	}
	if err := m.surface.EvaluateScript(script); err != nil {
		m.log.Error().Err(err).Str("type", msgType).Msg("failed to deliver message to content")
	}
}

// SendInitialMessages pushes the credential and configuration into the page.
// Called when the content reports page-ready.
func (m *Messenger) SendInitialMessages() {
	m.Send(TypeJWT, map[string]any{"token": m.jwt, "env": m.environment})
	m.Send(TypeConfig, map[string]any{"theme": m.theme})
}

// SendOAuthResult reports the outcome of an external OAuth attempt back into
// the content as a simplified success/error signal.
func (m *Messenger) SendOAuthResult(success bool, connectionID, errorText string) {
	if success && connectionID != "" {
		m.Send(TypeOAuthSuccess, map[string]any{"connectionId": connectionID})
		return
	}
	if errorText == "" {
		errorText = defaultOAuthErrorText
	}
	m.Send(TypeOAuthError, map[string]any{"error": errorText})
}

// Receive decodes one inbound body and dispatches it to the delegate. Must be
// called on the SDK run loop; the caller re-posts notification-thread
// deliveries before invoking it.
func (m *Messenger) Receive(rawBody any, originHost string) {
	msg, err := m.decoder.Decode(rawBody, originHost)
	if err != nil {
		m.log.Warn().Err(err).Str("origin", originHost).Msg("inbound message dropped")
		return
	}

	switch msg.Type {
	case TypePageReady:
		m.SendInitialMessages()
		m.delegate.PageReady()

	case TypeContentReady:
		m.delegate.ContentReady()

	case TypeNavigate:
		url, ok := utils.StringValue(msg.Data, "url")
		if !ok {
			m.log.Warn().Str("json", msg.Raw).Msg("navigate message missing url")
			return
		}
		target, _ := utils.StringValue(msg.Data, "mobileTarget")
		m.delegate.Navigate(url, target)

	case TypeClose:
		m.delegate.CloseRequested()

	case TypeError:
		m.delegate.ErrorReceived(msg.Data, msg.Raw)

	case TypeEvent:
		m.delegate.EventReceived(msg.Data, msg.Raw)

	case TypeDeposit:
		m.delegate.DepositReceived(msg.Data, msg.Raw)

	default:
		// Unreachable while the decoder filters types; a future type must be
		// ignored rather than crash the mapper.
		m.log.Warn().Str("type", msg.Type).Msg("unhandled message type")
	}
}
