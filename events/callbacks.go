package events

import (
	"time"

	"github.com/connectxyz/connect-sdk-go/internal/utils"
	"github.com/rs/zerolog"
)

// Default values used when the content omits the corresponding field.
const (
	unknownErrorCode    = "unknown"
	defaultErrorMessage = "Unknown error"
	unknownEventType    = "unknown"
)

// AuthCallbacks is the host-registered handler set for the auth flow. Every
// handler is optional; a nil handler drops the event. Delivery is synchronous
// and fire-and-forget.
type AuthCallbacks struct {
	// OnClose is called once per close message.
	OnClose func()

	// OnError is called for every error message from the content.
	OnError func(ErrorEvent)

	// OnEvent is called for generic events.
	OnEvent func(GenericEvent)

	// OnDeposit is called for deposit events.
	OnDeposit func(DepositEvent)
}

// Dispatcher maps raw message payloads into typed events and fans them out to
// the registered callbacks. At most one handler receives each event.
type Dispatcher struct {
	callbacks AuthCallbacks
	nowTime   func() time.Time
	log       zerolog.Logger
}

// DispatcherOption modifies a Dispatcher instance.
type DispatcherOption func(*Dispatcher)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		d.nowTime = nowFunc
	}
}

// NewDispatcher builds a Dispatcher for the given callback set.
func NewDispatcher(callbacks AuthCallbacks, log zerolog.Logger, options ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		callbacks: callbacks,
		nowTime:   time.Now,
		log:       log,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

// HandleClose notifies the host that the flow was closed.
func (d *Dispatcher) HandleClose() {
	if d.callbacks.OnClose == nil {
		return
	}
	d.callbacks.OnClose()
}

// HandleError builds an ErrorEvent from the payload and delivers it.
func (d *Dispatcher) HandleError(data map[string]any, jsonString string) {
	if d.callbacks.OnError == nil {
		d.log.Debug().Str("json", jsonString).Msg("error event dropped, no handler registered")
		return
	}

	code, ok := utils.StringValue(data, "errorCode")
	if !ok {
		if code, ok = utils.StringValue(data, "code"); !ok {
			code = unknownErrorCode
		}
	}
	message, ok := utils.StringValue(data, "reason")
	if !ok {
		if message, ok = utils.StringValue(data, "message"); !ok {
			message = defaultErrorMessage
		}
	}

	d.callbacks.OnError(ErrorEvent{
		Code:       code,
		Message:    message,
		Data:       data,
		JSONString: jsonString,
		Timestamp:  d.nowTime(),
	})
}

// HandleEvent builds a GenericEvent from the payload and delivers it.
func (d *Dispatcher) HandleEvent(data map[string]any, jsonString string) {
	if d.callbacks.OnEvent == nil {
		d.log.Debug().Str("json", jsonString).Msg("generic event dropped, no handler registered")
		return
	}

	eventType, ok := utils.StringValue(data, "eventType")
	if !ok {
		eventType = unknownEventType
	}

	d.callbacks.OnEvent(GenericEvent{
		Type:       eventType,
		Data:       data,
		JSONString: jsonString,
		Timestamp:  d.nowTime(),
	})
}

// HandleDeposit builds a DepositEvent from the payload verbatim and delivers
// it. Success is derived lazily by the accessor, not here.
func (d *Dispatcher) HandleDeposit(data map[string]any, jsonString string) {
	if d.callbacks.OnDeposit == nil {
		d.log.Debug().Str("json", jsonString).Msg("deposit event dropped, no handler registered")
		return
	}

	d.callbacks.OnDeposit(DepositEvent{
		Data:       data,
		JSONString: jsonString,
		Timestamp:  d.nowTime(),
	})
}
