// Package events defines the typed domain events delivered to host callback
// handlers, and the dispatcher that maps raw bridge payloads onto them.
package events

import (
	"strings"
	"time"

	"github.com/connectxyz/connect-sdk-go/internal/utils"
)

// GenericEvent wraps an "event" message from the embedded content. The full
// data object is retained verbatim alongside the raw JSON for forwarding.
type GenericEvent struct {
	// Type is the eventType field of the payload, "unknown" when absent.
	Type string

	// Data is the raw payload object.
	Data map[string]any

	// JSONString is the original serialized message.
	JSONString string

	// Timestamp is when the event was received.
	Timestamp time.Time
}

// GetString returns a string field from the event data.
func (e GenericEvent) GetString(key string) (string, bool) {
	return utils.StringValue(e.Data, key)
}

// GetInt returns an integer field from the event data.
func (e GenericEvent) GetInt(key string) (int, bool) {
	return utils.IntValue(e.Data, key)
}

// GetBool returns a boolean field from the event data.
func (e GenericEvent) GetBool(key string) (bool, bool) {
	return utils.BoolValue(e.Data, key)
}

// GetFloat returns a numeric field from the event data.
func (e GenericEvent) GetFloat(key string) (float64, bool) {
	return utils.FloatValue(e.Data, key)
}

// GetObject returns a nested object field from the event data.
func (e GenericEvent) GetObject(key string) (map[string]any, bool) {
	return utils.ObjectValue(e.Data, key)
}

// ErrorEvent wraps an "error" message from the embedded content.
type ErrorEvent struct {
	// Code is the errorCode field, falling back to code, then "unknown".
	Code string

	// Message is the reason field, falling back to message, then a default.
	Message string

	// Data carries any additional error details verbatim.
	Data map[string]any

	// JSONString is the original serialized message, kept for logging.
	JSONString string

	// Timestamp is when the error was received.
	Timestamp time.Time
}

// DepositEvent wraps a "deposit" message. Fields are not renamed at
// construction; accessors read the payload on demand.
type DepositEvent struct {
	Data       map[string]any
	JSONString string
	Timestamp  time.Time
}

// DepositID returns the deposit identifier.
func (e DepositEvent) DepositID() (string, bool) {
	return utils.StringValue(e.Data, "depositId")
}

// AssetID returns the asset ticker (btc, eth, usdc, ...).
func (e DepositEvent) AssetID() (string, bool) {
	return utils.StringValue(e.Data, "assetId")
}

// NetworkID returns the network or chain used (ethereum, solana, ...).
func (e DepositEvent) NetworkID() (string, bool) {
	return utils.StringValue(e.Data, "networkId")
}

// Amount returns the amount sent.
func (e DepositEvent) Amount() (string, bool) {
	return utils.StringValue(e.Data, "amount")
}

// Success reports whether the deposit completed. True only when data.status
// is an object whose value field equals "processed", case-insensitively.
// Any other shape yields false.
func (e DepositEvent) Success() bool {
	status, ok := utils.ObjectValue(e.Data, "status")
	if !ok {
		return false
	}
	value, ok := utils.StringValue(status, "value")
	if !ok {
		return false
	}
	return strings.EqualFold(value, "processed")
}
