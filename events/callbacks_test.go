package events_test

import (
	"testing"
	"time"

	"github.com/connectxyz/connect-sdk-go/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 8, 14, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func TestDispatcher_HandleError(t *testing.T) {
	t.Run("errorCode and reason preferred", func(t *testing.T) {
		var got events.ErrorEvent
		d := events.NewDispatcher(events.AuthCallbacks{
			OnError: func(e events.ErrorEvent) { got = e },
		}, zerolog.Nop(), events.WithNowTime(fixedNow))

		d.HandleError(map[string]any{
			"errorCode": "E42",
			"code":      "shadowed",
			"reason":    "connection refused",
			"message":   "shadowed too",
		}, `{"type":"error"}`)

		require.Equal(t, "E42", got.Code)
		require.Equal(t, "connection refused", got.Message)
		require.Equal(t, fixedTime, got.Timestamp)
		require.Equal(t, `{"type":"error"}`, got.JSONString)
	})

	t.Run("code and message fallbacks", func(t *testing.T) {
		var got events.ErrorEvent
		d := events.NewDispatcher(events.AuthCallbacks{
			OnError: func(e events.ErrorEvent) { got = e },
		}, zerolog.Nop())

		d.HandleError(map[string]any{"code": "E1", "message": "boom"}, "{}")
		require.Equal(t, "E1", got.Code)
		require.Equal(t, "boom", got.Message)
	})

	t.Run("defaults when everything is absent", func(t *testing.T) {
		var got events.ErrorEvent
		d := events.NewDispatcher(events.AuthCallbacks{
			OnError: func(e events.ErrorEvent) { got = e },
		}, zerolog.Nop())

		d.HandleError(map[string]any{}, "{}")
		require.Equal(t, "unknown", got.Code)
		require.Equal(t, "Unknown error", got.Message)
	})

	t.Run("non-string fields fall through", func(t *testing.T) {
		var got events.ErrorEvent
		d := events.NewDispatcher(events.AuthCallbacks{
			OnError: func(e events.ErrorEvent) { got = e },
		}, zerolog.Nop())

		d.HandleError(map[string]any{"errorCode": 42.0, "reason": true}, "{}")
		require.Equal(t, "unknown", got.Code)
		require.Equal(t, "Unknown error", got.Message)
	})

	t.Run("nil handler drops event", func(t *testing.T) {
		d := events.NewDispatcher(events.AuthCallbacks{}, zerolog.Nop())
		require.NotPanics(t, func() { d.HandleError(map[string]any{}, "{}") })
	})
}

func TestDispatcher_HandleEvent(t *testing.T) {
	t.Run("eventType carried through", func(t *testing.T) {
		var got events.GenericEvent
		d := events.NewDispatcher(events.AuthCallbacks{
			OnEvent: func(e events.GenericEvent) { got = e },
		}, zerolog.Nop(), events.WithNowTime(fixedNow))

		data := map[string]any{"eventType": "step_change", "step": 2.0}
		d.HandleEvent(data, `{"type":"event"}`)

		require.Equal(t, "step_change", got.Type)
		require.Equal(t, data, got.Data)
		require.Equal(t, fixedTime, got.Timestamp)
	})

	t.Run("missing eventType defaults to unknown", func(t *testing.T) {
		var got events.GenericEvent
		d := events.NewDispatcher(events.AuthCallbacks{
			OnEvent: func(e events.GenericEvent) { got = e },
		}, zerolog.Nop())

		d.HandleEvent(map[string]any{"foo": "bar"}, "{}")
		require.Equal(t, "unknown", got.Type)
		require.Equal(t, "bar", got.Data["foo"])
	})
}

func TestDispatcher_HandleDeposit(t *testing.T) {
	var got events.DepositEvent
	d := events.NewDispatcher(events.AuthCallbacks{
		OnDeposit: func(e events.DepositEvent) { got = e },
	}, zerolog.Nop(), events.WithNowTime(fixedNow))

	raw := `{"type":"deposit","data":{"depositId":"dep-123","status":{"value":"processed"}}}`
	d.HandleDeposit(map[string]any{
		"depositId": "dep-123",
		"status":    map[string]any{"value": "processed"},
	}, raw)

	id, ok := got.DepositID()
	require.True(t, ok)
	require.Equal(t, "dep-123", id)
	require.True(t, got.Success())
	require.Equal(t, raw, got.JSONString)
	require.Equal(t, fixedTime, got.Timestamp)
}

func TestDispatcher_HandleClose(t *testing.T) {
	var calls int
	d := events.NewDispatcher(events.AuthCallbacks{
		OnClose: func() { calls++ },
	}, zerolog.Nop())

	d.HandleClose()
	require.Equal(t, 1, calls)

	// Nil handler must not panic.
	events.NewDispatcher(events.AuthCallbacks{}, zerolog.Nop()).HandleClose()
}
