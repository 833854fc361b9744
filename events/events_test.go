package events_test

import (
	"testing"

	"github.com/connectxyz/connect-sdk-go/events"
	"github.com/stretchr/testify/require"
)

func TestDepositEvent_Success(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want bool
	}{
		{
			name: "processed",
			data: map[string]any{"status": map[string]any{"value": "processed"}},
			want: true,
		},
		{
			name: "uppercase processed",
			data: map[string]any{"status": map[string]any{"value": "PROCESSED"}},
			want: true,
		},
		{
			name: "mixed case processed",
			data: map[string]any{"status": map[string]any{"value": "Processed"}},
			want: true,
		},
		{
			name: "different value",
			data: map[string]any{"status": map[string]any{"value": "pending"}},
			want: false,
		},
		{
			name: "status is a plain string",
			data: map[string]any{"status": "processed"},
			want: false,
		},
		{
			name: "value wrong type",
			data: map[string]any{"status": map[string]any{"value": 1.0}},
			want: false,
		},
		{
			name: "status missing",
			data: map[string]any{"depositId": "dep-1"},
			want: false,
		},
		{
			name: "empty data",
			data: map[string]any{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := events.DepositEvent{Data: tt.data}
			require.Equal(t, tt.want, e.Success())
		})
	}
}

func TestDepositEvent_Accessors(t *testing.T) {
	e := events.DepositEvent{Data: map[string]any{
		"depositId": "dep-123",
		"assetId":   "btc",
		"networkId": "bitcoin",
		"amount":    "0.5",
	}}

	id, ok := e.DepositID()
	require.True(t, ok)
	require.Equal(t, "dep-123", id)

	asset, ok := e.AssetID()
	require.True(t, ok)
	require.Equal(t, "btc", asset)

	network, ok := e.NetworkID()
	require.True(t, ok)
	require.Equal(t, "bitcoin", network)

	amount, ok := e.Amount()
	require.True(t, ok)
	require.Equal(t, "0.5", amount)

	_, ok = events.DepositEvent{Data: map[string]any{}}.DepositID()
	require.False(t, ok)
}

func TestGenericEvent_Accessors(t *testing.T) {
	e := events.GenericEvent{
		Type: "kyc_update",
		Data: map[string]any{
			"step":     3.0,
			"complete": true,
			"score":    0.75,
			"name":     "verification",
			"nested":   map[string]any{"a": "b"},
		},
	}

	t.Run("typed hits", func(t *testing.T) {
		s, ok := e.GetString("name")
		require.True(t, ok)
		require.Equal(t, "verification", s)

		i, ok := e.GetInt("step")
		require.True(t, ok)
		require.Equal(t, 3, i)

		b, ok := e.GetBool("complete")
		require.True(t, ok)
		require.True(t, b)

		f, ok := e.GetFloat("score")
		require.True(t, ok)
		require.Equal(t, 0.75, f)

		o, ok := e.GetObject("nested")
		require.True(t, ok)
		require.Equal(t, "b", o["a"])
	})

	t.Run("type mismatch is absent, not a fault", func(t *testing.T) {
		_, ok := e.GetString("step")
		require.False(t, ok)
		_, ok = e.GetInt("name")
		require.False(t, ok)
		_, ok = e.GetObject("complete")
		require.False(t, ok)
	})
}

func TestErrorEvent_Classify(t *testing.T) {
	tests := []struct {
		name     string
		data     map[string]any
		sentinel error
		message  string
	}{
		{
			name:     "network",
			data:     map[string]any{"type": "network", "message": "timed out"},
			sentinel: events.ErrNetwork,
			message:  "timed out",
		},
		{
			name:     "authentication uppercased type",
			data:     map[string]any{"type": "AUTHENTICATION", "message": "bad jwt"},
			sentinel: events.ErrAuthenticationFailed,
			message:  "bad jwt",
		},
		{
			name:     "session expired",
			data:     map[string]any{"type": "session_expired"},
			sentinel: events.ErrSessionExpired,
			message:  "An error occurred",
		},
		{
			name:     "cancelled",
			data:     map[string]any{"type": "cancelled", "message": "user backed out"},
			sentinel: events.ErrUserCancelled,
			message:  "user backed out",
		},
		{
			name:     "unknown type",
			data:     map[string]any{"type": "gremlins", "message": "??"},
			sentinel: events.ErrUnknown,
			message:  "??",
		},
		{
			name:     "missing type",
			data:     map[string]any{},
			sentinel: events.ErrUnknown,
			message:  "An error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := events.ErrorEvent{Data: tt.data}.Classify()
			require.ErrorIs(t, err, tt.sentinel)
			require.Contains(t, err.Error(), tt.message)
		})
	}
}
