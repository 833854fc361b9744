package bridge_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/connectxyz/connect-sdk-go/bridge"
	"github.com/stretchr/testify/require"
)

const trustedOrigin = "sdk.connect.xyz"

func newDecoder() *bridge.Decoder {
	return bridge.NewDecoder([]string{trustedOrigin})
}

func TestDecoder_Decode(t *testing.T) {
	t.Run("valid envelope", func(t *testing.T) {
		raw := `{"type":"deposit","data":{"depositId":"dep-123"}}`
		msg, err := newDecoder().Decode(raw, trustedOrigin)
		require.NoError(t, err)
		require.Equal(t, "deposit", msg.Type)
		require.Equal(t, "dep-123", msg.Data["depositId"])
		require.Equal(t, raw, msg.Raw)
	})

	t.Run("missing data defaults to empty object", func(t *testing.T) {
		msg, err := newDecoder().Decode(`{"type":"close"}`, trustedOrigin)
		require.NoError(t, err)
		require.NotNil(t, msg.Data)
		require.Empty(t, msg.Data)
	})

	t.Run("unauthorized origin rejected before payload inspection", func(t *testing.T) {
		_, err := newDecoder().Decode(`{"type":"close"}`, "evil.example")
		require.ErrorIs(t, err, bridge.ErrUnauthorizedOrigin)
	})

	t.Run("empty origin rejected", func(t *testing.T) {
		_, err := newDecoder().Decode(`{"type":"close"}`, "")
		require.ErrorIs(t, err, bridge.ErrUnauthorizedOrigin)
	})

	t.Run("non-string body rejected", func(t *testing.T) {
		_, err := newDecoder().Decode(42, trustedOrigin)
		require.ErrorIs(t, err, bridge.ErrInvalidBody)

		_, err = newDecoder().Decode(map[string]any{"type": "close"}, trustedOrigin)
		require.ErrorIs(t, err, bridge.ErrInvalidBody)
	})

	t.Run("malformed JSON rejected", func(t *testing.T) {
		for _, body := range []string{"", "not json", `{"type":`, `[1,2,3]`, `"just a string"`} {
			_, err := newDecoder().Decode(body, trustedOrigin)
			require.Error(t, err, "body %q", body)
		}
	})

	t.Run("missing type rejected", func(t *testing.T) {
		_, err := newDecoder().Decode(`{"data":{}}`, trustedOrigin)
		require.ErrorIs(t, err, bridge.ErrMissingType)
	})

	t.Run("non-string type rejected", func(t *testing.T) {
		_, err := newDecoder().Decode(`{"type":7}`, trustedOrigin)
		require.ErrorIs(t, err, bridge.ErrMissingType)
	})

	t.Run("unrecognized type rejected", func(t *testing.T) {
		_, err := newDecoder().Decode(`{"type":"self-destruct"}`, trustedOrigin)
		require.ErrorIs(t, err, bridge.ErrUnknownType)
	})

	t.Run("alternate trust set", func(t *testing.T) {
		d := bridge.NewDecoder([]string{"staging.connect.xyz"})
		_, err := d.Decode(`{"type":"close"}`, trustedOrigin)
		require.ErrorIs(t, err, bridge.ErrUnauthorizedOrigin)

		_, err = d.Decode(`{"type":"close"}`, "staging.connect.xyz")
		require.NoError(t, err)
	})
}

func TestEncode(t *testing.T) {
	t.Run("single atomic script statement", func(t *testing.T) {
		script, err := bridge.Encode("jwt", map[string]any{"token": "abc", "env": "sandbox"})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(script, "window.postMessage("))
		require.True(t, strings.HasSuffix(script, ");"))

		payload := strings.TrimSuffix(strings.TrimPrefix(script, "window.postMessage("), ");")
		var envelope map[string]any
		require.NoError(t, json.Unmarshal([]byte(payload), &envelope))
		require.Equal(t, "jwt", envelope["type"])
		data := envelope["data"].(map[string]any)
		require.Equal(t, "abc", data["token"])
		require.Equal(t, "sandbox", data["env"])
	})

	t.Run("nil data becomes empty object", func(t *testing.T) {
		script, err := bridge.Encode("config", nil)
		require.NoError(t, err)
		require.Contains(t, script, `"data":{}`)
	})

	t.Run("disallowed type characters rejected", func(t *testing.T) {
		for _, msgType := range []string{
			"",
			"jwt;alert(1)",
			"jwt')",
			"jwt type",
			"jwt\"",
			"jwt`",
			"jwt_underscore",
		} {
			script, err := bridge.Encode(msgType, map[string]any{})
			require.ErrorIs(t, err, bridge.ErrInvalidMessageType, "type %q", msgType)
			require.Empty(t, script)
		}
	})

	t.Run("injection attempt stays inert JSON", func(t *testing.T) {
		script, err := bridge.Encode("config", map[string]any{
			"theme": `dark"});alert(1);//`,
		})
		require.NoError(t, err)
		// The hostile value must remain inside the JSON string literal.
		payload := strings.TrimSuffix(strings.TrimPrefix(script, "window.postMessage("), ");")
		var envelope map[string]any
		require.NoError(t, json.Unmarshal([]byte(payload), &envelope))
		require.Equal(t, `dark"});alert(1);//`, envelope["data"].(map[string]any)["theme"])
	})

	t.Run("non-serializable data aborts", func(t *testing.T) {
		_, err := bridge.Encode("event", map[string]any{"fn": func() {}})
		require.Error(t, err)
	})
}
