package kodi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"kodibot/internal/config"
	"kodibot/internal/kodi"
)

// fakeInvoker records calls and answers with a canned envelope
type fakeInvoker struct {
	calls    []kodi.Call
	response map[string]any
	err      error
}

func (f *fakeInvoker) Invoke(ctx context.Context, method kodi.Method, params kodi.Params) (map[string]any, error) {
	f.calls = append(f.calls, kodi.Call{Method: method, Params: params})
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func newTestHandlers(t *testing.T, inv *fakeInvoker) (*kodi.Handlers, *int) {
	t.Helper()
	if inv.response == nil {
		inv.response = map[string]any{"jsonrpc": "2.0", "id": "1", "result": "OK"}
	}
	dials := 0
	cfg, err := config.Merge(config.Defaults(), nil)
	require.NoError(t, err)
	h := kodi.NewHandlersWithDialer(cfg, func(config.Config) (kodi.Invoker, error) {
		dials++
		return inv, nil
	})
	return h, &dials
}

var testMessage = kodi.Message{From: "alice", Body: "!kodi explode"}

func TestNotify(t *testing.T) {
	inv := &fakeInvoker{}
	h, _ := newTestHandlers(t, inv)

	reply, err := h.Notify(context.Background(), testMessage, "dinner is ready")

	require.NoError(t, err)
	assert.Equal(t, "OK", reply)
	require.Len(t, inv.calls, 1)
	assert.Equal(t, kodi.GUIShowNotification, inv.calls[0].Method)
	assert.Equal(t, kodi.Params{"title": "alice says:", "message": "dinner is ready"}, inv.calls[0].Params)
}

func TestPlayURL(t *testing.T) {
	t.Run("normalizes youtube links before opening", func(t *testing.T) {
		inv := &fakeInvoker{}
		h, _ := newTestHandlers(t, inv)

		_, err := h.PlayURL(context.Background(), testMessage, "https://www.youtube.com/watch?v=abcdefghijk&x=youtube")

		require.NoError(t, err)
		require.Len(t, inv.calls, 1)
		assert.Equal(t, kodi.PlayerOpen, inv.calls[0].Method)
		assert.Equal(t, kodi.Params{
			"item": map[string]any{"file": "plugin://plugin.video.youtube/?action=play_video&videoid=abcdefghijk"},
		}, inv.calls[0].Params)
	})

	t.Run("opens other links unchanged", func(t *testing.T) {
		inv := &fakeInvoker{}
		h, _ := newTestHandlers(t, inv)

		_, err := h.PlayURL(context.Background(), testMessage, "http://example.com/a.mp4")

		require.NoError(t, err)
		require.Len(t, inv.calls, 1)
		assert.Equal(t, kodi.Params{
			"item": map[string]any{"file": "http://example.com/a.mp4"},
		}, inv.calls[0].Params)
	})

	t.Run("propagates normalization failure without calling", func(t *testing.T) {
		inv := &fakeInvoker{}
		h, _ := newTestHandlers(t, inv)

		_, err := h.PlayURL(context.Background(), testMessage, "https://youtube.com/channel/xyz")

		assert.True(t, errors.Is(err, kodi.ErrNoVideoFound))
		assert.Contains(t, err.Error(), "https://youtube.com/channel/xyz")
		assert.Empty(t, inv.calls)
	})
}

func TestSetVolume(t *testing.T) {
	t.Run("forwards integer volume", func(t *testing.T) {
		inv := &fakeInvoker{}
		h, _ := newTestHandlers(t, inv)

		_, err := h.SetVolume(context.Background(), testMessage, "50")

		require.NoError(t, err)
		require.Len(t, inv.calls, 1)
		assert.Equal(t, kodi.ApplicationSetVolume, inv.calls[0].Method)
		assert.Equal(t, kodi.Params{"volume": 50}, inv.calls[0].Params)
	})

	t.Run("does not range check", func(t *testing.T) {
		inv := &fakeInvoker{}
		h, _ := newTestHandlers(t, inv)

		_, err := h.SetVolume(context.Background(), testMessage, "250")

		require.NoError(t, err)
		assert.Equal(t, kodi.Params{"volume": 250}, inv.calls[0].Params)
	})

	t.Run("rejects non-integer with literal message", func(t *testing.T) {
		for _, arg := range []string{"loud", "", "12.5"} {
			inv := &fakeInvoker{}
			h, _ := newTestHandlers(t, inv)

			reply, err := h.SetVolume(context.Background(), testMessage, arg)

			require.NoError(t, err)
			assert.Equal(t, "Volume must be set to an integer.", reply)
			assert.Empty(t, inv.calls)
		}
	})
}

func TestRunCommand(t *testing.T) {
	t.Run("mute", func(t *testing.T) {
		inv := &fakeInvoker{}
		h, _ := newTestHandlers(t, inv)

		_, err := h.RunCommand(context.Background(), testMessage, "mute")

		require.NoError(t, err)
		require.Len(t, inv.calls, 1)
		assert.Equal(t, kodi.ApplicationSetMute, inv.calls[0].Method)
		assert.Equal(t, kodi.Params{"mute": true}, inv.calls[0].Params)
	})

	t.Run("surrounding whitespace is ignored", func(t *testing.T) {
		inv := &fakeInvoker{}
		h, _ := newTestHandlers(t, inv)

		_, err := h.RunCommand(context.Background(), testMessage, " mute\n")

		require.NoError(t, err)
		require.Len(t, inv.calls, 1)
		assert.Equal(t, kodi.ApplicationSetMute, inv.calls[0].Method)
	})

	t.Run("inner whitespace is not a word", func(t *testing.T) {
		inv := &fakeInvoker{}
		h, _ := newTestHandlers(t, inv)

		reply, err := h.RunCommand(context.Background(), testMessage, "mu te")

		require.NoError(t, err)
		assert.Equal(t, "Command !kodi explode unrecognized. mu te", reply)
		assert.Empty(t, inv.calls)
	})

	t.Run("unrecognized word", func(t *testing.T) {
		inv := &fakeInvoker{}
		h, _ := newTestHandlers(t, inv)

		reply, err := h.RunCommand(context.Background(), testMessage, "explode")

		require.NoError(t, err)
		assert.Equal(t, "Command !kodi explode unrecognized. explode", reply)
		assert.Contains(t, reply, "unrecognized")
		assert.Empty(t, inv.calls)
	})

	t.Run("every action word issues exactly one call", func(t *testing.T) {
		for _, word := range kodi.ActionNames() {
			inv := &fakeInvoker{}
			h, _ := newTestHandlers(t, inv)

			_, err := h.RunCommand(context.Background(), testMessage, word)

			require.NoError(t, err, word)
			assert.Len(t, inv.calls, 1, word)
		}
	})

	t.Run("htpc alias behaves identically", func(t *testing.T) {
		inv := &fakeInvoker{}
		h, _ := newTestHandlers(t, inv)

		_, err := h.HTPC(context.Background(), testMessage, "stop")

		require.NoError(t, err)
		require.Len(t, inv.calls, 1)
		assert.Equal(t, kodi.PlayerStop, inv.calls[0].Method)
		assert.Equal(t, kodi.Params{"playerid": kodi.VideoPlayerID}, inv.calls[0].Params)
	})
}

func TestHandlersUnwrapResults(t *testing.T) {
	t.Run("result payload is returned", func(t *testing.T) {
		inv := &fakeInvoker{response: map[string]any{"result": map[string]any{"volume": 30}}}
		h, _ := newTestHandlers(t, inv)

		reply, err := h.RunCommand(context.Background(), testMessage, "ping")

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"volume": 30}, reply)
	})

	t.Run("envelope without result yields nothing", func(t *testing.T) {
		inv := &fakeInvoker{response: map[string]any{"error": map[string]any{"code": -32100, "message": "Failed"}}}
		h, _ := newTestHandlers(t, inv)

		reply, err := h.RunCommand(context.Background(), testMessage, "ping")

		require.NoError(t, err)
		assert.Nil(t, reply)
	})

	t.Run("transport errors propagate", func(t *testing.T) {
		boom := &kodi.TransportError{Method: kodi.JSONRPCPing, Err: errors.New("connection refused")}
		inv := &fakeInvoker{err: boom}
		h, _ := newTestHandlers(t, inv)

		_, err := h.RunCommand(context.Background(), testMessage, "ping")

		var transportErr *kodi.TransportError
		assert.True(t, errors.As(err, &transportErr))
	})
}

func TestHandlersDialPerInvocation(t *testing.T) {
	inv := &fakeInvoker{}
	h, dials := newTestHandlers(t, inv)

	for i := 0; i < 3; i++ {
		_, err := h.RunCommand(context.Background(), testMessage, "ping")
		require.NoError(t, err)
	}

	assert.Equal(t, 3, *dials)
}

func TestHandlersDialFailure(t *testing.T) {
	cfg, err := config.Merge(config.Defaults(), nil)
	require.NoError(t, err)
	h := kodi.NewHandlersWithDialer(cfg, func(config.Config) (kodi.Invoker, error) {
		return nil, errors.New("no route")
	})

	_, err = h.Notify(context.Background(), testMessage, "hi")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to http://localhost/jsonrpc")
}
