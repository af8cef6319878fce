package kodi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"kodibot/internal/kodi"
)

func TestActionTable(t *testing.T) {
	want := []string{
		"back", "clean", "down", "home", "info", "left", "mute", "pause",
		"ping", "play", "right", "scan", "select", "stop", "unmute", "up", "weather",
	}
	assert.Equal(t, want, kodi.ActionNames())

	tests := []struct {
		word   string
		method kodi.Method
		params kodi.Params
	}{
		{"home", kodi.GUIActivateWindow, kodi.Params{"window": "home"}},
		{"weather", kodi.GUIActivateWindow, kodi.Params{"window": "weather"}},
		{"scan", kodi.VideoLibraryScan, nil},
		{"clean", kodi.VideoLibraryClean, nil},
		{"mute", kodi.ApplicationSetMute, kodi.Params{"mute": true}},
		{"unmute", kodi.ApplicationSetMute, kodi.Params{"mute": false}},
		{"pause", kodi.PlayerPlayPause, kodi.Params{"playerid": 1}},
		{"play", kodi.PlayerPlayPause, kodi.Params{"playerid": 1}},
		{"stop", kodi.PlayerStop, kodi.Params{"playerid": 1}},
		{"left", kodi.InputLeft, nil},
		{"right", kodi.InputRight, nil},
		{"up", kodi.InputUp, nil},
		{"down", kodi.InputDown, nil},
		{"back", kodi.InputBack, nil},
		{"info", kodi.InputInfo, nil},
		{"select", kodi.InputSelect, nil},
		{"ping", kodi.JSONRPCPing, nil},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			action, ok := kodi.LookupAction(tt.word)
			require.True(t, ok)
			assert.Equal(t, tt.word, action.Name)
			assert.Equal(t, tt.method, action.Method)
			assert.Equal(t, tt.params, action.Params)
			assert.NotEmpty(t, action.Help)
		})
	}
}

func TestLookupActionIsolation(t *testing.T) {
	action, ok := kodi.LookupAction("mute")
	require.True(t, ok)
	action.Params["mute"] = false

	again, _ := kodi.LookupAction("mute")
	assert.Equal(t, true, again.Params["mute"])
}

func TestLookupActionRejectsNonActions(t *testing.T) {
	for _, word := range []string{"", "explode", "Mute", "configure", "load_config"} {
		_, ok := kodi.LookupAction(word)
		assert.False(t, ok, word)
	}
}

func TestCommands(t *testing.T) {
	commands := kodi.Commands()

	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name)
		assert.NotEmpty(t, cmd.Help)
		assert.NotEmpty(t, cmd.Usage)
	}
	assert.Equal(t, []string{"htpc", "notify-message", "play-url", "run-command", "set-volume"}, names)

	htpc, ok := kodi.LookupCommand(kodi.CommandHTPC)
	require.True(t, ok)
	assert.Equal(t, kodi.CommandRun, htpc.AliasOf)
}

func TestDispatch(t *testing.T) {
	t.Run("routes each chat command", func(t *testing.T) {
		tests := []struct {
			name   string
			args   string
			method kodi.Method
		}{
			{kodi.CommandNotify, "hello", kodi.GUIShowNotification},
			{kodi.CommandPlayURL, "/media/movie.mkv", kodi.PlayerOpen},
			{kodi.CommandVolume, "20", kodi.ApplicationSetVolume},
			{kodi.CommandRun, "home", kodi.GUIActivateWindow},
			{kodi.CommandHTPC, "back", kodi.InputBack},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				inv := &fakeInvoker{}
				h, _ := newTestHandlers(t, inv)

				reply, err := h.Dispatch(context.Background(), tt.name, testMessage, tt.args)

				require.NoError(t, err)
				assert.Equal(t, "OK", reply)
				require.Len(t, inv.calls, 1)
				assert.Equal(t, tt.method, inv.calls[0].Method)
			})
		}
	})

	t.Run("unknown chat command", func(t *testing.T) {
		inv := &fakeInvoker{}
		h, dials := newTestHandlers(t, inv)

		_, err := h.Dispatch(context.Background(), "kodi_self_destruct", testMessage, "")

		var unknown *kodi.UnknownCommandError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "kodi_self_destruct", unknown.Name)
		assert.Equal(t, 0, *dials)
	})
}
