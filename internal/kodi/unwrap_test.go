package kodi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"mapping with result", map[string]any{"id": "1", "result": "pong"}, "pong"},
		{"mapping with nil result", map[string]any{"result": nil}, nil},
		{"mapping with structured result", map[string]any{"result": map[string]any{"muted": true}}, map[string]any{"muted": true}},
		// An envelope without "result" comes back empty. This mirrors the
		// reply the chat has always shown for error envelopes.
		{"mapping without result", map[string]any{"error": map[string]any{"code": -32601}}, nil},
		{"empty mapping", map[string]any{}, nil},
		{"params mapping", Params{"result": 7}, 7},
		{"string", "Volume must be set to an integer.", "Volume must be set to an integer."},
		{"number", 42, 42},
		{"nil", nil, nil},
		{"slice", []any{"a"}, []any{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Unwrap(tt.value))
		})
	}
}

func TestWithResult(t *testing.T) {
	t.Run("unwraps on success", func(t *testing.T) {
		v, err := withResult(map[string]any{"result": "OK"}, nil)
		assert.NoError(t, err)
		assert.Equal(t, "OK", v)
	})

	t.Run("drops value on error", func(t *testing.T) {
		boom := errors.New("boom")
		v, err := withResult(map[string]any{"result": "OK"}, boom)
		assert.Nil(t, v)
		assert.Equal(t, boom, err)
	})
}
