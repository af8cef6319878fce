package kodi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPlayableReference(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"canonical", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "plugin://plugin.video.youtube/?action=play_video&videoid=dQw4w9WgXcQ"},
		{"trailing query", "https://www.youtube.com/watch?v=abcdefghijk&t=42s", "plugin://plugin.video.youtube/?action=play_video&videoid=abcdefghijk"},
		{"no scheme", "youtube.com/watch?v=01234567890", "plugin://plugin.video.youtube/?action=play_video&videoid=01234567890"},
		{"mobile host", "https://m.youtube.com/watch?v=ZZZZZZZZZZZ", "plugin://plugin.video.youtube/?action=play_video&videoid=ZZZZZZZZZZZ"},
		{"id is taken verbatim", "https://youtube.com/watch?v=ab&cd=efghij", "plugin://plugin.video.youtube/?action=play_video&videoid=ab&cd=efghi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToPlayableReference(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToPlayableReferenceNoVideo(t *testing.T) {
	for _, url := range []string{
		"https://example.com/video",
		"https://www.youtube.com/watch?v=short",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/playlist?list=PL123",
	} {
		t.Run(url, func(t *testing.T) {
			_, err := ToPlayableReference(url)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoVideoFound))
			assert.Equal(t, "No youtube video found: "+url, err.Error())

			var noVideo *NoVideoError
			require.True(t, errors.As(err, &noVideo))
			assert.Equal(t, url, noVideo.URL)
		})
	}
}
