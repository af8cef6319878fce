package kodi

import "regexp"

// youtubeWatch matches a YouTube watch URL and captures the 11 character id
var youtubeWatch = regexp.MustCompile(`^.*youtube.com/watch\?v=(.{11})`)

// ToPlayableReference rewrites a YouTube watch URL into the YouTube addon
// invocation Kodi can open. Any other input fails with *NoVideoError.
func ToPlayableReference(rawURL string) (string, error) {
	match := youtubeWatch.FindStringSubmatch(rawURL)
	if match == nil {
		return "", &NoVideoError{URL: rawURL}
	}
	return YouTubePluginPrefix + match[1], nil
}
