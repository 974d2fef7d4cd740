package youtube

import "regexp"

// videoIDPatterns are tried in order; the first match wins. The ordering
// matters for inputs that contain more than one ID-shaped fragment.
var videoIDPatterns = []*regexp.Regexp{
	// Standard and shortened URLs: v=, /v/, youtu.be/
	regexp.MustCompile(`(?:v=|/v/|youtu\.be/)([^"&?/\s]{11})`),
	// Embed URLs: embed/, e/
	regexp.MustCompile(`(?:embed/|e/)([^"&?/\s]{11})`),
	// The input is itself an 11-character video ID
	regexp.MustCompile(`^([^"&?/\s]{11})$`),
}

// ExtractVideoID pulls the 11-character video identifier out of the
// supported YouTube URL shapes, or accepts a bare ID.
func ExtractVideoID(input string) (string, error) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(input); m != nil {
			return m[1], nil
		}
	}
	return "", &InvalidURLError{Input: input}
}
