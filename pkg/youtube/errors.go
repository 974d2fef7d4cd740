package youtube

import "fmt"

// InvalidURLError reports an input no video ID could be extracted from.
type InvalidURLError struct {
	Input string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("could not extract video ID from URL: %s", e.Input)
}

// TranscriptErrorKind distinguishes why a transcript is unavailable.
type TranscriptErrorKind string

const (
	// KindDisabled means the video has transcripts turned off entirely.
	KindDisabled TranscriptErrorKind = "disabled"
	// KindNotFound means no transcript matched the request.
	KindNotFound TranscriptErrorKind = "not_found"
	// KindOther covers any other upstream failure.
	KindOther TranscriptErrorKind = "other"
)

// TranscriptError carries the failure kind, the video ID, and the original
// upstream message as structured fields so callers can distinguish
// "disabled" from "not found" without parsing message text.
type TranscriptError struct {
	Kind    TranscriptErrorKind
	VideoID string
	Msg     string
}

func (e *TranscriptError) Error() string {
	switch e.Kind {
	case KindDisabled:
		return fmt.Sprintf("transcripts are disabled for video %s: %s", e.VideoID, e.Msg)
	case KindNotFound:
		return fmt.Sprintf("no transcript available for video %s: %s", e.VideoID, e.Msg)
	default:
		return fmt.Sprintf("failed to get transcript for video %s: %s", e.VideoID, e.Msg)
	}
}
