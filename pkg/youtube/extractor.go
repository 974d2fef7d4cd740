package youtube

import (
	"context"
	"log/slog"
	"strings"
)

// Loader defines the interface for the caption-track API
type Loader interface {
	// ListTracks returns the caption tracks available for a video.
	ListTracks(ctx context.Context, videoID string) ([]TranscriptTrack, error)
	// FetchTrack downloads a track's segments, translated to translateTo
	// when non-empty.
	FetchTrack(ctx context.Context, track TranscriptTrack, translateTo string) ([]TranscriptSegment, error)
	Close() error
}

// Extractor resolves a transcript for a video URL with language fallback.
type Extractor struct {
	cfg Config
	api Loader
}

func NewExtractor(cfg Config, api Loader) *Extractor {
	return &Extractor{cfg: cfg, api: api}
}

// GetTranscript fetches the transcript for a YouTube URL or bare video ID.
// The effective language is the explicit argument, else the configured
// default. When no track exists in that language, the first manually
// created track is translated into it; an untranslatable track fails.
func (e *Extractor) GetTranscript(ctx context.Context, url, language string) (*TranscriptResponse, error) {
	videoID, err := ExtractVideoID(url)
	if err != nil {
		return nil, err
	}

	if language == "" {
		language = e.cfg.DefaultLanguage
	}

	slog.Info("Fetching transcript", "video_id", videoID, "language", language)

	tracks, err := e.api.ListTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, translateTo, err := resolveTrack(tracks, language, videoID)
	if err != nil {
		return nil, err
	}

	segments, err := e.api.FetchTrack(ctx, track, translateTo)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}

	return &TranscriptResponse{
		Text:     strings.Join(texts, " "),
		Language: language,
		Segments: segments,
	}, nil
}

// resolveTrack picks the track to fetch. A track already in the requested
// language wins (manually created before generated); otherwise the first
// manually created track is translated.
func resolveTrack(tracks []TranscriptTrack, language, videoID string) (TranscriptTrack, string, error) {
	for _, generated := range []bool{false, true} {
		for _, t := range tracks {
			if t.IsGenerated == generated && t.LanguageCode == language {
				return t, "", nil
			}
		}
	}

	for _, t := range tracks {
		if t.IsGenerated {
			continue
		}
		if !t.IsTranslatable {
			return TranscriptTrack{}, "", &TranscriptError{
				Kind:    KindOther,
				VideoID: videoID,
				Msg:     "transcript in " + t.LanguageCode + " is not translatable to " + language,
			}
		}
		return t, language, nil
	}

	return TranscriptTrack{}, "", &TranscriptError{
		Kind:    KindNotFound,
		VideoID: videoID,
		Msg:     "no transcript found for language " + language,
	}
}

// Close releases the underlying API client.
func (e *Extractor) Close() error {
	return e.api.Close()
}
