package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
)

const (
	playerEndpoint = "https://www.youtube.com/youtubei/v1/player"

	// The ANDROID client returns caption tracks without consent
	// interstitials.
	innertubeClientName    = "ANDROID"
	innertubeClientVersion = "20.10.38"
	androidSDKVersion      = 30
)

// InnertubeLoader implements Loader against YouTube's Innertube player API:
// one POST to list caption tracks, one GET per track to fetch its segments
// in json3 format.
type InnertubeLoader struct {
	client    *http.Client
	playerURL string
}

// Ensure InnertubeLoader implements Loader at compile time
var _ Loader = (*InnertubeLoader)(nil)

func NewInnertubeLoader(cfg Config) (*InnertubeLoader, error) {
	client := &http.Client{Timeout: cfg.Timeout}

	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid YOUTUBE_PROXY %q: %w", cfg.Proxy, err)
		}
		client.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}

	if cfg.CookiesEnabled {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("creating cookie jar: %w", err)
		}
		client.Jar = jar
	}

	return &InnertubeLoader{client: client, playerURL: playerEndpoint}, nil
}

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
	Translatable bool   `json:"isTranslatable"`
	Name         struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

func (c captionTrack) displayName() string {
	if c.Name.SimpleText != "" {
		return c.Name.SimpleText
	}
	var parts []string
	for _, run := range c.Name.Runs {
		parts = append(parts, run.Text)
	}
	return strings.Join(parts, "")
}

func (l *InnertubeLoader) ListTracks(ctx context.Context, videoID string) ([]TranscriptTrack, error) {
	body, err := json.Marshal(map[string]any{
		"context": map[string]any{
			"client": map[string]any{
				"clientName":        innertubeClientName,
				"clientVersion":     innertubeClientVersion,
				"androidSdkVersion": androidSDKVersion,
			},
		},
		"videoId": videoID,
	})
	if err != nil {
		return nil, &TranscriptError{Kind: KindOther, VideoID: videoID, Msg: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.playerURL, bytes.NewReader(body))
	if err != nil {
		return nil, &TranscriptError{Kind: KindOther, VideoID: videoID, Msg: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &TranscriptError{Kind: KindOther, VideoID: videoID, Msg: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TranscriptError{
			Kind:    KindOther,
			VideoID: videoID,
			Msg:     fmt.Sprintf("player request returned HTTP %d", resp.StatusCode),
		}
	}

	var player playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return nil, &TranscriptError{Kind: KindOther, VideoID: videoID, Msg: "invalid player response: " + err.Error()}
	}

	if status := player.PlayabilityStatus.Status; status != "" && status != "OK" {
		msg := player.PlayabilityStatus.Reason
		if msg == "" {
			msg = "video is not playable (" + status + ")"
		}
		return nil, &TranscriptError{Kind: KindOther, VideoID: videoID, Msg: msg}
	}

	if player.Captions == nil || len(player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks) == 0 {
		return nil, &TranscriptError{Kind: KindDisabled, VideoID: videoID, Msg: "no caption tracks in player response"}
	}

	raw := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	tracks := make([]TranscriptTrack, 0, len(raw))
	for _, t := range raw {
		tracks = append(tracks, TranscriptTrack{
			LanguageCode:   t.LanguageCode,
			Name:           t.displayName(),
			IsGenerated:    t.Kind == "asr",
			IsTranslatable: t.Translatable,
			BaseURL:        t.BaseURL,
		})
	}
	return tracks, nil
}

// json3 transcript format: a list of timed events, each carrying text
// segments.
type json3Transcript struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func (l *InnertubeLoader) FetchTrack(ctx context.Context, track TranscriptTrack, translateTo string) ([]TranscriptSegment, error) {
	trackURL, err := url.Parse(track.BaseURL)
	if err != nil {
		return nil, &TranscriptError{Kind: KindOther, Msg: "invalid caption track URL: " + err.Error()}
	}
	q := trackURL.Query()
	q.Set("fmt", "json3")
	if translateTo != "" {
		q.Set("tlang", translateTo)
	}
	trackURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL.String(), http.NoBody)
	if err != nil {
		return nil, &TranscriptError{Kind: KindOther, Msg: err.Error()}
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &TranscriptError{Kind: KindOther, Msg: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TranscriptError{
			Kind: KindOther,
			Msg:  fmt.Sprintf("caption track request returned HTTP %d", resp.StatusCode),
		}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TranscriptError{Kind: KindOther, Msg: err.Error()}
	}

	var transcript json3Transcript
	if err := json.Unmarshal(bodyBytes, &transcript); err != nil {
		return nil, &TranscriptError{Kind: KindOther, Msg: "invalid caption track body: " + err.Error()}
	}

	segments := make([]TranscriptSegment, 0, len(transcript.Events))
	for _, event := range transcript.Events {
		var b strings.Builder
		for _, seg := range event.Segs {
			b.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(strings.ReplaceAll(b.String(), "\n", " "))
		if text == "" {
			continue
		}
		segments = append(segments, TranscriptSegment{
			Text:     text,
			Start:    float64(event.StartMs) / 1000,
			Duration: float64(event.DurationMs) / 1000,
		})
	}
	return segments, nil
}

// Close releases the loader's HTTP connections.
func (l *InnertubeLoader) Close() error {
	l.client.CloseIdleConnections()
	return nil
}
