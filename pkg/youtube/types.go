package youtube

// TranscriptSegment is one timed piece of transcript text.
type TranscriptSegment struct {
	Text     string  `json:"text" jsonschema:"description=Segment text"`
	Start    float64 `json:"start" jsonschema:"description=Segment start time in seconds"`
	Duration float64 `json:"duration" jsonschema:"description=Segment duration in seconds"`
}

// TranscriptResponse holds a fetched transcript. Text is the space-joined
// concatenation of every segment's text in order, and Language is the
// language actually used after fallback/translation, not necessarily the
// requested one.
type TranscriptResponse struct {
	Text     string              `json:"text" jsonschema:"description=Full transcript text"`
	Language string              `json:"language" jsonschema:"description=Language the transcript was resolved to"`
	Segments []TranscriptSegment `json:"segments" jsonschema:"description=Timestamped transcript segments"`
}

// TranscriptTrack describes one caption track available for a video.
type TranscriptTrack struct {
	LanguageCode string
	Name         string
	// IsGenerated marks automatic (ASR) tracks; manually created tracks
	// are preferred for translation fallback.
	IsGenerated    bool
	IsTranslatable bool
	// BaseURL is the track's fetch URL as reported by the player response.
	BaseURL string
}
