// Package summarizer provides summary generation for recording results.
package summarizer

import "time"

// Summary contains all data collected during a recording session.
type Summary struct {
	// Metadata
	GeneratedAt time.Time `json:"generatedAt"`

	// Session identity and target
	Session SessionInfo `json:"session"`

	// Capture loop results
	Capture CaptureInfo `json:"capture"`

	// Recording settings
	Settings Settings `json:"settings"`

	// Files produced
	Output OutputInfo `json:"output"`
}

// SessionInfo identifies the recording.
type SessionInfo struct {
	ID        string    `json:"id"`
	Window    uint32    `json:"window"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	FPS       int       `json:"fps"`
	StartedAt time.Time `json:"startedAt"`
}

// CaptureInfo contains capture loop measurements.
type CaptureInfo struct {
	FrameCount int `json:"frameCount"`
	Discarded  int `json:"discarded"`
	DurationMs int `json:"durationMs"`
}

// Settings contains the recording configuration.
type Settings struct {
	Shell        string `json:"shell"`
	MaxWidth     int    `json:"maxWidth"` // 0 = native width
	Dither       bool   `json:"dither"`
	BufferFrames int    `json:"bufferFrames"`
}

// OutputInfo describes the GIF and the optional video.
type OutputInfo struct {
	GIFPath string `json:"gifPath"`
	GIFSize int64  `json:"gifSize"`

	VideoPath  string `json:"videoPath,omitempty"` // empty when no video was requested
	VideoSize  int64  `json:"videoSize,omitempty"`
	VideoCodec string `json:"videoCodec,omitempty"`

	// TranscodeError is set when the video could not be produced.
	TranscodeError string `json:"transcodeError,omitempty"`
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSession sets session information.
func (b *Builder) WithSession(session SessionInfo) *Builder {
	b.summary.Session = session
	return b
}

// WithCapture sets capture results.
func (b *Builder) WithCapture(frames, discarded int, duration time.Duration) *Builder {
	b.summary.Capture = CaptureInfo{
		FrameCount: frames,
		Discarded:  discarded,
		DurationMs: int(duration.Milliseconds()),
	}
	return b
}

// WithSettings sets recording settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithOutput sets output file information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
