package pipeline

import (
	"io"
	"time"

	"github.com/Jamyw7g/wingif/pkg/cancellation"
	"github.com/Jamyw7g/wingif/pkg/ports"
)

// CaptureSession identifies what is recorded. Immutable once created.
type CaptureSession struct {
	ID     string             // Session identifier for logs and summaries
	Window ports.WindowHandle // Target window
	FPS    int                // Frames per second, 1-255
}

// =============================================================================
// Session (driver) Stage Types
// =============================================================================

// SessionInput contains parameters for the recorded shell session.
type SessionInput struct {
	Session CaptureSession
}

// SessionResult describes the finished shell session.
type SessionResult struct {
	StartedAt time.Time
	Duration  time.Duration
}

// =============================================================================
// Capture Stage Types
// =============================================================================

// CaptureInput contains parameters for the capture loop.
type CaptureInput struct {
	Session CaptureSession

	// Geometry established for the session. Frames of any other size are
	// discarded. Zero means the loop probes it from the first capture.
	Geometry ports.Geometry

	// Token stops the loop when fired.
	Token *cancellation.Token

	// Frames receives accepted frames. The caller closes it after the
	// stage returns.
	Frames *Handoff
}

// CaptureResult summarizes the capture loop.
type CaptureResult struct {
	FrameCount int            // Accepted frames handed to the encoder
	Discarded  int            // Captures dropped for mismatched geometry
	Geometry   ports.Geometry // Geometry enforced on accepted frames
	Elapsed    time.Duration
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput contains parameters for the encode sink.
type EncodeInput struct {
	Geometry ports.Geometry
	Options  ports.EncoderOptions
	Frames   *Handoff
	Output   io.Writer // Receives the finished stream exactly once
}

// EncodeResult summarizes the encoded output.
type EncodeResult struct {
	FrameCount int
	Duration   time.Duration // Timestamp of the last frame plus one interval
	Bytes      int64
}

// =============================================================================
// Transcode Stage Types
// =============================================================================

// TranscodeInput contains parameters for the post-process step.
type TranscodeInput struct {
	InputPath  string
	OutputPath string
}

// TranscodeResult describes the transcoded output.
type TranscodeResult struct {
	OutputPath string
	Codec      string // Detected video codec, empty if not inspected
	FileSize   int64
}
