package ports

import (
	"io"
	"time"
)

// Frame is a captured pixel buffer tagged with its sequence position.
type Frame struct {
	Index     int           // Starts at 0, increments per accepted frame
	Timestamp time.Duration // Presentation time, Index / fps
	Buffer    *PixelBuffer
}

// FrameEncoder abstracts the incremental image encoder. The stream is
// written to w as frames arrive; a failed session leaves it truncated.
type FrameEncoder interface {
	// Begin configures the encoder before any frame is submitted.
	Begin(w io.Writer, width, height int, opts EncoderOptions) error

	// AddFrame submits one frame. Frames must arrive in strictly
	// increasing timestamp order.
	AddFrame(frame Frame) error

	// Finish drains buffered frames and terminates the stream. Called
	// exactly once.
	Finish() error
}

// EncoderOptions configures the image encoder.
type EncoderOptions struct {
	FPS      int  // Target frame rate, used for the final frame's delay
	MaxWidth int  // Downscale frames wider than this (0 = native size)
	Dither   bool // Floyd-Steinberg error diffusion when mapping to the palette
}
