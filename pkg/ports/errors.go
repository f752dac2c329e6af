package ports

import "errors"

// Error kinds shared by stages and adapters. Wrap them with %w and
// classify with errors.Is.
var (
	// ErrCapture means the window is inaccessible or closed.
	ErrCapture = errors.New("capture failed")

	// ErrGeometryMismatch marks a frame whose size differs from the session's.
	// The capture loop logs it at debug level, discards the frame and
	// retries; it never reaches the caller.
	ErrGeometryMismatch = errors.New("frame geometry mismatch")

	// ErrEncode means the encoder rejected a frame or failed to finish.
	ErrEncode = errors.New("encode failed")

	// ErrChannel means the frame handoff between producer and consumer broke.
	ErrChannel = errors.New("frame handoff broken")

	// ErrToolUnavailable means the transcoder is missing or lacks the codec.
	ErrToolUnavailable = errors.New("transcoder unavailable")

	// ErrTranscode means the transcoder ran but failed.
	ErrTranscode = errors.New("transcode failed")
)
