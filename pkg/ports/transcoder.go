package ports

import "context"

// Transcoder abstracts the external video conversion tool.
type Transcoder interface {
	// Probe checks that the tool exists and supports the required codec.
	// Fails with an error wrapping ErrToolUnavailable.
	Probe(ctx context.Context) error

	// Transcode converts the file at input into output.
	// Fails with an error wrapping ErrTranscode.
	Transcode(ctx context.Context, input, output string) error
}

// CodecDetector inspects a finished video container.
type CodecDetector interface {
	// DetectFromFile returns the codec name of the first video track.
	DetectFromFile(path string) (string, error)
}
