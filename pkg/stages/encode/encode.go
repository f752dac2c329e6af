// Package encode implements the GIF encoding stage.
package encode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Jamyw7g/wingif/pkg/pipeline"
	"github.com/Jamyw7g/wingif/pkg/ports"
)

// Stage consumes frames from a handoff and streams them into an
// animated image encoder.
type Stage struct {
	encoder ports.FrameEncoder
	logger  ports.Logger
}

// NewStage creates a new encode stage.
func NewStage(encoder ports.FrameEncoder, logger ports.Logger) *Stage {
	return &Stage{
		encoder: encoder,
		logger:  logger.WithComponent("encode"),
	}
}

// Execute streams every frame received on input.Frames into
// input.Output in order and terminates the stream once the handoff
// closes.
//
// On an encoder failure or cancellation the handoff is abandoned so the
// producer stops, and the stream is left unterminated for the caller to
// discard.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{}

	if input.Frames == nil || input.Output == nil {
		return result, errors.New("encode: frame handoff and output are required")
	}

	counter := &countingWriter{w: input.Output}
	g := input.Geometry
	if err := s.encoder.Begin(counter, g.Width, g.Height, input.Options); err != nil {
		input.Frames.Abandon()
		return result, fmt.Errorf("%w: begin %s: %w", ports.ErrEncode, g, err)
	}
	s.logger.Debug("Encoding %s frames (max width %d, dither %t)", g, input.Options.MaxWidth, input.Options.Dither)

	var last time.Duration
	for frame := range input.Frames.Frames() {
		if err := ctx.Err(); err != nil {
			input.Frames.Abandon()
			return result, err
		}
		if err := s.encoder.AddFrame(frame); err != nil {
			input.Frames.Abandon()
			return result, fmt.Errorf("%w: frame %d: %w", ports.ErrEncode, frame.Index, err)
		}
		result.FrameCount++
		last = frame.Timestamp
		s.logger.Debug("Encoded frame %d at %v", frame.Index, frame.Timestamp)
	}

	// The handoff also closes when capture fails; let the caller's
	// cancellation keep a partial stream from being finished.
	if err := ctx.Err(); err != nil {
		input.Frames.Abandon()
		return result, err
	}

	if err := s.encoder.Finish(); err != nil {
		return result, fmt.Errorf("%w: finish: %w", ports.ErrEncode, err)
	}
	result.Bytes = counter.n

	if result.FrameCount > 0 {
		result.Duration = last + frameInterval(input.Options.FPS)
	}
	return result, nil
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// countingWriter counts bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
