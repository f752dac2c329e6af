// Package capture implements the frame-producing capture loop.
package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Jamyw7g/wingif/pkg/pacing"
	"github.com/Jamyw7g/wingif/pkg/pipeline"
	"github.com/Jamyw7g/wingif/pkg/ports"
)

// Stage samples a window at a fixed rate and hands accepted frames to
// the encoder until the session's token fires.
type Stage struct {
	source ports.FrameSource
	sink   ports.DebugSink
	logger ports.Logger
}

// New creates a new capture stage.
func New(source ports.FrameSource, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		source: source,
		sink:   sink,
		logger: logger.WithComponent("capture"),
	}
}

// Execute runs the capture loop. It returns after the token fires
// during a pacing wait, or on the first capture or handoff failure.
// The caller owns input.Frames and closes it once Execute returns.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptureInput) (pipeline.CaptureResult, error) {
	result := pipeline.CaptureResult{Geometry: input.Geometry}

	if input.Token == nil || input.Frames == nil {
		return result, errors.New("capture: token and frame handoff are required")
	}

	pacer, err := pacing.New(input.Session.FPS)
	if err != nil {
		return result, fmt.Errorf("capture: %w", err)
	}

	window := input.Session.Window
	if result.Geometry == (ports.Geometry{}) {
		probe, err := s.source.Capture(window)
		if err != nil {
			return result, fmt.Errorf("probe window %d: %w", window, err)
		}
		result.Geometry = probe.Geometry()
	}
	s.logger.Debug("Capturing window %d at %d fps (%s, %v interval)",
		window, pacer.FPS(), result.Geometry, pacer.Interval())

	began := time.Now()
	err = s.loop(ctx, input, pacer, &result)
	result.Elapsed = time.Since(began)
	if err != nil {
		return result, err
	}

	s.logger.Debug("Captured %d frames, discarded %d", result.FrameCount, result.Discarded)
	return result, nil
}

func (s *Stage) loop(ctx context.Context, input pipeline.CaptureInput, pacer *pacing.Pacer, result *pipeline.CaptureResult) error {
	window := input.Session.Window
	index := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		buf, err := s.source.Capture(window)
		if err != nil {
			return fmt.Errorf("capture frame %d: %w", index, err)
		}

		// A resize races the capture; drop the frame and retry at once.
		// The non-blocking poll keeps a persistently resized window from
		// outliving the session.
		if err := buf.Match(result.Geometry); err != nil {
			result.Discarded++
			s.logger.Debug("Discarded frame: %s", err)
			if input.Token.Fired() {
				return nil
			}
			continue
		}

		frame := ports.Frame{
			Index:     index,
			Timestamp: pacer.Timestamp(index),
			Buffer:    buf,
		}

		// Save before the handoff; the buffer belongs to the encoder after it.
		if s.sink.Enabled() {
			if err := s.sink.SaveFrame(frame); err != nil {
				s.logger.Warn("Failed to save debug frame %d: %s", index, err)
			}
		}

		if err := input.Frames.Send(ctx, frame); err != nil {
			return fmt.Errorf("hand off frame %d: %w", index, err)
		}
		result.FrameCount++

		if pacer.Wait(start, input.Token) {
			return nil
		}
		index++
	}
}
