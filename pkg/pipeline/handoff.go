package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/Jamyw7g/wingif/pkg/ports"
)

// DefaultHandoffCapacity is the number of frames buffered between the
// capture loop and the encoder.
const DefaultHandoffCapacity = 8

// Handoff moves frames from a single producer to a single consumer.
// Ownership of each frame's buffer passes to the consumer on Send.
//
// The producer calls Send and then Close exactly once. The consumer
// ranges over Frames and calls Abandon if it stops early, which makes
// pending and future Sends fail instead of blocking forever.
type Handoff struct {
	frames      chan ports.Frame
	abandoned   chan struct{}
	closeOnce   sync.Once
	abandonOnce sync.Once
}

// NewHandoff creates a handoff buffering up to capacity frames.
func NewHandoff(capacity int) *Handoff {
	if capacity < 0 {
		capacity = 0
	}
	return &Handoff{
		frames:    make(chan ports.Frame, capacity),
		abandoned: make(chan struct{}),
	}
}

// Send delivers a frame, blocking while the buffer is full.
func (h *Handoff) Send(ctx context.Context, frame ports.Frame) error {
	// Refuse outright once abandoned, even if buffer space remains
	select {
	case <-h.abandoned:
		return fmt.Errorf("%w: consumer stopped before frame %d", ports.ErrChannel, frame.Index)
	default:
	}

	select {
	case h.frames <- frame:
		return nil
	case <-h.abandoned:
		return fmt.Errorf("%w: consumer stopped before frame %d", ports.ErrChannel, frame.Index)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close signals that no more frames will be sent.
func (h *Handoff) Close() {
	h.closeOnce.Do(func() { close(h.frames) })
}

// Frames returns the receive side. It is closed after the producer's Close.
func (h *Handoff) Frames() <-chan ports.Frame {
	return h.frames
}

// Abandon tells the producer the consumer has stopped receiving.
func (h *Handoff) Abandon() {
	h.abandonOnce.Do(func() { close(h.abandoned) })
}
