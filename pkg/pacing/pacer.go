// Package pacing holds a steady frame rate across iterations whose
// capture and encode cost varies.
package pacing

import (
	"fmt"
	"time"

	"github.com/Jamyw7g/wingif/pkg/cancellation"
)

const (
	// MinFPS and MaxFPS bound the accepted frame rates.
	MinFPS = 1
	MaxFPS = 255

	// SettleWait is the last-chance cancellation poll issued after the
	// residual wait. It catches a fire that lands on the interval boundary.
	SettleWait = time.Millisecond
)

// Pacer computes per-frame intervals and sleeps the residual time.
type Pacer struct {
	fps      int
	interval time.Duration
	settle   time.Duration
	now      func() time.Time
}

// New creates a pacer for fps frames per second.
func New(fps int) (*Pacer, error) {
	if fps < MinFPS || fps > MaxFPS {
		return nil, fmt.Errorf("fps must be %d-%d, got %d", MinFPS, MaxFPS, fps)
	}
	return &Pacer{
		fps:      fps,
		interval: time.Second / time.Duration(fps),
		settle:   SettleWait,
		now:      time.Now,
	}, nil
}

// FPS returns the target frame rate.
func (p *Pacer) FPS() int {
	return p.fps
}

// Interval returns the target time between frames.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Timestamp returns the presentation time of the frame at index.
func (p *Pacer) Timestamp(index int) time.Duration {
	return time.Duration(index) * time.Second / time.Duration(p.fps)
}

// Wait sleeps out the remainder of the interval that began at start,
// racing the token. It returns true if the token fired, in which case
// no further frame should be captured.
//
// The wait runs in two stages. The first absorbs the scheduling slack
// and is skipped when the iteration already overran its interval. The
// second is a short poll that catches a fire racing the first stage's
// timer; select picks randomly between ready cases.
func (p *Pacer) Wait(start time.Time, tok *cancellation.Token) bool {
	elapsed := p.now().Sub(start)
	if elapsed < p.interval && tok.WaitFor(p.interval-elapsed) {
		return true
	}
	return tok.WaitFor(p.settle)
}
