// Package gifencoder provides an incremental animated GIF encoder.
//
// Each frame gets its own median-cut palette. Frames are optionally
// downscaled and Floyd-Steinberg dithered, then LZW-compressed and
// written as soon as the following frame fixes their delay. At most one
// compressed frame is held in memory.
package gifencoder

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"
	"time"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"

	"github.com/Jamyw7g/wingif/pkg/ports"
)

const (
	// maxColors is the GIF palette limit.
	maxColors = 256

	// minDelay is the smallest frame delay, in centiseconds, that common
	// viewers honour. Shorter delays are played back at 10 cs.
	minDelay = 2
)

// Encoder implements ports.FrameEncoder for animated GIFs.
type Encoder struct {
	mu sync.Mutex

	width, height int // source geometry
	bounds        image.Rectangle
	opts          ports.EncoderOptions
	quantizer     quantize.MedianCutQuantizer
	scaled        *image.RGBA
	paletted      *image.Paletted // reused for every frame

	out      *stream
	began    bool
	finished bool

	// pending is the compressed block of the last frame, waiting for
	// the next frame or Finish to fix its delay.
	pending   []byte
	frames    int
	lastDelay int

	start     time.Duration // timestamp of the first frame
	lastIndex int
	lastTime  time.Duration
	// elapsed is the sum of the delays emitted so far, in centiseconds.
	// Delays are derived from it so rounding never accumulates drift.
	elapsed int
}

// New creates a new GIF encoder.
func New() *Encoder {
	return &Encoder{}
}

// Begin fixes the source geometry and writes the GIF header to w. When
// opts.MaxWidth is narrower than width, frames are scaled down
// proportionally.
func (e *Encoder) Begin(w io.Writer, width, height int, opts ports.EncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if w == nil {
		return fmt.Errorf("gifencoder: no output")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("gifencoder: invalid size %dx%d", width, height)
	}
	if e.finished {
		return ErrFinished
	}

	e.width, e.height = width, height
	e.opts = opts
	e.bounds = image.Rect(0, 0, width, height)
	e.scaled = nil
	if opts.MaxWidth > 0 && width > opts.MaxWidth {
		h := height * opts.MaxWidth / width
		if h < 1 {
			h = 1
		}
		e.bounds = image.Rect(0, 0, opts.MaxWidth, h)
		e.scaled = image.NewRGBA(e.bounds)
	}
	e.paletted = image.NewPaletted(e.bounds, nil)

	e.out = newStream(w)
	if err := e.out.header(e.bounds.Dx(), e.bounds.Dy()); err != nil {
		return fmt.Errorf("gifencoder: write header: %w", err)
	}

	e.pending = nil
	e.frames = 0
	e.lastDelay = 0
	e.start = 0
	e.lastIndex = -1
	e.lastTime = 0
	e.elapsed = 0
	e.began = true
	return nil
}

// OutputSize returns the dimensions of the encoded animation.
func (e *Encoder) OutputSize() (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bounds.Dx(), e.bounds.Dy()
}

// AddFrame quantizes and compresses the frame, then writes the previous
// frame now that its delay is known.
func (e *Encoder) AddFrame(frame ports.Frame) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.began {
		return ErrNotInitialized
	}
	if e.finished {
		return ErrFinished
	}
	if frame.Buffer == nil {
		return fmt.Errorf("gifencoder: frame %d has no pixels", frame.Index)
	}
	if g := frame.Buffer.Geometry(); g.Width != e.width || g.Height != e.height {
		return fmt.Errorf("gifencoder: frame %d is %s, expected %dx%d", frame.Index, g, e.width, e.height)
	}
	if e.frames > 0 && (frame.Index <= e.lastIndex || frame.Timestamp <= e.lastTime) {
		return fmt.Errorf("%w: frame %d at %v follows frame %d at %v",
			ErrOutOfOrder, frame.Index, frame.Timestamp, e.lastIndex, e.lastTime)
	}

	var src image.Image = frame.Buffer.RGBA()
	if e.scaled != nil {
		draw.CatmullRom.Scale(e.scaled, e.bounds, src, src.Bounds(), draw.Src, nil)
		src = e.scaled
	}

	palette := e.quantizer.Quantize(make(color.Palette, 0, maxColors), src)
	if len(palette) == 0 {
		palette = color.Palette{color.Black}
	}
	img := e.paletted
	img.Palette = palette
	if e.opts.Dither {
		draw.FloydSteinberg.Draw(img, e.bounds, src, image.Point{})
	} else {
		draw.Draw(img, e.bounds, src, image.Point{}, draw.Src)
	}

	block, err := compressImage(img)
	if err != nil {
		return fmt.Errorf("gifencoder: compress frame %d: %w", frame.Index, err)
	}

	if e.frames == 0 {
		e.start = frame.Timestamp
	} else {
		delay := e.delayUntil(frame.Timestamp)
		if err := e.out.frame(delay, e.pending); err != nil {
			return fmt.Errorf("gifencoder: write frame %d: %w", e.frames-1, err)
		}
		e.lastDelay = delay
	}
	e.pending = block
	e.frames++
	e.lastIndex = frame.Index
	e.lastTime = frame.Timestamp
	return nil
}

// delayUntil returns the delay of the previous frame so that the next
// one starts as close to ts as centisecond resolution allows.
func (e *Encoder) delayUntil(ts time.Duration) int {
	target := centiseconds(ts - e.start)
	d := target - e.elapsed
	if d < minDelay {
		d = minDelay
	}
	e.elapsed += d
	return d
}

// Finish writes the last frame and the trailer.
func (e *Encoder) Finish() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.began {
		return ErrNotInitialized
	}
	if e.finished {
		return ErrFinished
	}
	e.finished = true

	if e.frames == 0 {
		return ErrNoFrames
	}

	last := e.lastDelay
	if e.frames == 1 && e.opts.FPS > 0 {
		last = 100 / e.opts.FPS
	}
	if last < minDelay {
		last = minDelay
	}

	if err := e.out.frame(last, e.pending); err != nil {
		return fmt.Errorf("gifencoder: write frame %d: %w", e.frames-1, err)
	}
	e.pending = nil
	if err := e.out.close(); err != nil {
		return fmt.Errorf("gifencoder: write trailer: %w", err)
	}
	return nil
}

func centiseconds(d time.Duration) int {
	return int((d + 5*time.Millisecond) / (10 * time.Millisecond))
}

var _ ports.FrameEncoder = (*Encoder)(nil)
