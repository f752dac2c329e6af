package mocks

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Jamyw7g/wingif/pkg/ports"
)

// FrameEncoder is a mock implementation of ports.FrameEncoder.
type FrameEncoder struct {
	BeginFunc    func(width, height int, opts ports.EncoderOptions) error
	AddFrameFunc func(frame ports.Frame) error
	FinishFunc   func(w io.Writer) error

	// FailAtIndex makes AddFrame reject the frame with this index.
	// Negative disables; set it explicitly since 0 is a valid index.
	FailAtIndex int

	// Output is written to the Begin writer by Finish when FinishFunc
	// is nil.
	Output []byte

	mu          sync.Mutex
	w           io.Writer
	BeginCalled bool
	Width       int
	Height      int
	Options     ports.EncoderOptions
	Frames      []AddFrameCall
	FinishCalls int
}

// AddFrameCall records a call to AddFrame.
type AddFrameCall struct {
	Index     int
	Timestamp time.Duration
	Geometry  ports.Geometry
}

// NewFrameEncoder creates a mock encoder that accepts every frame.
func NewFrameEncoder() *FrameEncoder {
	return &FrameEncoder{
		FailAtIndex: -1,
		Output:      []byte("GIF89a"),
	}
}

func (m *FrameEncoder) Begin(w io.Writer, width, height int, opts ports.EncoderOptions) error {
	m.mu.Lock()
	m.w = w
	m.BeginCalled = true
	m.Width, m.Height, m.Options = width, height, opts
	m.mu.Unlock()
	if m.BeginFunc != nil {
		return m.BeginFunc(width, height, opts)
	}
	return nil
}

func (m *FrameEncoder) AddFrame(frame ports.Frame) error {
	m.mu.Lock()
	m.Frames = append(m.Frames, AddFrameCall{
		Index:     frame.Index,
		Timestamp: frame.Timestamp,
		Geometry:  frame.Buffer.Geometry(),
	})
	m.mu.Unlock()
	if m.AddFrameFunc != nil {
		return m.AddFrameFunc(frame)
	}
	if m.FailAtIndex >= 0 && frame.Index == m.FailAtIndex {
		return fmt.Errorf("mock encoder rejected frame %d", frame.Index)
	}
	return nil
}

func (m *FrameEncoder) Finish() error {
	m.mu.Lock()
	m.FinishCalls++
	w := m.w
	m.mu.Unlock()
	if m.FinishFunc != nil {
		return m.FinishFunc(w)
	}
	_, err := w.Write(m.Output)
	return err
}

// Calls returns a snapshot of recorded AddFrame calls.
func (m *FrameEncoder) Calls() []AddFrameCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AddFrameCall(nil), m.Frames...)
}

// Finished returns the number of Finish calls.
func (m *FrameEncoder) Finished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FinishCalls
}

var _ ports.FrameEncoder = (*FrameEncoder)(nil)
