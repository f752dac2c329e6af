// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Jamyw7g/wingif/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveFrame writes the frame as a PNG labelled with its index and
// timestamp, under frames/frame-NNNN.png.
func (s *Sink) SaveFrame(frame ports.Frame) error {
	if frame.Buffer == nil {
		return fmt.Errorf("frame %d has no pixels", frame.Index)
	}

	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}

	img := s.renderer.Annotate(frame.Buffer.RGBA(), Label(frame.Index, frame.Timestamp))
	data, err := s.renderer.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", frame.Index, err)
	}

	path := filepath.Join(dir, FrameName(frame.Index))
	return s.fs.WriteFile(path, data)
}

// SaveSessionJSON saves the session metadata as JSON.
func (s *Sink) SaveSessionJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "session.json")
	return s.fs.WriteFile(path, data)
}

// FrameName returns the file name used for a frame index.
func FrameName(index int) string {
	return fmt.Sprintf("frame-%04d.png", index)
}

// Label formats a frame timestamp the way it appears on dumped frames.
func Label(index int, ts time.Duration) string {
	return fmt.Sprintf("#%04d %.3fs", index, ts.Seconds())
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
