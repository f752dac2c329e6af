package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jamyw7g/wingif/pkg/mocks"
	"github.com/Jamyw7g/wingif/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveSessionJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, &mocks.Renderer{})

	data := []byte(`{"id": "abc"}`)
	if err := sink.SaveSessionJSON(data); err != nil {
		t.Fatalf("SaveSessionJSON failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "session.json")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	if string(saved) != string(data) {
		t.Errorf("expected %q, got %q", data, saved)
	}
}

func TestSink_SaveFrame(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{}
	sink := New(testBaseDir, fs, renderer)

	frame := ports.Frame{
		Index:     7,
		Timestamp: 1400 * time.Millisecond,
		Buffer:    mocks.SolidBuffer(ports.Geometry{Width: 4, Height: 2}, 0x40),
	}
	if err := sink.SaveFrame(frame); err != nil {
		t.Fatalf("SaveFrame failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "frames", "frame-0007.png")
	if _, ok := fs.GetFile(expectedPath); !ok {
		t.Errorf("expected file to be saved at %s", expectedPath)
	}
	if exists, _ := fs.Exists(filepath.Join(testBaseDir, "frames")); !exists {
		t.Error("expected frames directory to be created")
	}
	if len(renderer.Labels) != 1 || renderer.Labels[0] != "#0007 1.400s" {
		t.Errorf("unexpected labels %v", renderer.Labels)
	}
}

func TestSink_SaveFrame_EncodeError(t *testing.T) {
	renderer := &mocks.Renderer{
		EncodePNGFunc: func(img image.Image) ([]byte, error) {
			return nil, errors.New("boom")
		},
	}
	sink := New(testBaseDir, mocks.NewFileSystem(), renderer)

	frame := ports.Frame{Buffer: mocks.SolidBuffer(ports.Geometry{Width: 2, Height: 2}, 0)}
	if err := sink.SaveFrame(frame); err == nil {
		t.Error("expected error when PNG encoding fails")
	}
}

func TestSink_SaveFrame_NoBuffer(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})
	if err := sink.SaveFrame(ports.Frame{Index: 1}); err == nil {
		t.Error("expected error for a frame without pixels")
	}
}
