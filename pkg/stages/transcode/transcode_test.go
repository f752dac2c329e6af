package transcode

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Jamyw7g/wingif/pkg/adapters/logger"
	"github.com/Jamyw7g/wingif/pkg/mocks"
	"github.com/Jamyw7g/wingif/pkg/pipeline"
	"github.com/Jamyw7g/wingif/pkg/ports"
)

func newFixture() (*mocks.Transcoder, *mocks.CodecDetector, *mocks.FileSystem) {
	fs := mocks.NewFileSystem()
	fs.SetFile("out/demo.gif", []byte("GIF89a"))
	tc := &mocks.Transcoder{
		TranscodeFunc: func(ctx context.Context, input, output string) error {
			fs.SetFile(output, make([]byte, 1234))
			return nil
		},
	}
	return tc, &mocks.CodecDetector{Codec: "h264"}, fs
}

func TestStage_Execute(t *testing.T) {
	tc, det, fs := newFixture()
	stage := New(tc, det, fs, logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.TranscodeInput{
		InputPath:  "out/demo.gif",
		OutputPath: "out/demo.mp4",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tc.TranscodeCalls) != 1 || tc.TranscodeCalls[0].Output != "out/demo.mp4" {
		t.Errorf("unexpected transcode calls: %+v", tc.TranscodeCalls)
	}
	if result.FileSize != 1234 {
		t.Errorf("expected size 1234, got %d", result.FileSize)
	}
	if result.Codec != "h264" {
		t.Errorf("expected codec h264, got %q", result.Codec)
	}
	if data, ok := fs.GetFile("out/demo.gif"); !ok || string(data) != "GIF89a" {
		t.Error("input GIF must be left in place")
	}
}

func TestStage_Execute_ProbeOnce(t *testing.T) {
	tc, det, fs := newFixture()
	tc.ProbeFunc = func(ctx context.Context) error {
		return fmt.Errorf("%w: libx264 missing", ports.ErrToolUnavailable)
	}
	stage := New(tc, det, fs, logger.NewNoop())

	for i := 0; i < 2; i++ {
		_, err := stage.Execute(context.Background(), pipeline.TranscodeInput{
			InputPath:  "out/demo.gif",
			OutputPath: "out/demo.mp4",
		})
		if !errors.Is(err, ports.ErrToolUnavailable) {
			t.Fatalf("expected ErrToolUnavailable, got %v", err)
		}
	}

	if tc.ProbeCalls != 1 {
		t.Errorf("expected one probe, got %d", tc.ProbeCalls)
	}
	if len(tc.TranscodeCalls) != 0 {
		t.Error("transcode must not run when the tool is unavailable")
	}
}

func TestStage_Execute_MissingInput(t *testing.T) {
	tc, det, fs := newFixture()
	stage := New(tc, det, fs, logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.TranscodeInput{
		InputPath:  "out/missing.gif",
		OutputPath: "out/missing.mp4",
	})
	if !errors.Is(err, ports.ErrTranscode) {
		t.Fatalf("expected ErrTranscode, got %v", err)
	}
}

func TestStage_Execute_TranscodeError(t *testing.T) {
	tc, det, fs := newFixture()
	tc.TranscodeFunc = func(ctx context.Context, input, output string) error {
		return fmt.Errorf("%w: exit status 1", ports.ErrTranscode)
	}
	stage := New(tc, det, fs, logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.TranscodeInput{
		InputPath:  "out/demo.gif",
		OutputPath: "out/demo.mp4",
	})
	if !errors.Is(err, ports.ErrTranscode) {
		t.Fatalf("expected ErrTranscode, got %v", err)
	}
	if _, ok := fs.GetFile("out/demo.gif"); !ok {
		t.Error("input GIF must survive a failed transcode")
	}
}

func TestStage_Execute_CodecInspection(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		detector  *mocks.CodecDetector
		wantCodec string
		inspected bool
	}{
		{"mp4 h264", "out/a.mp4", &mocks.CodecDetector{Codec: "h264"}, "h264", true},
		{"mov other codec", "out/a.mov", &mocks.CodecDetector{Codec: "av1"}, "av1", true},
		{"detector error", "out/a.m4v", &mocks.CodecDetector{Err: errors.New("no moov")}, "", true},
		{"webm skipped", "out/a.webm", &mocks.CodecDetector{Codec: "vp9"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, _, fs := newFixture()
			stage := New(tc, tt.detector, fs, logger.NewNoop())

			result, err := stage.Execute(context.Background(), pipeline.TranscodeInput{
				InputPath:  "out/demo.gif",
				OutputPath: tt.output,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Codec != tt.wantCodec {
				t.Errorf("expected codec %q, got %q", tt.wantCodec, result.Codec)
			}
			if got := len(tt.detector.Paths) > 0; got != tt.inspected {
				t.Errorf("inspected = %v, want %v", got, tt.inspected)
			}
		})
	}
}

func TestStage_NilDetector(t *testing.T) {
	tc, _, fs := newFixture()
	stage := New(tc, nil, fs, logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.TranscodeInput{
		InputPath:  "out/demo.gif",
		OutputPath: "out/demo.mp4",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Codec != "" {
		t.Errorf("expected no codec without detector, got %q", result.Codec)
	}
}
