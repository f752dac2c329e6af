package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Jamyw7g/wingif/pkg/adapters/logger"
	"github.com/Jamyw7g/wingif/pkg/ports"
)

const versionWithX264 = `ffmpeg version 6.1 Copyright (c) 2000-2023 the FFmpeg developers
configuration: --prefix=/usr --enable-gpl --enable-libx264 --enable-libvpx
libavutil      58. 29.100 / 58. 29.100`

const versionWithoutFlags = `ffmpeg version 6.1-static https://johnvansickle.com/ffmpeg/
libavutil      58. 29.100 / 58. 29.100`

const encodersList = `Encoders:
 V..... = Video
 ------
 V....D a64multi             Multicolor charset for Commodore 64 (codec a64_multi)
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10 (codec h264)
 A....D aac                  AAC (Advanced Audio Coding)`

func fakeBinary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

type call struct {
	bin  string
	args []string
}

func newFake(t *testing.T, outputs map[string]string, fail map[string]error) (*Transcoder, *[]call) {
	t.Helper()
	tr := New(fakeBinary(t), "", logger.NewNoop())
	var calls []call
	tr.run = func(ctx context.Context, bin string, args ...string) ([]byte, error) {
		calls = append(calls, call{bin: bin, args: args})
		key := args[len(args)-1]
		return []byte(outputs[key]), fail[key]
	}
	return tr, &calls
}

func TestFind_Custom(t *testing.T) {
	bin := fakeBinary(t)
	got, err := Find(bin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != bin {
		t.Errorf("expected %s, got %s", bin, got)
	}

	_, err = Find(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ports.ErrToolUnavailable) {
		t.Errorf("expected ErrToolUnavailable, got %v", err)
	}
}

func TestFind_Env(t *testing.T) {
	bin := fakeBinary(t)
	t.Setenv("FFMPEG_PATH", bin)

	got, err := Find("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != bin {
		t.Errorf("expected %s, got %s", bin, got)
	}
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		encoders  string
		wantErr   bool
		wantCalls int
	}{
		{"configure flag", versionWithX264, "", false, 1},
		{"encoder list fallback", versionWithoutFlags, encodersList, false, 2},
		{"codec missing", versionWithoutFlags, "Encoders:\n V....D mpeg4 MPEG-4 part 2", true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, calls := newFake(t, map[string]string{
				"-version":  tt.version,
				"-encoders": tt.encoders,
			}, nil)

			err := tr.Probe(context.Background())
			if tt.wantErr {
				if !errors.Is(err, ports.ErrToolUnavailable) {
					t.Errorf("expected ErrToolUnavailable, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if len(*calls) != tt.wantCalls {
				t.Errorf("expected %d invocations, got %d", tt.wantCalls, len(*calls))
			}
		})
	}
}

func TestProbe_VersionFails(t *testing.T) {
	tr, _ := newFake(t, nil, map[string]error{"-version": errors.New("exec format error")})

	err := tr.Probe(context.Background())
	if !errors.Is(err, ports.ErrToolUnavailable) {
		t.Errorf("expected ErrToolUnavailable, got %v", err)
	}
}

func TestTranscode(t *testing.T) {
	tr, calls := newFake(t, nil, nil)

	if err := tr.Transcode(context.Background(), "in.gif", "out.mp4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("expected one invocation, got %d", len(*calls))
	}

	args := strings.Join((*calls)[0].args, " ")
	for _, want := range []string{"-i in.gif", "-c:v libx264", "-vf " + evenFilter, "out.mp4", "-y"} {
		if !strings.Contains(args, want) {
			t.Errorf("expected %q in %q", want, args)
		}
	}
}

func TestTranscode_Failure(t *testing.T) {
	tr, _ := newFake(t, map[string]string{"-y": "Unknown encoder 'libx264'"}, map[string]error{"-y": errors.New("exit status 1")})

	err := tr.Transcode(context.Background(), "in.gif", "out.mp4")
	if !errors.Is(err, ports.ErrTranscode) {
		t.Fatalf("expected ErrTranscode, got %v", err)
	}
}

func TestArgs(t *testing.T) {
	args := Args("a.gif", "b.mov", "libx265")

	index := func(s string) int {
		for i, a := range args {
			if a == s {
				return i
			}
		}
		return -1
	}

	in, out := index("a.gif"), index("b.mov")
	if in < 1 || args[in-1] != "-i" {
		t.Errorf("expected input after -i, got %v", args)
	}
	if out < in {
		t.Errorf("expected output after input, got %v", args)
	}
	if c := index("-c:v"); c < 0 || args[c+1] != "libx265" {
		t.Errorf("expected -c:v libx265, got %v", args)
	}
}

func TestListsEncoder(t *testing.T) {
	if !listsEncoder(encodersList, "libx264") {
		t.Error("expected libx264 to be listed")
	}
	if listsEncoder(encodersList, "libx265") {
		t.Error("libx265 is not listed")
	}
	if listsEncoder("libx264", "libx264") {
		t.Error("a bare word is not an encoder row")
	}
}

func TestTail(t *testing.T) {
	if got := tail("a\nb\nc\n", 2); got != "b\nc" {
		t.Errorf("unexpected tail %q", got)
	}
}
