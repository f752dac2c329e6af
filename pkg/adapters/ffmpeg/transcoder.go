package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/Jamyw7g/wingif/pkg/ports"
)

// DefaultCodec is the video encoder requested from ffmpeg.
const DefaultCodec = "libx264"

// evenFilter converts to 4:2:0 chroma and rounds both dimensions down to
// even numbers, which libx264 requires.
const evenFilter = "format=yuv420p,scale=trunc(iw/2)*2:trunc(ih/2)*2"

// Transcoder implements ports.Transcoder by running ffmpeg.
type Transcoder struct {
	path   string // explicit binary, empty to search
	codec  string
	logger ports.Logger

	// run executes the binary and returns combined output.
	run func(ctx context.Context, bin string, args ...string) ([]byte, error)
}

// New creates a transcoder. path may be empty to search for ffmpeg, and
// codec may be empty for DefaultCodec.
func New(path, codec string, logger ports.Logger) *Transcoder {
	if codec == "" {
		codec = DefaultCodec
	}
	return &Transcoder{
		path:   path,
		codec:  codec,
		logger: logger.WithComponent("ffmpeg"),
		run:    runCommand,
	}
}

// Probe checks that ffmpeg exists and was built with the codec.
func (t *Transcoder) Probe(ctx context.Context) error {
	bin, err := Find(t.path)
	if err != nil {
		return err
	}
	t.path = bin

	version, err := t.run(ctx, bin, "-hide_banner", "-version")
	if err != nil {
		return fmt.Errorf("%w: %s -version: %w", ports.ErrToolUnavailable, bin, err)
	}
	if buildEnables(string(version), t.codec) {
		t.logger.Debug("Using %s (%s)", bin, firstLine(string(version)))
		return nil
	}

	// Static builds do not always list their configure flags.
	encoders, err := t.run(ctx, bin, "-hide_banner", "-encoders")
	if err != nil {
		return fmt.Errorf("%w: %s -encoders: %w", ports.ErrToolUnavailable, bin, err)
	}
	if !listsEncoder(string(encoders), t.codec) {
		return fmt.Errorf("%w: %s does not support %s", ports.ErrToolUnavailable, bin, t.codec)
	}
	t.logger.Debug("Using %s (%s)", bin, firstLine(string(version)))
	return nil
}

// Transcode converts input into output, overwriting output.
func (t *Transcoder) Transcode(ctx context.Context, input, output string) error {
	bin := t.path
	if bin == "" {
		var err error
		if bin, err = Find(""); err != nil {
			return err
		}
	}

	args := Args(input, output, t.codec)
	t.logger.Debug("Running %s %s", bin, strings.Join(args, " "))
	if out, err := t.run(ctx, bin, args...); err != nil {
		return fmt.Errorf("%w: %w\n%s", ports.ErrTranscode, err, tail(string(out), 20))
	}
	return nil
}

// Args builds the ffmpeg command line for converting input to output.
func Args(input, output, codec string) []string {
	return ffmpeg.Input(input).
		Output(output, ffmpeg.KwArgs{
			"vf":       evenFilter,
			"c:v":      codec,
			"movflags": "+faststart",
		}).
		OverWriteOutput().
		GetArgs()
}

func runCommand(ctx context.Context, bin string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// buildEnables reports whether `ffmpeg -version` output shows the codec's
// library was enabled at configure time.
func buildEnables(version, codec string) bool {
	return strings.Contains(version, "--enable-"+codec)
}

// listsEncoder reports whether `ffmpeg -encoders` output lists codec.
func listsEncoder(encoders, codec string) bool {
	for _, line := range strings.Split(encoders, "\n") {
		fields := strings.Fields(line)
		// " V....D libx264  libx264 H.264 / AVC ..."
		if len(fields) >= 2 && fields[1] == codec {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// tail returns the last n lines of s.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

var _ ports.Transcoder = (*Transcoder)(nil)
