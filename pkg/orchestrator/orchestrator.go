// Package orchestrator coordinates the recording pipeline: the shell
// session, the capture loop, the GIF encoder and the optional video
// conversion.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ideamans/go-l10n"

	"github.com/Jamyw7g/wingif/pkg/cancellation"
	"github.com/Jamyw7g/wingif/pkg/pacing"
	"github.com/Jamyw7g/wingif/pkg/pipeline"
	"github.com/Jamyw7g/wingif/pkg/ports"
	"github.com/Jamyw7g/wingif/pkg/summarizer"
)

// DefaultWarmup gives the terminal time to redraw after the shell starts.
const DefaultWarmup = 250 * time.Millisecond

// Config contains all configuration for the orchestrator.
type Config struct {
	Window ports.WindowHandle
	FPS    int

	// Output
	GIFPath   string
	VideoPath string // empty skips the video conversion

	// Pipeline
	BufferFrames int           // handoff capacity, 0 = unbuffered
	Warmup       time.Duration // delay between shell start and first capture

	// Encoding
	MaxWidth int
	Dither   bool

	// Reporting
	Shell       string // recorded in the summary only
	SummaryPath string // empty skips the summary
	Version     string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FPS:          5,
		BufferFrames: pipeline.DefaultHandoffCapacity,
		Warmup:       DefaultWarmup,
		Dither:       true,
	}
}

// RunResult contains the results of a recording.
type RunResult struct {
	SessionID string
	StartedAt time.Time

	Geometry   ports.Geometry
	FrameCount int
	Discarded  int
	Duration   time.Duration // GIF playback length

	GIFPath string
	GIFSize int64

	VideoPath    string
	VideoSize    int64
	VideoCodec   string
	TranscodeErr error
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	source         ports.FrameSource
	sessionStage   pipeline.Stage[pipeline.SessionInput, pipeline.SessionResult]
	captureStage   pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult]
	encodeStage    pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	transcodeStage pipeline.Stage[pipeline.TranscodeInput, pipeline.TranscodeResult]
	fs             ports.FileSystem
	sink           ports.DebugSink
	logger         ports.Logger
}

// New creates a new Orchestrator. transcodeStage may be nil when no
// video is ever requested.
func New(
	source ports.FrameSource,
	sessionStage pipeline.Stage[pipeline.SessionInput, pipeline.SessionResult],
	captureStage pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	transcodeStage pipeline.Stage[pipeline.TranscodeInput, pipeline.TranscodeResult],
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		source:         source,
		sessionStage:   sessionStage,
		captureStage:   captureStage,
		encodeStage:    encodeStage,
		transcodeStage: transcodeStage,
		fs:             fs,
		sink:           sink,
		logger:         logger,
	}
}

type sessionOutcome struct {
	result pipeline.SessionResult
	err    error
}

type captureOutcome struct {
	result pipeline.CaptureResult
	err    error
}

type encodeOutcome struct {
	result pipeline.EncodeResult
	err    error
}

// Run records one session. The recording ends when the shell exits; the
// shutdown order is shell, capture loop, encoder, output file, then the
// optional video conversion.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	result := RunResult{
		SessionID: uuid.NewString(),
		GIFPath:   config.GIFPath,
	}

	if _, err := pacing.New(config.FPS); err != nil {
		return result, fmt.Errorf("capture stage: %w", err)
	}
	session := pipeline.CaptureSession{
		ID:     result.SessionID,
		Window: config.Window,
		FPS:    config.FPS,
	}
	o.logger.Info("Recording window %d at %d fps (session %s)", config.Window, config.FPS, session.ID)

	// The first capture fixes the geometry for the whole session.
	probe, err := o.source.Capture(config.Window)
	if err != nil {
		o.logger.Error("Failed to capture window: %s", err)
		return result, fmt.Errorf("capture stage: probe window %d: %w", config.Window, err)
	}
	result.Geometry = probe.Geometry()
	o.logger.Info("Window geometry: %s", result.Geometry)

	out, err := o.fs.Create(config.GIFPath)
	if err != nil {
		return result, fmt.Errorf("create output: %w", err)
	}

	handoff := pipeline.NewHandoff(config.BufferFrames)
	encodeCtx, abortEncode := context.WithCancel(ctx)
	defer abortEncode()

	encodeDone := make(chan encodeOutcome, 1)
	go func() {
		r, err := o.encodeStage.Execute(encodeCtx, pipeline.EncodeInput{
			Geometry: result.Geometry,
			Options: ports.EncoderOptions{
				FPS:      config.FPS,
				MaxWidth: config.MaxWidth,
				Dither:   config.Dither,
			},
			Frames: handoff,
			Output: out,
		})
		encodeDone <- encodeOutcome{r, err}
	}()

	// The shell owns the terminal from here until it exits.
	o.logger.Info("Recording started, exit the shell to stop")

	token := cancellation.New()
	sessionDone := make(chan sessionOutcome, 1)
	go func() {
		r, err := o.sessionStage.Execute(ctx, pipeline.SessionInput{Session: session})
		sessionDone <- sessionOutcome{r, err}
	}()

	if config.Warmup > 0 {
		select {
		case <-time.After(config.Warmup):
		case <-ctx.Done():
		}
	}

	captureDone := make(chan captureOutcome, 1)
	go func() {
		defer handoff.Close()
		r, err := o.captureStage.Execute(ctx, pipeline.CaptureInput{
			Session:  session,
			Geometry: result.Geometry,
			Token:    token,
			Frames:   handoff,
		})
		if err != nil {
			// Keep the encoder from finishing a truncated animation.
			abortEncode()
		}
		captureDone <- captureOutcome{r, err}
	}()

	// The shell always runs to completion. Nothing is logged until it
	// exits, so the recording stays free of log lines.
	var sess sessionOutcome
	var capt *captureOutcome
	for waiting := true; waiting; {
		select {
		case sess = <-sessionDone:
			waiting = false
		case c := <-captureDone:
			capt = &c
		}
	}
	o.logger.Info("Shell exited after %s", sess.result.Duration.Round(time.Millisecond))
	if capt != nil && capt.err != nil {
		o.logger.Warn("Recording stopped early: %s", capt.err)
	}

	token.Fire()
	if capt == nil {
		c := <-captureDone
		capt = &c
	}
	enc := <-encodeDone
	closeErr := out.Close()

	result.StartedAt = sess.result.StartedAt
	result.FrameCount = enc.result.FrameCount
	result.Discarded = capt.result.Discarded
	result.Duration = enc.result.Duration

	if err := fatalError(sess.err, capt.err, enc.err, closeErr); err != nil {
		o.logError(err)
		if rmErr := o.fs.Remove(config.GIFPath); rmErr == nil {
			o.logger.Info("Removed incomplete output %s", config.GIFPath)
		}
		return result, err
	}

	if size, err := o.fs.Size(config.GIFPath); err == nil {
		result.GIFSize = size
	}
	o.logger.Info("Wrote %d frames to %s (%d bytes)", result.FrameCount, config.GIFPath, result.GIFSize)

	var runErr error
	if config.VideoPath != "" {
		runErr = o.transcode(ctx, config, &result)
	}

	if o.sink.Enabled() {
		o.saveSession(config, result)
	}
	if config.SummaryPath != "" {
		if err := o.writeSummary(config, result); err != nil {
			o.logger.Warn("Failed to write summary: %s", err)
		}
	}

	return result, runErr
}

func (o *Orchestrator) transcode(ctx context.Context, config Config, result *RunResult) error {
	if o.transcodeStage == nil {
		result.TranscodeErr = fmt.Errorf("%w: no transcoder configured", ports.ErrToolUnavailable)
		return fmt.Errorf("transcode stage: %w", result.TranscodeErr)
	}

	o.logger.Info("Converting GIF to video")
	tr, err := o.transcodeStage.Execute(ctx, pipeline.TranscodeInput{
		InputPath:  config.GIFPath,
		OutputPath: config.VideoPath,
	})
	if err != nil {
		result.TranscodeErr = err
		o.logger.Error("Failed to convert video: %s", err)
		o.logger.Info("GIF kept at %s", config.GIFPath)
		return fmt.Errorf("transcode stage: %w", err)
	}

	result.VideoPath = tr.OutputPath
	result.VideoSize = tr.FileSize
	result.VideoCodec = tr.Codec
	o.logger.Info("Video saved to %s", tr.OutputPath)
	return nil
}

// fatalError picks the root cause among the units' errors. An encoder
// failure makes the capture loop fail on its next handoff, and a capture
// failure aborts the encoder, so encode outranks capture and a cancelled
// encoder defers to the capture error behind it.
func fatalError(sessionErr, captureErr, encodeErr, closeErr error) error {
	if encodeErr != nil && !(captureErr != nil && errors.Is(encodeErr, context.Canceled)) {
		return fmt.Errorf("encode stage: %w", encodeErr)
	}
	if captureErr != nil {
		return fmt.Errorf("capture stage: %w", captureErr)
	}
	if sessionErr != nil {
		return fmt.Errorf("session stage: %w", sessionErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close output: %w", closeErr)
	}
	return nil
}

func (o *Orchestrator) logError(err error) {
	switch {
	case errors.Is(err, ports.ErrEncode):
		o.logger.Error("Failed to encode GIF: %s", err)
	case errors.Is(err, ports.ErrCapture), errors.Is(err, ports.ErrChannel):
		o.logger.Error("Failed to capture window: %s", err)
	default:
		o.logger.Error("Recording failed: %s", err)
	}
}

type sessionRecord struct {
	ID         string    `json:"id"`
	Window     uint32    `json:"window"`
	FPS        int       `json:"fps"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	StartedAt  time.Time `json:"startedAt"`
	FrameCount int       `json:"frameCount"`
	Discarded  int       `json:"discarded"`
	DurationMs int64     `json:"durationMs"`
	GIFPath    string    `json:"gifPath"`
	GIFSize    int64     `json:"gifSize"`
	VideoPath  string    `json:"videoPath,omitempty"`
	VideoCodec string    `json:"videoCodec,omitempty"`
}

func (o *Orchestrator) saveSession(config Config, result RunResult) {
	data, err := json.MarshalIndent(sessionRecord{
		ID:         result.SessionID,
		Window:     uint32(config.Window),
		FPS:        config.FPS,
		Width:      result.Geometry.Width,
		Height:     result.Geometry.Height,
		StartedAt:  result.StartedAt,
		FrameCount: result.FrameCount,
		Discarded:  result.Discarded,
		DurationMs: result.Duration.Milliseconds(),
		GIFPath:    result.GIFPath,
		GIFSize:    result.GIFSize,
		VideoPath:  result.VideoPath,
		VideoCodec: result.VideoCodec,
	}, "", "  ")
	if err != nil {
		return
	}
	if err := o.sink.SaveSessionJSON(data); err != nil {
		o.logger.Warn("Failed to save session metadata: %s", err)
	}
}

func (o *Orchestrator) writeSummary(config Config, result RunResult) error {
	output := summarizer.OutputInfo{
		GIFPath:    result.GIFPath,
		GIFSize:    result.GIFSize,
		VideoPath:  config.VideoPath,
		VideoSize:  result.VideoSize,
		VideoCodec: result.VideoCodec,
	}
	if result.TranscodeErr != nil {
		output.TranscodeError = result.TranscodeErr.Error()
	}

	summary := summarizer.NewBuilder().
		WithSession(summarizer.SessionInfo{
			ID:        result.SessionID,
			Window:    uint32(config.Window),
			Width:     result.Geometry.Width,
			Height:    result.Geometry.Height,
			FPS:       config.FPS,
			StartedAt: result.StartedAt,
		}).
		WithCapture(result.FrameCount, result.Discarded, result.Duration).
		WithSettings(summarizer.Settings{
			Shell:        config.Shell,
			MaxWidth:     config.MaxWidth,
			Dither:       config.Dither,
			BufferFrames: config.BufferFrames,
		}).
		WithOutput(output).
		Build()

	formatter := summarizer.ForPath(config.SummaryPath,
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(config.Version),
	)
	return summarizer.NewWriter(formatter, o.fs).Write(config.SummaryPath, summary)
}
