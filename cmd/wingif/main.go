// Package main provides the CLI entry point for wingif.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/Jamyw7g/wingif/pkg/adapters/codecdetect"
	"github.com/Jamyw7g/wingif/pkg/adapters/ffmpeg"
	"github.com/Jamyw7g/wingif/pkg/adapters/filesink"
	"github.com/Jamyw7g/wingif/pkg/adapters/ggrenderer"
	"github.com/Jamyw7g/wingif/pkg/adapters/gifencoder"
	"github.com/Jamyw7g/wingif/pkg/adapters/logger"
	"github.com/Jamyw7g/wingif/pkg/adapters/nullsink"
	"github.com/Jamyw7g/wingif/pkg/adapters/osfilesystem"
	"github.com/Jamyw7g/wingif/pkg/adapters/shellsession"
	"github.com/Jamyw7g/wingif/pkg/adapters/windowcapture"
	"github.com/Jamyw7g/wingif/pkg/config"
	"github.com/Jamyw7g/wingif/pkg/orchestrator"
	"github.com/Jamyw7g/wingif/pkg/ports"
	"github.com/Jamyw7g/wingif/pkg/stages/capture"
	"github.com/Jamyw7g/wingif/pkg/stages/encode"
	"github.com/Jamyw7g/wingif/pkg/stages/session"
	"github.com/Jamyw7g/wingif/pkg/stages/transcode"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Record  RecordCmd  `cmd:"" default:"withargs" help:"Record a window while a shell runs (default)."`
	List    ListCmd    `cmd:"" help:"List capturable windows."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// RecordCmd defines the record subcommand. Pointer flags override the
// config file only when given.
type RecordCmd struct {
	Shell string `arg:"" optional:"" help:"Shell to run while recording (default: $SHELL, then /bin/sh)."`

	// Target
	ID   *uint32 `name:"id" short:"i" help:"Window handle to record (see 'wingif list'). Detects the terminal when omitted."`
	FPS  *int    `short:"r" help:"Frames per second (1-255, default: 5)."`
	List bool    `short:"l" help:"List capturable windows and exit (same as 'wingif list')."`

	// Output
	Name   *string `short:"n" help:"Base name of the output files (default: wingif)."`
	Video  bool    `short:"v" help:"Also convert the GIF to a video with ffmpeg."`
	Format *string `short:"f" help:"Video container extension (default: mp4)."`

	// Encoding
	MaxWidth *int `help:"Downscale frames wider than this many pixels."`
	NoDither bool `help:"Map colours without Floyd-Steinberg dithering."`

	// Transcoding
	FFmpegPath *string `name:"ffmpeg-path" help:"Path to ffmpeg (falls back to FFMPEG_PATH env, then PATH)."`

	// Reporting
	Debug    bool    `short:"d" help:"Dump annotated frames and session metadata."`
	DebugDir *string `help:"Directory for debug output (default: ./debug)."`
	Summary  *string `short:"s" help:"Write a Markdown summary to this file."`

	Config string `short:"c" type:"existingfile" help:"YAML configuration file."`

	// Logging
	LogLevel *string `enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool    `short:"Q" help:"Suppress all log output."`
}

// ListCmd lists capturable windows.
type ListCmd struct{}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("wingif"),
		kong.Description(l10n.T("Record a terminal window as an animated GIF")),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the record command.
func (cmd *RecordCmd) Run() error {
	if cmd.List {
		return (&ListCmd{}).Run()
	}

	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if cmd.Quiet || cfg.LogLevel == "quiet" {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	// The shell owns the terminal, so Ctrl+C belongs to it. Recording
	// ends when the shell exits.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	defer signal.Stop(sigCh)
	go func() {
		for range sigCh {
			log.Debug("Interrupt ignored, exit the shell to stop recording")
		}
	}()

	// Create adapters
	fs := osfilesystem.New()
	source := windowcapture.New(log)

	window := ports.WindowHandle(cfg.Window)
	if window == 0 {
		window, err = source.DefaultWindow()
		if err != nil {
			return fmt.Errorf("%w (use --id, see 'wingif list')", err)
		}
	}

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, ggrenderer.New())
	} else {
		sink = nullsink.New()
	}

	shellPath := shellsession.Resolve(cfg.Shell)
	transcoder := ffmpeg.New(cfg.FFmpegPath, cfg.Codec, log)

	// Create stages
	sessionStage := session.New(shellsession.New(shellPath), log)
	captureStage := capture.New(source, sink, log)
	encodeStage := encode.NewStage(gifencoder.New(), log)
	transcodeStage := transcode.New(transcoder, codecdetect.New(), fs, log)

	orch := orchestrator.New(
		source,
		sessionStage,
		captureStage,
		encodeStage,
		transcodeStage,
		fs,
		sink,
		log,
	)

	orchConfig := cfg.ToOrchestratorConfig(window, time.Now())
	orchConfig.Shell = shellPath
	orchConfig.Version = version

	// Fail before the recording rather than after it.
	if orchConfig.VideoPath != "" {
		if err := transcodeStage.Probe(context.Background()); err != nil {
			log.Warn("Video conversion unavailable: %s", err)
		}
	}

	result, err := orch.Run(context.Background(), orchConfig)
	if err != nil {
		return err
	}

	log.Info("Output saved to %s", result.GIFPath)
	return nil
}

// buildConfig layers the config file, then the flags, over the defaults.
func (cmd *RecordCmd) buildConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Shell != "" {
		cfg.Shell = cmd.Shell
	}
	if cmd.ID != nil {
		cfg.Window = *cmd.ID
	}
	if cmd.FPS != nil {
		cfg.FPS = *cmd.FPS
	}
	if cmd.Name != nil {
		cfg.Name = *cmd.Name
	}
	if cmd.Video {
		cfg.Video = true
	}
	if cmd.Format != nil {
		cfg.Format = *cmd.Format
	}
	if cmd.MaxWidth != nil {
		cfg.MaxWidth = *cmd.MaxWidth
	}
	if cmd.NoDither {
		cfg.Dither = false
	}
	if cmd.FFmpegPath != nil {
		cfg.FFmpegPath = *cmd.FFmpegPath
	}
	if cmd.Debug {
		cfg.Debug = true
	}
	if cmd.DebugDir != nil {
		cfg.DebugDir = *cmd.DebugDir
	}
	if cmd.Summary != nil {
		cfg.Summary = *cmd.Summary
	}
	if cmd.LogLevel != nil {
		cfg.LogLevel = *cmd.LogLevel
	}

	return cfg, nil
}

// Run executes the list command.
func (cmd *ListCmd) Run() error {
	return printWindows(os.Stdout, windowcapture.New(logger.NewNoop()))
}

// printWindows writes one "owner | title | handle" line per window.
func printWindows(w io.Writer, lister ports.WindowLister) error {
	windows, err := lister.ListWindows()
	if err != nil {
		return fmt.Errorf("list windows: %w", err)
	}
	if len(windows) == 0 {
		fmt.Fprintln(w, l10n.T("No capturable windows found."))
		return nil
	}
	for _, win := range windows {
		fmt.Fprintf(w, "%s | %s | %d\n", win.Owner, win.Title, win.Handle)
	}
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("wingif version %s", version))
	return nil
}
