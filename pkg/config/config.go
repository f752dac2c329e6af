// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Jamyw7g/wingif/pkg/orchestrator"
	"github.com/Jamyw7g/wingif/pkg/pacing"
	"github.com/Jamyw7g/wingif/pkg/pipeline"
	"github.com/Jamyw7g/wingif/pkg/ports"
)

// Config represents the full configuration for wingif.
type Config struct {
	// Target
	Window uint32 `yaml:"window"` // 0 = detect the terminal window
	FPS    int    `yaml:"fps"`

	// Output
	Name   string `yaml:"name"`
	Video  bool   `yaml:"video"`
	Format string `yaml:"format"`

	// Session
	Shell        string `yaml:"shell"`
	BufferFrames int    `yaml:"buffer_frames"`
	WarmupMs     int    `yaml:"warmup_ms"`

	// Encoding
	MaxWidth int  `yaml:"max_width"`
	Dither   bool `yaml:"dither"`

	// Transcoding
	FFmpegPath string `yaml:"ffmpeg_path"`
	Codec      string `yaml:"codec"`

	// Reporting
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
	Summary  string `yaml:"summary"`
	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		FPS: 5,

		Name:   "wingif",
		Format: "mp4",

		BufferFrames: pipeline.DefaultHandoffCapacity,
		WarmupMs:     int(orchestrator.DefaultWarmup / time.Millisecond),

		Dither: true,

		Codec: "libx264",

		DebugDir: "./debug",
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file. Keys missing from
// the file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the values a recording depends on.
func (c Config) Validate() error {
	var errs []error
	if _, err := pacing.New(c.FPS); err != nil {
		errs = append(errs, err)
	}
	if c.BufferFrames < 0 {
		errs = append(errs, fmt.Errorf("buffer_frames must not be negative, got %d", c.BufferFrames))
	}
	if c.WarmupMs < 0 {
		errs = append(errs, fmt.Errorf("warmup_ms must not be negative, got %d", c.WarmupMs))
	}
	if c.MaxWidth < 0 {
		errs = append(errs, fmt.Errorf("max_width must not be negative, got %d", c.MaxWidth))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if c.Video {
		if c.Format == "" {
			errs = append(errs, errors.New("format must not be empty"))
		} else if strings.ContainsAny(c.Format, `/\.`) {
			errs = append(errs, fmt.Errorf("format %q must be a bare extension", c.Format))
		}
	}
	return errors.Join(errs...)
}

// OutputPaths returns the GIF path and, when a video is requested, the
// video path for a recording started at now.
func (c Config) OutputPaths(now time.Time) (gifPath, videoPath string) {
	base := fmt.Sprintf("%s_%d", c.Name, now.Unix())
	gifPath = base + ".gif"
	if c.Video {
		videoPath = base + "." + c.Format
	}
	return gifPath, videoPath
}

// ToOrchestratorConfig converts Config to orchestrator.Config for a
// recording of window started at now.
func (c Config) ToOrchestratorConfig(window ports.WindowHandle, now time.Time) orchestrator.Config {
	gifPath, videoPath := c.OutputPaths(now)
	return orchestrator.Config{
		Window: window,
		FPS:    c.FPS,

		GIFPath:   gifPath,
		VideoPath: videoPath,

		BufferFrames: c.BufferFrames,
		Warmup:       time.Duration(c.WarmupMs) * time.Millisecond,

		MaxWidth: c.MaxWidth,
		Dither:   c.Dither,

		Shell:       c.Shell,
		SummaryPath: c.Summary,
	}
}
