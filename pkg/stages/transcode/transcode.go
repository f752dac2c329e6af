// Package transcode implements the optional GIF to video post-process.
package transcode

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Jamyw7g/wingif/pkg/pipeline"
	"github.com/Jamyw7g/wingif/pkg/ports"
)

// Stage converts a finished GIF into a video file.
type Stage struct {
	transcoder ports.Transcoder
	detector   ports.CodecDetector
	fs         ports.FileSystem
	logger     ports.Logger

	probeOnce sync.Once
	probeErr  error
}

// New creates a new transcode stage. detector may be nil to skip codec
// inspection of the output.
func New(transcoder ports.Transcoder, detector ports.CodecDetector, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		transcoder: transcoder,
		detector:   detector,
		fs:         fs,
		logger:     logger.WithComponent("transcode"),
	}
}

// Probe checks the tool once per Stage and caches the outcome.
func (s *Stage) Probe(ctx context.Context) error {
	s.probeOnce.Do(func() {
		s.probeErr = s.transcoder.Probe(ctx)
	})
	return s.probeErr
}

// Execute transcodes input.InputPath into input.OutputPath. The input is
// left untouched whatever the outcome.
func (s *Stage) Execute(ctx context.Context, input pipeline.TranscodeInput) (pipeline.TranscodeResult, error) {
	result := pipeline.TranscodeResult{OutputPath: input.OutputPath}

	if err := s.Probe(ctx); err != nil {
		return result, err
	}

	exists, err := s.fs.Exists(input.InputPath)
	if err != nil {
		return result, fmt.Errorf("%w: check %s: %w", ports.ErrTranscode, input.InputPath, err)
	}
	if !exists {
		return result, fmt.Errorf("%w: input %s does not exist", ports.ErrTranscode, input.InputPath)
	}

	s.logger.Info("Converting %s to %s", input.InputPath, input.OutputPath)
	if err := s.transcoder.Transcode(ctx, input.InputPath, input.OutputPath); err != nil {
		return result, err
	}

	size, err := s.fs.Size(input.OutputPath)
	if err != nil {
		return result, fmt.Errorf("%w: stat %s: %w", ports.ErrTranscode, input.OutputPath, err)
	}
	result.FileSize = size

	if s.detector != nil && isMP4Family(input.OutputPath) {
		codec, err := s.detector.DetectFromFile(input.OutputPath)
		switch {
		case err != nil:
			s.logger.Warn("Could not detect codec of %s: %s", input.OutputPath, err)
		case codec != "h264":
			result.Codec = codec
			s.logger.Warn("Expected h264 video in %s, found %s", input.OutputPath, codec)
		default:
			result.Codec = codec
		}
	}

	return result, nil
}

func isMP4Family(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov", ".m4v":
		return true
	}
	return false
}
