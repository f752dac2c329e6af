// Package session implements the driver stage: the interactive shell
// whose lifetime bounds a recording.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/Jamyw7g/wingif/pkg/pipeline"
	"github.com/Jamyw7g/wingif/pkg/ports"
)

// Stage runs the user's shell session to completion.
type Stage struct {
	shell  ports.Shell
	logger ports.Logger
	now    func() time.Time
}

// New creates a new session stage.
func New(shell ports.Shell, logger ports.Logger) *Stage {
	return &Stage{
		shell:  shell,
		logger: logger.WithComponent("session"),
		now:    time.Now,
	}
}

// Execute blocks until the shell exits. A shell that exits with a
// non-zero status still ends the session normally; only failures to
// start or supervise it are returned.
func (s *Stage) Execute(ctx context.Context, input pipeline.SessionInput) (pipeline.SessionResult, error) {
	result := pipeline.SessionResult{StartedAt: s.now()}

	s.logger.Debug("Shell session %s started", input.Session.ID)
	err := s.shell.Run(ctx)
	result.Duration = s.now().Sub(result.StartedAt)
	if err != nil {
		return result, fmt.Errorf("shell session: %w", err)
	}

	s.logger.Debug("Shell session ended after %v", result.Duration.Round(time.Millisecond))
	return result, nil
}
