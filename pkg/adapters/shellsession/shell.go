// Package shellsession runs the interactive shell that is recorded.
package shellsession

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/mattn/go-isatty"

	"github.com/Jamyw7g/wingif/pkg/ports"
)

// FallbackShell is used when neither a shell nor $SHELL is set.
const FallbackShell = "/bin/sh"

// Hint tells the user how to end the recording.
const Hint = "Ctrl+D to terminate record"

const clearScreen = "\033[2J\033[H"

// Session implements ports.Shell by running a child shell attached to
// the current terminal.
type Session struct {
	Path   string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Interactive enables screen clearing and the hint.
	Interactive bool
}

// New creates a session running path, or $SHELL when path is empty.
func New(path string) *Session {
	fd := os.Stdout.Fd()
	return &Session{
		Path:        Resolve(path),
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// Resolve returns path, $SHELL or FallbackShell, whichever is set first.
func Resolve(path string) string {
	if path != "" {
		return path
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return FallbackShell
}

// Run starts the shell and waits for it to exit. The shell's own exit
// status is not an error: Ctrl+D after a failed command is still a
// normal end of recording.
func (s *Session) Run(ctx context.Context) error {
	if s.Interactive {
		fmt.Fprint(s.Stdout, clearScreen)
		fmt.Fprintln(s.Stdout, Hint)
	}

	cmd := exec.CommandContext(ctx, s.Path)
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", s.Path, err)
	}

	err := cmd.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return fmt.Errorf("wait %s: %w", s.Path, err)
	}
	return nil
}

var _ ports.Shell = (*Session)(nil)
