package mocks

import (
	"context"
	"sync"

	"github.com/Jamyw7g/wingif/pkg/ports"
)

// Shell is a mock implementation of ports.Shell.
// Run blocks until Exit is called or the context ends.
type Shell struct {
	// Err is returned by Run after the session exits.
	Err error

	// OnStart runs when Run is entered.
	OnStart func()

	once    sync.Once
	exit    chan struct{}
	started chan struct{}
	startMu sync.Once
}

// NewShell creates a mock shell session.
func NewShell() *Shell {
	return &Shell{
		exit:    make(chan struct{}),
		started: make(chan struct{}),
	}
}

func (m *Shell) Run(ctx context.Context) error {
	m.startMu.Do(func() { close(m.started) })
	if m.OnStart != nil {
		m.OnStart()
	}
	select {
	case <-m.exit:
	case <-ctx.Done():
		return ctx.Err()
	}
	return m.Err
}

// Exit ends the session, as if the user pressed Ctrl+D.
func (m *Shell) Exit() {
	m.once.Do(func() { close(m.exit) })
}

// Started returns a channel closed once Run has been entered.
func (m *Shell) Started() <-chan struct{} {
	return m.started
}

var _ ports.Shell = (*Shell)(nil)
