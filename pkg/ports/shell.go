package ports

import "context"

// Shell is the interactive session being recorded.
type Shell interface {
	// Run starts the session and blocks until it exits.
	Run(ctx context.Context) error
}
