// Package pipeline provides the stage contracts and frame plumbing shared
// by the recorder's concurrent units.
package pipeline

import (
	"context"
)

// Stage is one unit of the recording pipeline.
type Stage[In, Out any] interface {
	// Execute runs the stage to completion.
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc is a function adapter for Stage interface.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute implements Stage interface.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}
