package gifencoder

import "errors"

var (
	// ErrNotInitialized is returned when frames arrive before Begin.
	ErrNotInitialized = errors.New("gifencoder: encoder not initialized")

	// ErrFinished is returned when the encoder is used after Finish.
	ErrFinished = errors.New("gifencoder: encoder already finished")

	// ErrOutOfOrder is returned when a frame's index or timestamp does not
	// advance past the previous frame's.
	ErrOutOfOrder = errors.New("gifencoder: frame out of order")

	// ErrNoFrames is returned when Finish is called before any frame.
	ErrNoFrames = errors.New("gifencoder: no frames to encode")
)
