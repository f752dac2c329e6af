package ports

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveFrame saves an accepted capture frame.
	SaveFrame(frame Frame) error

	// SaveSessionJSON saves the session metadata as JSON.
	SaveSessionJSON(data []byte) error
}
