package mocks

import (
	"context"
	"sync"

	"github.com/Jamyw7g/wingif/pkg/ports"
)

// Transcoder is a mock implementation of ports.Transcoder.
type Transcoder struct {
	ProbeFunc     func(ctx context.Context) error
	TranscodeFunc func(ctx context.Context, input, output string) error

	mu             sync.Mutex
	ProbeCalls     int
	TranscodeCalls []TranscodeCall
}

// TranscodeCall records a call to Transcode.
type TranscodeCall struct {
	Input  string
	Output string
}

func (m *Transcoder) Probe(ctx context.Context) error {
	m.mu.Lock()
	m.ProbeCalls++
	m.mu.Unlock()
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx)
	}
	return nil
}

func (m *Transcoder) Transcode(ctx context.Context, input, output string) error {
	m.mu.Lock()
	m.TranscodeCalls = append(m.TranscodeCalls, TranscodeCall{Input: input, Output: output})
	m.mu.Unlock()
	if m.TranscodeFunc != nil {
		return m.TranscodeFunc(ctx, input, output)
	}
	return nil
}

var _ ports.Transcoder = (*Transcoder)(nil)

// CodecDetector is a mock implementation of ports.CodecDetector.
type CodecDetector struct {
	Codec string
	Err   error
	Paths []string
}

func (m *CodecDetector) DetectFromFile(path string) (string, error) {
	m.Paths = append(m.Paths, path)
	return m.Codec, m.Err
}

var _ ports.CodecDetector = (*CodecDetector)(nil)
