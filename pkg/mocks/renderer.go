package mocks

import (
	"image"
	"sync"

	"github.com/Jamyw7g/wingif/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	AnnotateFunc  func(img image.Image, label string) image.Image
	EncodePNGFunc func(img image.Image) ([]byte, error)

	mu     sync.Mutex
	Labels []string
}

func (m *Renderer) Annotate(img image.Image, label string) image.Image {
	m.mu.Lock()
	m.Labels = append(m.Labels, label)
	m.mu.Unlock()
	if m.AnnotateFunc != nil {
		return m.AnnotateFunc(img, label)
	}
	return img
}

func (m *Renderer) EncodePNG(img image.Image) ([]byte, error) {
	if m.EncodePNGFunc != nil {
		return m.EncodePNGFunc(img)
	}
	return []byte{0x89, 0x50, 0x4E, 0x47}, nil
}

var _ ports.Renderer = (*Renderer)(nil)
