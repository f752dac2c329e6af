package ports

import "image"

// Renderer abstracts image drawing for debug output.
type Renderer interface {
	// Annotate returns a copy of img with a text label in its top-left corner.
	Annotate(img image.Image, label string) image.Image

	// EncodePNG encodes img as PNG.
	EncodePNG(img image.Image) ([]byte, error)
}
