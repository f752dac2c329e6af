package ports

import (
	"fmt"
	"image"
)

// BytesPerPixel is the size of one pixel in a PixelBuffer.
// Components are stored in R, G, B, A order.
const BytesPerPixel = 4

// Geometry is the (width, height) pair of a pixel buffer.
type Geometry struct {
	Width  int
	Height int
}

// String returns the geometry as WxH.
func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// Pixels returns the number of pixels covered by the geometry.
func (g Geometry) Pixels() int {
	return g.Width * g.Height
}

// PixelBuffer is an owned, contiguous RGBA image.
// Invariant: Len() == Width*Height.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte // Row-major RGBA, stride Width*BytesPerPixel
}

// NewPixelBuffer validates pix against the geometry and wraps it.
// Ownership of pix moves to the returned buffer.
func NewPixelBuffer(width, height int, pix []byte) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid geometry %dx%d", width, height)
	}
	if len(pix) != width*height*BytesPerPixel {
		return nil, fmt.Errorf("pixel data holds %d bytes, want %d for %dx%d",
			len(pix), width*height*BytesPerPixel, width, height)
	}
	return &PixelBuffer{Width: width, Height: height, Pix: pix}, nil
}

// Len returns the number of pixels held in the buffer.
func (b *PixelBuffer) Len() int {
	return len(b.Pix) / BytesPerPixel
}

// Match returns an error wrapping ErrGeometryMismatch when the buffer
// is not exactly want.
func (b *PixelBuffer) Match(want Geometry) error {
	if got := b.Geometry(); got != want {
		return fmt.Errorf("%w: got %s, expected %s", ErrGeometryMismatch, got, want)
	}
	return nil
}

// Geometry returns the buffer's dimensions.
func (b *PixelBuffer) Geometry() Geometry {
	return Geometry{Width: b.Width, Height: b.Height}
}

// RGBA returns an image.RGBA view sharing the buffer's pixel data.
func (b *PixelBuffer) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * BytesPerPixel,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
