package ggrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func filled(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestRenderer_Annotate(t *testing.T) {
	r := New()
	red := color.RGBA{R: 255, A: 255}
	src := filled(120, 60, red)

	out := r.Annotate(src, "#0003 0.600s")

	if out.Bounds() != src.Bounds() {
		t.Errorf("expected bounds %v, got %v", src.Bounds(), out.Bounds())
	}
	if src.RGBAAt(1, 1) != red {
		t.Error("source image must not be modified")
	}

	// The label band darkens the corner.
	cr, _, _, _ := out.At(1, 1).RGBA()
	if cr>>8 >= 255 {
		t.Errorf("expected darkened corner, got red=%d", cr>>8)
	}

	// Far from the label the frame is untouched.
	br, bg, bb, _ := out.At(110, 50).RGBA()
	if br>>8 != 255 || bg != 0 || bb != 0 {
		t.Errorf("expected untouched pixel, got (%d,%d,%d)", br>>8, bg>>8, bb>>8)
	}
}

func TestRenderer_EncodePNG(t *testing.T) {
	r := New()
	img := filled(50, 40, color.RGBA{G: 200, A: 255})

	data, err := r.EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 50 || b.Dy() != 40 {
		t.Errorf("expected 50x40, got %dx%d", b.Dx(), b.Dy())
	}
}
