package gifencoder

import (
	"bufio"
	"bytes"
	"compress/lzw"
	"image"
	"image/color"
	"io"
)

// GIF89a block markers.
const (
	extensionIntroducer = 0x21
	graphicControlLabel = 0xF9
	applicationLabel    = 0xFF
	imageSeparator      = 0x2C
	trailer             = 0x3B

	// maxSubBlock is the largest data sub-block GIF allows.
	maxSubBlock = 255
)

// log2Lookup holds the colour table sizes a GIF can declare.
var log2Lookup = [8]int{2, 4, 8, 16, 32, 64, 128, 256}

// tableSize returns n such that a table of 2^(n+1) entries holds
// colors entries.
func tableSize(colors int) int {
	for i, v := range log2Lookup {
		if colors <= v {
			return i
		}
	}
	return len(log2Lookup) - 1
}

// stream writes an animated GIF block by block.
type stream struct {
	w   *bufio.Writer
	err error
}

func newStream(w io.Writer) *stream {
	return &stream{w: bufio.NewWriter(w)}
}

func (s *stream) write(p ...byte) {
	if s.err == nil {
		_, s.err = s.w.Write(p)
	}
}

func (s *stream) writeUint16(v int) {
	s.write(byte(v), byte(v>>8))
}

// header writes the signature, a logical screen without a global colour
// table, and a NETSCAPE2.0 extension that loops forever.
func (s *stream) header(width, height int) error {
	s.write([]byte("GIF89a")...)
	s.writeUint16(width)
	s.writeUint16(height)
	s.write(0x00, 0x00, 0x00)

	s.write(extensionIntroducer, applicationLabel, 0x0B)
	s.write([]byte("NETSCAPE2.0")...)
	s.write(0x03, 0x01)
	s.writeUint16(0)
	s.write(0x00)
	return s.flush()
}

// frame writes a graphic control extension carrying delay followed by
// a compressed image block produced by compressImage.
func (s *stream) frame(delay int, block []byte) error {
	s.write(extensionIntroducer, graphicControlLabel, 0x04, 0x00)
	s.writeUint16(delay)
	s.write(0x00, 0x00)
	s.write(block...)
	return s.flush()
}

func (s *stream) close() error {
	s.write(trailer)
	return s.flush()
}

func (s *stream) flush() error {
	if s.err == nil {
		s.err = s.w.Flush()
	}
	return s.err
}

// compressImage returns the image descriptor, local colour table and
// LZW data of img, ready to follow a graphic control extension.
func compressImage(img *image.Paletted) ([]byte, error) {
	b := img.Bounds()
	n := tableSize(len(img.Palette))

	var buf bytes.Buffer
	buf.WriteByte(imageSeparator)
	for _, v := range []int{b.Min.X, b.Min.Y, b.Dx(), b.Dy()} {
		buf.WriteByte(byte(v))
		buf.WriteByte(byte(v >> 8))
	}
	buf.WriteByte(0x80 | byte(n))

	for i := 0; i < log2Lookup[n]; i++ {
		c := color.RGBAModel.Convert(color.Black).(color.RGBA)
		if i < len(img.Palette) {
			c = color.RGBAModel.Convert(img.Palette[i]).(color.RGBA)
		}
		buf.WriteByte(c.R)
		buf.WriteByte(c.G)
		buf.WriteByte(c.B)
	}

	litWidth := n + 1
	if litWidth < 2 {
		litWidth = 2
	}
	buf.WriteByte(byte(litWidth))

	var data bytes.Buffer
	lw := lzw.NewWriter(&data, lzw.LSB, litWidth)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := img.PixOffset(b.Min.X, y)
		if _, err := lw.Write(img.Pix[start : start+b.Dx()]); err != nil {
			lw.Close()
			return nil, err
		}
	}
	if err := lw.Close(); err != nil {
		return nil, err
	}

	for p := data.Bytes(); len(p) > 0; {
		k := min(len(p), maxSubBlock)
		buf.WriteByte(byte(k))
		buf.Write(p[:k])
		p = p[k:]
	}
	buf.WriteByte(0x00)
	return buf.Bytes(), nil
}
