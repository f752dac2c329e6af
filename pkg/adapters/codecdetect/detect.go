// Package codecdetect identifies the video codec inside MP4 family
// containers.
package codecdetect

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/Jamyw7g/wingif/pkg/ports"
)

// Codec names reported by the detector.
const (
	CodecH264 = "h264"
	CodecHEVC = "hevc"
	CodecAV1  = "av1"
	CodecVP9  = "vp9"
)

// ErrNoVideoTrack is returned when the container holds no video track.
var ErrNoVideoTrack = errors.New("codecdetect: no video track found")

// Detector implements ports.CodecDetector with mp4ff.
type Detector struct{}

// New creates a new detector.
func New() *Detector {
	return &Detector{}
}

// DetectFromFile returns the codec of the first video track in the file.
func (d *Detector) DetectFromFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return DetectFromReader(f)
}

// DetectFromReader returns the codec of the first video track.
func DetectFromReader(r io.ReadSeeker) (string, error) {
	file, err := mp4.DecodeFile(r)
	if err != nil {
		return "", fmt.Errorf("decode mp4: %w", err)
	}

	var traks []*mp4.TrakBox
	if file.Init != nil && file.Init.Moov != nil {
		traks = append(traks, file.Init.Moov.Traks...)
	}
	if file.Moov != nil {
		traks = append(traks, file.Moov.Traks...)
	}

	for _, trak := range traks {
		if codec, ok := videoCodec(trak); ok {
			return codec, nil
		}
	}
	return "", ErrNoVideoTrack
}

// DetectFromBytes returns the codec of the first video track in data.
func DetectFromBytes(data []byte) (string, error) {
	return DetectFromReader(bytes.NewReader(data))
}

func videoCodec(trak *mp4.TrakBox) (string, bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
		return "", false
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return "", false
	}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch t := child.Type(); t {
		case "avc1", "avc3":
			return CodecH264, true
		case "hvc1", "hev1":
			return CodecHEVC, true
		case "av01":
			return CodecAV1, true
		case "vp09":
			return CodecVP9, true
		default:
			return t, true
		}
	}
	return "", false
}

var _ ports.CodecDetector = (*Detector)(nil)
