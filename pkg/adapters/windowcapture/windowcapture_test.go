package windowcapture

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/Jamyw7g/wingif/pkg/ports"
)

func TestFindTerminal(t *testing.T) {
	tests := []struct {
		name    string
		windows []ports.WindowInfo
		want    ports.WindowHandle
		found   bool
	}{
		{
			name: "apple terminal",
			windows: []ports.WindowInfo{
				{Handle: 10, Owner: "Finder"},
				{Handle: 11, Owner: "Terminal", Title: "zsh"},
			},
			want: 11, found: true,
		},
		{
			name:    "localized terminal",
			windows: []ports.WindowInfo{{Handle: 20, Owner: "终端"}},
			want:    20, found: true,
		},
		{
			name: "iterm and wezterm, first wins",
			windows: []ports.WindowInfo{
				{Handle: 30, Owner: "WezTerm"},
				{Handle: 31, Owner: "iTerm2"},
			},
			want: 30, found: true,
		},
		{
			name:    "none",
			windows: []ports.WindowInfo{{Handle: 40, Owner: "Safari"}},
			found:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ok := FindTerminal(tt.windows)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if ok && w.Handle != tt.want {
				t.Errorf("expected handle %d, got %d", tt.want, w.Handle)
			}
		})
	}
}

func TestFromBGRA(t *testing.T) {
	// 2 pixels wide, 2 rows, stride of 2 pixels
	data := []byte{
		1, 2, 3, 255, 4, 5, 6, 255,
		7, 8, 9, 255, 10, 11, 12, 128,
	}

	buf, err := fromBGRA(data, 8, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Width != 2 || buf.Height != 2 {
		t.Fatalf("expected 2x2, got %dx%d", buf.Width, buf.Height)
	}

	want := []byte{
		3, 2, 1, 255, 6, 5, 4, 255,
		9, 8, 7, 255, 12, 11, 10, 128,
	}
	for i := range want {
		if buf.Pix[i] != want[i] {
			t.Fatalf("byte %d: expected %d, got %d", i, want[i], buf.Pix[i])
		}
	}
}

func TestFromBGRA_StrideSetsWidth(t *testing.T) {
	// 16-byte rows hold 4 pixels even if the image is narrower.
	data := make([]byte, 16*3)
	buf, err := fromBGRA(data, 16, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Width != 4 || buf.Height != 3 {
		t.Errorf("expected 4x3, got %dx%d", buf.Width, buf.Height)
	}
}

func TestFromBGRA_Errors(t *testing.T) {
	if _, err := fromBGRA(nil, 0, 0); !errors.Is(err, ports.ErrCapture) {
		t.Errorf("expected ErrCapture for empty image, got %v", err)
	}
	if _, err := fromBGRA(make([]byte, 10), 8, 2); !errors.Is(err, ports.ErrCapture) {
		t.Errorf("expected ErrCapture for short data, got %v", err)
	}
}

func TestFromRGBA_SubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(2, 1, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
	buf, err := fromRGBA(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Width != 2 || buf.Height != 2 || len(buf.Pix) != 16 {
		t.Fatalf("expected packed 2x2 buffer, got %dx%d (%d bytes)", buf.Width, buf.Height, len(buf.Pix))
	}
	if got := buf.RGBA().RGBAAt(1, 0); got != (color.RGBA{R: 9, G: 8, B: 7, A: 255}) {
		t.Errorf("unexpected pixel %v", got)
	}
}

func TestCaptureOptions(t *testing.T) {
	if captureListOptions != 8|16 {
		t.Errorf("list options = %d, want including-window|exclude-desktop (24)", captureListOptions)
	}
	if captureImageOptions != 1|2|16 {
		t.Errorf("image options = %d, want ignore-framing|opaque|nominal (19)", captureImageOptions)
	}
	if captureImageOptions&imageShouldBeOpaque == 0 {
		t.Error("translucent windows must be captured opaque")
	}
}
