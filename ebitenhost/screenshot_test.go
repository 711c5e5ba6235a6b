package ebitenhost

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"menu", "menu"},
		{"side menu/left", "side_menu_left"},
		{"  v1.2-final ", "v1.2-final"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"é", "_"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half-transparent
		10, 20, 30, 255, // opaque: untouched
		0, 0, 0, 0, // clear
	}
	img := unpremultiply(pixels, 3, 1)
	if got := img.Pix[0:4]; got[0] != 255 || got[1] != 127 || got[3] != 128 {
		t.Errorf("half-transparent = %v", got)
	}
	if got := img.Pix[4:8]; got[0] != 10 || got[2] != 30 {
		t.Errorf("opaque = %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	img := unpremultiply([]byte{255, 0, 0, 255}, 1, 1)
	if err := writePNG(path, img); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, _, a := decoded.At(0, 0).RGBA(); r != 0xffff || a != 0xffff {
		t.Errorf("pixel = %v", decoded.At(0, 0))
	}
}

func TestWritePNGBadDir(t *testing.T) {
	img := unpremultiply(nil, 1, 1)
	if err := writePNG(filepath.Join(t.TempDir(), "missing", "x.png"), img); err == nil {
		t.Error("expected error for missing directory")
	}
}
