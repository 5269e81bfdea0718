package render

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"os/exec"
	"strings"
	"testing"

	"github.com/matzehuels/svgstack/pkg/errors"
)

const rectSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="72pt" height="36pt" viewBox="0 0 72 36">` +
	`<rect x="0" y="0" width="72" height="36" fill="red"/></svg>`

func TestImgTag(t *testing.T) {
	tag, err := ImgTag(rectSVG, DefaultDPI)
	if err != nil {
		t.Fatalf("ImgTag() error: %v", err)
	}

	const prefix = `<img src="data:image/png;base64,`
	if !strings.HasPrefix(tag, prefix) {
		t.Fatalf("ImgTag() = %.40q..., want prefix %q", tag, prefix)
	}
	if !strings.HasSuffix(tag, `">`) {
		t.Fatalf("ImgTag() should end with \">\"")
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSuffix(strings.TrimPrefix(tag, prefix), `">`))
	if err != nil {
		t.Fatalf("base64 decode error: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
}

func TestToPNGSize(t *testing.T) {
	tests := []struct {
		name  string
		svg   string
		dpi   float64
		wantW int
		wantH int
	}{
		{"points at 96 dpi", rectSVG, 96, 96, 48},
		{"points at 192 dpi", rectSVG, 192, 192, 96},
		{"points at 72 dpi", rectSVG, 72, 72, 36},
		{"pixels ignore dpi", `<svg xmlns="http://www.w3.org/2000/svg" width="40px" height="20px"><rect width="40" height="20"/></svg>`, 300, 40, 20},
		{"viewBox only", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 30 10"><rect width="30" height="10"/></svg>`, 96, 30, 10},
		{"percent size uses viewBox", `<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="100%" viewBox="0 0 30 10"><rect width="30" height="10"/></svg>`, 96, 30, 10},
		{"em width uses viewBox", `<svg xmlns="http://www.w3.org/2000/svg" width="2em" height="10pt" viewBox="0 0 30 10"><rect width="30" height="10"/></svg>`, 72, 30, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ToPNG([]byte(tt.svg), tt.dpi)
			if err != nil {
				t.Fatalf("ToPNG() error: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("png.Decode() error: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestToPNGDrawsContent(t *testing.T) {
	data, err := ToPNG([]byte(rectSVG), DefaultDPI)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	r, g, b, a := img.At(48, 24).RGBA()
	if r>>8 < 200 || g>>8 > 50 || b>>8 > 50 || a>>8 < 200 {
		t.Errorf("center pixel = (%d,%d,%d,%d), want opaque red", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestToPNGDeterministic(t *testing.T) {
	a, err := ToPNG([]byte(rectSVG), DefaultDPI)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	b, err := ToPNG([]byte(rectSVG), DefaultDPI)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("ToPNG() should be deterministic")
	}
}

func TestToPNGErrors(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		dpi  float64
		code errors.Code
	}{
		{"malformed", "<svg", 96, errors.ErrCodeInvalidSVG},
		{"not svg", "<html></html>", 96, errors.ErrCodeInvalidSVG},
		{"no size", `<svg xmlns="http://www.w3.org/2000/svg"/>`, 96, errors.ErrCodeInvalidSVG},
		{"zero dpi", rectSVG, 0, errors.ErrCodeInvalidArgument},
		{"huge size", `<svg xmlns="http://www.w3.org/2000/svg" width="1e10" height="1e10"><rect width="1" height="1"/></svg>`, 96, errors.ErrCodeInvalidArgument},
		{"too many pixels", `<svg xmlns="http://www.w3.org/2000/svg" width="1e5" height="1e5"/>`, 96, errors.ErrCodeInvalidArgument},
		{"too wide", `<svg xmlns="http://www.w3.org/2000/svg" width="100000" height="1"/>`, 96, errors.ErrCodeInvalidArgument},
		{"huge viewBox", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1e9 1e9"/>`, 96, errors.ErrCodeInvalidArgument},
		{"huge at high dpi", `<svg xmlns="http://www.w3.org/2000/svg" width="100in" height="100in"/>`, 1200, errors.ErrCodeInvalidArgument},
		{"percent without viewBox", `<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="100%"/>`, 96, errors.ErrCodeInvalidDimension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToPNG([]byte(tt.svg), tt.dpi)
			if !errors.Is(err, tt.code) {
				t.Errorf("ToPNG() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestEncodeImgTag(t *testing.T) {
	got := EncodeImgTag([]byte("abc"))
	want := `<img src="data:image/png;base64,YWJj">`
	if got != want {
		t.Errorf("EncodeImgTag() = %q, want %q", got, want)
	}
}

func TestBackendByName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{"native", false},
		{"rsvg", false},
		{"cairo", true},
	}
	for _, tt := range tests {
		_, err := BackendByName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("BackendByName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestRSVGMissingBinary(t *testing.T) {
	_, err := RSVG{Path: "/nonexistent/rsvg-convert"}.Rasterize([]byte(rectSVG), 96)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Rasterize() error = %v, want code %v", err, errors.ErrCodeUnsupported)
	}
}

func TestRSVG(t *testing.T) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	data, err := Rasterize(RSVG{}, []byte(rectSVG), 96)
	if err != nil {
		t.Fatalf("Rasterize() error: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
}
