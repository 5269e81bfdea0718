package svg

import (
	"math"
	"testing"

	"github.com/matzehuels/svgstack/pkg/errors"
)

func sizeOf(t *testing.T, svg string) (float64, float64) {
	t.Helper()
	d, err := Parse(svg)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	w, h, err := d.Size(Truncate, "")
	if err != nil {
		t.Fatalf("Size() error: %v", err)
	}
	return w, h
}

func TestRescaleIdentity(t *testing.T) {
	out, err := Rescale(docA, 1.0)
	if err != nil {
		t.Fatalf("Rescale() error: %v", err)
	}
	w, h := sizeOf(t, out)
	if w != 100 || h != 50 {
		t.Errorf("size = %v x %v, want 100 x 50", w, h)
	}
}

func TestRescaleDeclaredSize(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		scale  float64
		wantW  string
		wantH  string
		wantTr string
	}{
		{"double", docA, 2, "200px", "100px", "scale(2 2)"},
		{"half", docA, 0.5, "50px", "25px", "scale(0.5 0.5)"},
		{"truncates fraction", `<svg xmlns="http://www.w3.org/2000/svg" width="600.9px" height="400.2px"/>`, 1, "600px", "400px", "scale(1 1)"},
		{"points relabelled as pixels", `<svg xmlns="http://www.w3.org/2000/svg" width="100pt" height="20.5mm"/>`, 1, "100px", "20px", "scale(1 1)"},
		{"percent relabelled as pixels", `<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="50%"/>`, 2, "200px", "100px", "scale(2 2)"},
		{"plain integers", `<svg xmlns="http://www.w3.org/2000/svg" width="300" height="150"/>`, 3, "900px", "450px", "scale(3 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Rescale(tt.input, tt.scale)
			if err != nil {
				t.Fatalf("Rescale() error: %v", err)
			}
			d, err := Parse(out)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if d.Width() != tt.wantW || d.Height() != tt.wantH {
				t.Errorf("size = %s x %s, want %s x %s", d.Width(), d.Height(), tt.wantW, tt.wantH)
			}
			g := d.root.SelectElement("g")
			if g == nil {
				t.Fatal("rescaled document should wrap content in a group")
			}
			if tr := g.SelectAttrValue("transform", ""); tr != tt.wantTr {
				t.Errorf("transform = %q, want %q", tr, tt.wantTr)
			}
		})
	}
}

func TestRescaleKeepsNamespaces(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:dc="http://purl.org/dc/elements/1.1/" width="10" height="10">` +
		`<metadata><dc:title>t</dc:title></metadata></svg>`

	out, err := Rescale(in, 2)
	if err != nil {
		t.Fatalf("Rescale() error: %v", err)
	}
	d, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	title := d.root.FindElement("//title")
	if title == nil {
		t.Fatal("rescaled document lost the metadata title")
	}
	if uri := title.NamespaceURI(); uri != "http://purl.org/dc/elements/1.1/" {
		t.Errorf("dc:title namespace = %q, want the dc namespace", uri)
	}
}

func TestRescaleRoundTrip(t *testing.T) {
	for _, k := range []float64{2, 4, 0.5} {
		up, err := Rescale(docA, k)
		if err != nil {
			t.Fatalf("Rescale(%v) error: %v", k, err)
		}
		back, err := Rescale(up, 1/k)
		if err != nil {
			t.Fatalf("Rescale(%v) error: %v", 1/k, err)
		}
		w, h := sizeOf(t, back)
		if math.Abs(w-100) > 1 || math.Abs(h-50) > 1 {
			t.Errorf("k=%v: round trip size = %v x %v, want 100 x 50", k, w, h)
		}
	}
}

func TestRescaleAspectRatio(t *testing.T) {
	out, err := Rescale(docB, 1.5)
	if err != nil {
		t.Fatalf("Rescale() error: %v", err)
	}
	w, h := sizeOf(t, out)
	if w/h != 80.0/60.0 {
		t.Errorf("aspect = %v, want %v", w/h, 80.0/60.0)
	}
}

func TestRescaleErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		scale float64
		code  errors.Code
	}{
		{"zero scale", docA, 0, errors.ErrCodeInvalidArgument},
		{"negative scale", docA, -1, errors.ErrCodeInvalidArgument},
		{"nan scale", docA, math.NaN(), errors.ErrCodeInvalidArgument},
		{"malformed", "<svg><g></svg>", 1, errors.ErrCodeInvalidSVG},
		{"unknown unit", `<svg xmlns="http://www.w3.org/2000/svg" width="10furlongs" height="1"/>`, 1, errors.ErrCodeInvalidDimension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rescale(tt.input, tt.scale)
			if !errors.Is(err, tt.code) {
				t.Errorf("Rescale() error = %v, want code %v", err, tt.code)
			}
		})
	}
}
