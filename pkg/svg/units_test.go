package svg

import (
	"testing"

	"github.com/matzehuels/svgstack/pkg/errors"
)

func TestParseSuffix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		unit    string
		want    float64
		wantErr bool
	}{
		{"integer points", "100pt", "pt", 100, false},
		{"fractional points", "12.5pt", "pt", 12.5, false},
		{"surrounding space", " 460.8pt ", "pt", 460.8, false},
		{"pixels", "600px", "px", 600, false},

		{"wrong unit", "600px", "pt", 0, true},
		{"no unit", "600", "pt", 0, true},
		{"only unit", "pt", "pt", 0, true},
		{"empty", "", "pt", 0, true},
		{"empty unit", "100pt", "", 0, true},
		{"garbage before unit", "10xpt", "pt", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSuffix(tt.input, tt.unit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSuffix(%q, %q) error = %v, wantErr %v", tt.input, tt.unit, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidDimension) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDimension)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseSuffix(%q, %q) = %v, want %v", tt.input, tt.unit, got, tt.want)
			}
		})
	}
}

func TestParseTruncated(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"pixels with fraction", "600.7px", 600, false},
		{"plain integer", "600", 600, false},
		{"points with fraction", "460.8pt", 460, false},
		{"millimetres", "210mm", 210, false},
		{"negative", "-3.7", -3, false},

		{"picas", "6pc", 6, false},
		{"centimetres", "2.9cm", 2, false},
		{"inches", "8.5in", 8, false},
		{"em", "10em", 10, false},
		{"ex", "3ex", 3, false},
		{"percent", "50%", 50, false},
		{"upper case unit", "12PX", 12, false},

		{"unknown unit", "12furlongs", 0, true},
		{"quarter millimetres", "4q", 0, true},
		{"trailing text after percent", "50%x", 0, true},
		{"no number", "abc", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTruncated(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTruncated(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseTruncated(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDimensionPolicy(t *testing.T) {
	v, err := ParseDimension("12.5pt", StripSuffix, "pt")
	if err != nil || v != 12.5 {
		t.Errorf("StripSuffix = %v, %v; want 12.5, nil", v, err)
	}

	v, err = ParseDimension("12.5pt", Truncate, "pt")
	if err != nil || v != 12 {
		t.Errorf("Truncate = %v, %v; want 12, nil", v, err)
	}

	if _, err := ParseDimension("12pt", Policy(42), "pt"); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("unknown policy error = %v, want %v", err, errors.ErrCodeInvalidArgument)
	}
}

func TestToPixels(t *testing.T) {
	tests := []struct {
		input   string
		dpi     float64
		want    float64
		wantErr bool
	}{
		{"72pt", 96, 96, false},
		{"72pt", 144, 144, false},
		{"1in", 300, 300, false},
		{"2.54cm", 96, 96, false},
		{"10", 300, 10, false},
		{"10px", 300, 10, false},

		{"50%", 96, 0, true},
		{"2em", 96, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ToPixels(tt.input, tt.dpi)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToPixels(%q, %v) error = %v, wantErr %v", tt.input, tt.dpi, err, tt.wantErr)
			}
			if err == nil && !approx(got, tt.want) {
				t.Errorf("ToPixels(%q, %v) = %v, want %v", tt.input, tt.dpi, got, tt.want)
			}
		})
	}
}

func TestIsRelative(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"100%", true},
		{"2em", true},
		{"1.5EX", true},
		{"100", false},
		{"100pt", false},
		{"%", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsRelative(tt.input); got != tt.want {
				t.Errorf("IsRelative(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDimension(t *testing.T) {
	tests := []struct {
		v    float64
		unit string
		want string
	}{
		{100, "pt", "100pt"},
		{180.5, "pt", "180.5pt"},
		{0, "px", "0px"},
	}
	for _, tt := range tests {
		if got := FormatDimension(tt.v, tt.unit); got != tt.want {
			t.Errorf("FormatDimension(%v, %q) = %q, want %q", tt.v, tt.unit, got, tt.want)
		}
	}
}

func approx(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
