package svg

import (
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"

	"github.com/matzehuels/svgstack/pkg/errors"
)

// Policy selects how the numeric magnitude is extracted from a dimension string.
type Policy int

const (
	// StripSuffix removes an expected unit suffix and parses the rest as a float.
	StripSuffix Policy = iota
	// Truncate parses the leading number and discards its fractional part.
	Truncate
)

// DefaultUnit is the unit plotting backends use for root dimensions.
const DefaultUnit = "pt"

// pixelsPerUnit maps absolute SVG units to CSS pixels at 96 dpi.
var pixelsPerUnit = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96.0 / 72.0,
	"pc": 96.0 / 6.0,
	"in": 96.0,
	"cm": 96.0 / 2.54,
	"mm": 96.0 / 25.4,
}

// truncateUnits are the suffixes [Truncate] accepts after the number.
var truncateUnits = map[string]bool{
	"": true, "px": true, "pt": true, "pc": true, "mm": true,
	"cm": true, "in": true, "em": true, "ex": true, "%": true,
}

// relativeUnits have no absolute length without a context to resolve against.
var relativeUnits = map[string]bool{"em": true, "ex": true, "%": true}

func (p Policy) String() string {
	switch p {
	case StripSuffix:
		return "strip-suffix"
	case Truncate:
		return "truncate"
	}
	return "Policy(" + strconv.Itoa(int(p)) + ")"
}

// ParseDimension extracts the magnitude of s according to p.
// unit is only consulted by StripSuffix.
func ParseDimension(s string, p Policy, unit string) (float64, error) {
	switch p {
	case StripSuffix:
		return ParseSuffix(s, unit)
	case Truncate:
		return ParseTruncated(s)
	}
	return 0, errors.New(errors.ErrCodeInvalidArgument, "unknown dimension policy %v", p)
}

// ParseSuffix parses a dimension that must end with unit, e.g. "12.5pt".
func ParseSuffix(s, unit string) (float64, error) {
	s = strings.TrimSpace(s)
	if unit == "" || !strings.HasSuffix(s, unit) {
		return 0, errors.New(errors.ErrCodeInvalidDimension, "dimension %q does not end in %q", s, unit)
	}
	num, dim, err := splitDimension(strings.TrimSuffix(s, unit))
	if err != nil {
		return 0, err
	}
	if dim != "" {
		return 0, errors.New(errors.ErrCodeInvalidDimension, "dimension %q has trailing text before %q", s, unit)
	}
	return num, nil
}

// ParseTruncated parses the integer part of a dimension such as "600.5px" or "600".
// The unit, if any, must be one of px, pt, pc, mm, cm, in, em, ex or %.
// It is dropped, not converted: "50%" yields 50.
func ParseTruncated(s string) (float64, error) {
	num, dim, err := splitDimension(s)
	if err != nil {
		return 0, err
	}
	if !truncateUnits[strings.ToLower(dim)] {
		return 0, errors.New(errors.ErrCodeInvalidDimension, "dimension %q has unknown unit %q", s, dim)
	}
	return math.Trunc(num), nil
}

// ToPixels converts an absolute dimension to device pixels at the given dpi.
// Unitless values are user units and are taken as pixels regardless of dpi.
func ToPixels(s string, dpi float64) (float64, error) {
	num, dim, err := splitDimension(s)
	if err != nil {
		return 0, err
	}
	dim = strings.ToLower(dim)
	factor, ok := pixelsPerUnit[dim]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidDimension, "dimension %q has unsupported unit %q", s, dim)
	}
	if dim == "" || dim == "px" {
		return num, nil
	}
	return num * factor * dpi / 96.0, nil
}

// IsRelative reports whether s is a well-formed dimension in em, ex or %.
func IsRelative(s string) bool {
	_, dim, err := splitDimension(s)
	return err == nil && relativeUnits[strings.ToLower(dim)]
}

// FormatDimension renders v with the shortest exact decimal followed by unit.
func FormatDimension(v float64, unit string) string {
	return formatNumber(v) + unit
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// splitDimension separates the leading number of s from its unit suffix.
func splitDimension(s string) (float64, string, error) {
	s = strings.TrimSpace(s)
	nn, _ := parse.Dimension([]byte(s))
	if nn == 0 {
		return 0, "", errors.New(errors.ErrCodeInvalidDimension, "dimension %q has no numeric value", s)
	}
	num, err := strconv.ParseFloat(s[:nn], 64)
	if err != nil {
		return 0, "", errors.Wrap(errors.ErrCodeInvalidDimension, err, "bad dimension %q", s)
	}
	return num, s[nn:], nil
}
