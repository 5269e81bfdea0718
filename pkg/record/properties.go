package record

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/svgstack/pkg/errors"
)

// Format is a printf-style template whose arguments are looked up by key.
//
//	file_name = { format = "%s_lightcurve.svg", arg_keys = ["stock"] }
//
// A plain TOML string is a template without arguments.
type Format struct {
	Format  string   `toml:"format" json:"format"`
	ArgKeys []string `toml:"arg_keys" json:"arg_keys,omitempty"`
}

// UnmarshalTOML accepts either a string or a {format, arg_keys} table.
func (f *Format) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*f = Format{Format: x}
		return nil
	case map[string]any:
		s, ok := x["format"].(string)
		if !ok {
			return fmt.Errorf("format: missing string key \"format\"")
		}
		*f = Format{Format: s}
		if keys, ok := x["arg_keys"].([]any); ok {
			for _, k := range keys {
				ks, ok := k.(string)
				if !ok {
					return fmt.Errorf("format: arg_keys must be strings")
				}
				f.ArgKeys = append(f.ArgKeys, ks)
			}
		}
		return nil
	}
	return fmt.Errorf("format: expected string or table, got %T", v)
}

// Resolve fills the template from extra.
// Every arg key must be present in extra.
func (f Format) Resolve(extra map[string]any) (string, error) {
	if len(f.ArgKeys) == 0 {
		return f.Format, nil
	}
	args := make([]any, len(f.ArgKeys))
	for i, k := range f.ArgKeys {
		v, ok := extra[k]
		if !ok {
			return "", errors.New(errors.ErrCodeInvalidArgument, "format %q needs extra value %q", f.Format, k)
		}
		args[i] = v
	}
	out := fmt.Sprintf(f.Format, args...)
	if strings.Contains(out, "%!") {
		return "", errors.New(errors.ErrCodeInvalidArgument, "format %q does not match its %d arg keys", f.Format, len(f.ArgKeys))
	}
	return out, nil
}

// Properties describe how a figure is turned into a record.
type Properties struct {
	FileName        Format   `toml:"file_name"`
	Title           *Format  `toml:"title"`
	FigIncludeTitle bool     `toml:"fig_include_title"`
	Width           *float64 `toml:"width"`
	Height          *float64 `toml:"height"`
	Tags            []string `toml:"tags"`
	Compress        *int     `toml:"compress"`
	DiskSave        string   `toml:"disk_save"`
}

// Compression returns the configured policy, [Compress] when unset.
func (p Properties) Compression() (Compression, error) {
	if p.Compress == nil {
		return Compress, nil
	}
	return ParseCompression(*p.Compress)
}

// Validate checks the properties without rendering anything.
func (p Properties) Validate() error {
	if p.FileName.Format == "" {
		return errors.New(errors.ErrCodeInvalidInput, "file_name is required")
	}
	if (p.Width == nil) != (p.Height == nil) {
		return errors.New(errors.ErrCodeInvalidInput, "width and height must be set together")
	}
	_, err := p.Compression()
	return err
}

// ParseProperties decodes TOML plot properties.
func ParseProperties(data string) (Properties, error) {
	var p Properties
	if _, err := toml.Decode(data, &p); err != nil {
		return p, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode plot properties")
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// LoadProperties reads TOML plot properties from path.
func LoadProperties(path string) (Properties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Properties{}, err
	}
	return ParseProperties(string(data))
}
