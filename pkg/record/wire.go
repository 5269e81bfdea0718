package record

import (
	"encoding/base64"
	"encoding/json"

	"github.com/matzehuels/svgstack/pkg/errors"
)

// Wire keys of a persisted record.
const (
	keyName   = "name"
	keySVG    = "svg"
	keyTag    = "tag"
	keyTitle  = "title"
	keySVGStr = "svg_str"
)

// ToMap returns the wire shape of r. svg is a string for Text payloads
// and []byte for Compressed ones; optional keys are omitted when empty.
func (r Record) ToMap() map[string]any {
	m := map[string]any{keyName: r.Name}
	switch p := r.SVG.(type) {
	case Text:
		m[keySVG] = string(p)
	case Compressed:
		m[keySVG] = []byte(p)
	}
	if len(r.Tags) > 0 {
		m[keyTag] = append([]string(nil), r.Tags...)
	}
	if r.Title != "" {
		m[keyTitle] = r.Title
	}
	if r.SVGText != "" {
		m[keySVGStr] = r.SVGText
	}
	return m
}

// FromMap reads the wire shape. name and svg are required.
func FromMap(m map[string]any) (Record, error) {
	var r Record

	name, ok := m[keyName].(string)
	if !ok || name == "" {
		return r, errors.New(errors.ErrCodeInvalidArgument, "record map needs a string %q", keyName)
	}
	r.Name = name

	switch v := m[keySVG].(type) {
	case string:
		r.SVG = Text(v)
	case []byte:
		r.SVG = Compressed(v)
	default:
		return r, errors.New(errors.ErrCodeInvalidArgument, "record %q: %q must be a string or bytes, got %T", name, keySVG, v)
	}

	switch v := m[keyTag].(type) {
	case nil:
	case []string:
		r.Tags = append([]string(nil), v...)
	case []any:
		for _, t := range v {
			s, ok := t.(string)
			if !ok {
				return r, errors.New(errors.ErrCodeInvalidArgument, "record %q: tags must be strings, got %T", name, t)
			}
			r.Tags = append(r.Tags, s)
		}
	default:
		return r, errors.New(errors.ErrCodeInvalidArgument, "record %q: %q must be a list of strings, got %T", name, keyTag, v)
	}

	if v, ok := m[keyTitle]; ok {
		if r.Title, ok = v.(string); !ok {
			return r, errors.New(errors.ErrCodeInvalidArgument, "record %q: %q must be a string", name, keyTitle)
		}
	}
	if v, ok := m[keySVGStr]; ok {
		if r.SVGText, ok = v.(string); !ok {
			return r, errors.New(errors.ErrCodeInvalidArgument, "record %q: %q must be a string", name, keySVGStr)
		}
	}
	return r, nil
}

// jsonRecord is the JSON form. Compressed payloads are base64 encoded
// and flagged, since JSON has no byte type.
type jsonRecord struct {
	Name       string   `json:"name"`
	SVG        string   `json:"svg"`
	Compressed bool     `json:"compressed,omitempty"`
	Tags       []string `json:"tag,omitempty"`
	Title      string   `json:"title,omitempty"`
	SVGStr     string   `json:"svg_str,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	out := jsonRecord{Name: r.Name, Tags: r.Tags, Title: r.Title, SVGStr: r.SVGText}
	switch p := r.SVG.(type) {
	case Text:
		out.SVG = string(p)
	case Compressed:
		out.SVG = base64.StdEncoding.EncodeToString(p)
		out.Compressed = true
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	var in jsonRecord
	if err := json.Unmarshal(data, &in); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode record")
	}
	if in.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "record needs a name")
	}
	*r = Record{Name: in.Name, Tags: in.Tags, Title: in.Title, SVGText: in.SVGStr}
	if !in.Compressed {
		r.SVG = Text(in.SVG)
		return nil
	}
	b, err := base64.StdEncoding.DecodeString(in.SVG)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode compressed svg of %q", in.Name)
	}
	r.SVG = Compressed(b)
	return nil
}
