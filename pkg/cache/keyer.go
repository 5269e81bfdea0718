package cache

// Keyer generates cache keys for pipeline operations.
type Keyer interface {
	// StackKey identifies the composition of svg1 and svg2.
	StackKey(svg1, svg2 string, opts StackKeyOpts) string
	// RescaleKey identifies svg rescaled by scale.
	RescaleKey(svg string, scale float64) string
	// PNGKey identifies the rasterization of svg.
	PNGKey(svg string, opts PNGKeyOpts) string
}

// StackKeyOpts holds the options that change a stacked document.
type StackKeyOpts struct {
	Horizontal bool   `json:"horizontal"`
	Separator  bool   `json:"separator"`
	Unit       string `json:"unit"`
	Minify     bool   `json:"minify"`
}

// PNGKeyOpts holds the options that change a rasterized image.
type PNGKeyOpts struct {
	DPI     float64 `json:"dpi"`
	Backend string  `json:"backend"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// StackKey returns "stack:<sha256>". Swapping the inputs changes the key.
func (DefaultKeyer) StackKey(svg1, svg2 string, opts StackKeyOpts) string {
	return hashKey("stack", HashString(svg1), HashString(svg2), opts)
}

// RescaleKey returns "rescale:<sha256>".
func (DefaultKeyer) RescaleKey(svg string, scale float64) string {
	return hashKey("rescale", HashString(svg), scale)
}

// PNGKey returns "png:<sha256>".
func (DefaultKeyer) PNGKey(svg string, opts PNGKeyOpts) string {
	return hashKey("png", HashString(svg), opts)
}

var _ Keyer = DefaultKeyer{}
