package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments or
// library versions can share one backend without seeing each other's
// entries.
//
// Example usage:
//
//	// Entries written by the HTTP API
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
//
//	// Entries written by the CLI
//	cliKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// StackKey generates a prefixed key for stacked documents.
func (k *ScopedKeyer) StackKey(svg1, svg2 string, opts StackKeyOpts) string {
	return k.prefix + k.inner.StackKey(svg1, svg2, opts)
}

// RescaleKey generates a prefixed key for rescaled documents.
func (k *ScopedKeyer) RescaleKey(svg string, scale float64) string {
	return k.prefix + k.inner.RescaleKey(svg, scale)
}

// PNGKey generates a prefixed key for rasterized images.
func (k *ScopedKeyer) PNGKey(svg string, opts PNGKeyOpts) string {
	return k.prefix + k.inner.PNGKey(svg, opts)
}
