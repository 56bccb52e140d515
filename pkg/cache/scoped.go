package cache

// ScopedKeyer wraps a Keyer with a prefix so that several writers can share
// one backend without seeing each other's entries.
//
// Example usage:
//
//	// Server entries live under "api:"
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
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

// ConversionKey generates a prefixed key for conversion results.
func (k *ScopedKeyer) ConversionKey(inputHash string, opts ConversionKeyOpts) string {
	return k.prefix + k.inner.ConversionKey(inputHash, opts)
}
