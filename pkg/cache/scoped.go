package cache

// ScopedKeyer wraps a Keyer with a prefix, giving separate namespaces in a
// shared cache, for example one per project:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:riverside:")
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

// ModelKey generates a prefixed key for model caching.
func (k *ScopedKeyer) ModelKey(briefHash string, opts ModelKeyOpts) string {
	return k.prefix + k.inner.ModelKey(briefHash, opts)
}

// DrawingKey generates a prefixed key for drawing caching.
func (k *ScopedKeyer) DrawingKey(modelHash string, opts DrawingKeyOpts) string {
	return k.prefix + k.inner.DrawingKey(modelHash, opts)
}
