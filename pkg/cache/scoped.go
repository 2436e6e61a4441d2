package cache

// ScopedKeyer wraps a Keyer with a prefix so that several key spaces can
// share one backend.
//
// Example usage:
//
//	// Results of one release never leak into the next
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.4.0:")
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

// ReportKey generates a prefixed report key.
func (k *ScopedKeyer) ReportKey(sceneHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(sceneHash, opts)
}

// VariantKey generates a prefixed variant key.
func (k *ScopedKeyer) VariantKey(sceneHash string, opts VariantKeyOpts) string {
	return k.prefix + k.inner.VariantKey(sceneHash, opts)
}

// AssetKey generates a prefixed asset key.
func (k *ScopedKeyer) AssetKey(contentHash string) string {
	return k.prefix + k.inner.AssetKey(contentHash)
}
