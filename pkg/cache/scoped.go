package cache

// ScopedKeyer prefixes every generated key, isolating cache namespaces when
// several galleries or users share one backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps a keyer with a prefix. A nil inner keyer defaults to
// the standard one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// CompositionKey implements Keyer.
func (k *ScopedKeyer) CompositionKey(seed int64, opts CompositionKeyOpts) string {
	return k.prefix + k.inner.CompositionKey(seed, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(compositionHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(compositionHash, opts)
}
