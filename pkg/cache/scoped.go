package cache

// ScopedKeyer wraps a Keyer with a prefix. The HTTP server scopes keys by
// document so that deleting a document can be reasoned about per namespace.
//
//	docKeyer := NewScopedKeyer(NewDefaultKeyer(), "doc:"+id+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ViewKey implements Keyer.
func (k *ScopedKeyer) ViewKey(layoutHash string, opts ViewKeyOpts) string {
	return k.prefix + k.inner.ViewKey(layoutHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
