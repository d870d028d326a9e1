package cache

// Keyer builds cache keys for derived artifacts.
type Keyer interface {
	// ViewKey names the JSON presentation of a layout.
	ViewKey(layoutHash string, opts ViewKeyOpts) string

	// ArtifactKey names a rendered file (svg, dot, png).
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// ViewKeyOpts are the geometry options that change a view.
type ViewKeyOpts struct {
	Width     float64 `json:"width"`
	RowHeight float64 `json:"row_height"`
	Snap      bool    `json:"snap,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Width     float64 `json:"width"`
	RowHeight float64 `json:"row_height"`
	Detailed  bool    `json:"detailed,omitempty"`
	Title     string  `json:"title,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ViewKey implements Keyer.
func (DefaultKeyer) ViewKey(layoutHash string, opts ViewKeyOpts) string {
	return hashKey("view", layoutHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
