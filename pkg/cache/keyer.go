package cache

// Keyer generates cache keys. Implementations decide the key layout; the
// pipeline only relies on equal inputs giving equal keys.
type Keyer interface {
	// ModelKey is the key of the model built from a brief.
	ModelKey(briefHash string, opts ModelKeyOpts) string

	// DrawingKey is the key of the documents rendered from a model in one
	// format.
	DrawingKey(modelHash string, opts DrawingKeyOpts) string
}

// ModelKeyOpts are the synthesis options that change the built model.
type ModelKeyOpts struct {
	ProgramPolicy string `json:"program_policy,omitempty"`
	DisableRepair bool   `json:"disable_repair,omitempty"`
}

// DrawingKeyOpts are the render options that change the documents.
type DrawingKeyOpts struct {
	Format string `json:"format"`
	// OptionsHash is a hash of the drawing options, so callers need not
	// list every flag here.
	OptionsHash string  `json:"options_hash"`
	Scale       float64 `json:"scale,omitempty"` // raster scale, png only
	Detailed    bool    `json:"detailed,omitempty"`
}

// DefaultKeyer produces keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ModelKey generates a key for model caching.
func (DefaultKeyer) ModelKey(briefHash string, opts ModelKeyOpts) string {
	return hashKey("model", briefHash, opts)
}

// DrawingKey generates a key for drawing caching.
func (DefaultKeyer) DrawingKey(modelHash string, opts DrawingKeyOpts) string {
	return hashKey("drawing", modelHash, opts)
}

var _ Keyer = DefaultKeyer{}
