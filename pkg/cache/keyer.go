package cache

// Keyer derives cache keys from the inputs that determine a result.
type Keyer interface {
	// ReportKey returns the key of a compliance report.
	ReportKey(sceneHash string, opts ReportKeyOpts) string
	// VariantKey returns the key of a scene adapted to one format.
	VariantKey(sceneHash string, opts VariantKeyOpts) string
	// AssetKey returns the key of an ingested asset.
	AssetKey(contentHash string) string
}

// ReportKeyOpts holds the report inputs besides the scene.
type ReportKeyOpts struct {
	GuidelinesHash string `json:"guidelines"`
}

// VariantKeyOpts identifies the target format. Dimensions are part of the
// key so that a format overridden in configuration does not hit entries
// computed for its old size.
type VariantKeyOpts struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// DefaultKeyer produces keys of the form "report:<sha256>",
// "variant:<sha256>" and "asset:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ReportKey implements Keyer.
func (DefaultKeyer) ReportKey(sceneHash string, opts ReportKeyOpts) string {
	return hashKey("report", sceneHash, opts)
}

// VariantKey implements Keyer.
func (DefaultKeyer) VariantKey(sceneHash string, opts VariantKeyOpts) string {
	return hashKey("variant", sceneHash, opts)
}

// AssetKey implements Keyer. Assets are addressed by their content hash
// directly.
func (DefaultKeyer) AssetKey(contentHash string) string {
	return "asset:" + contentHash
}

var _ Keyer = DefaultKeyer{}
