// Package pipeline runs compliance evaluation and format export with caching.
//
// The core packages ([compliance], [format]) are pure functions over scene
// values. This package wraps them for the CLI and the HTTP server: it
// resolves format keys through a registry, caches reports and adapted
// scenes, logs, emits observability events and fans exports out over
// several formats concurrently.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Evaluate(ctx, s, compliance.DefaultGuidelines())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Report.Score)
//
//	variants, err := runner.ExportAll(ctx, s, []string{"facebook_feed", "linkedin"}, g)
//
// Each variant carries the adapted scene and its own compliance report,
// since adaptation can move elements out of the safe zone or change text
// coverage.
//
// [compliance]: github.com/matzehuels/creativeforge/pkg/compliance
// [format]: github.com/matzehuels/creativeforge/pkg/format
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/creativeforge/pkg/compliance"
	"github.com/matzehuels/creativeforge/pkg/errors"
	"github.com/matzehuels/creativeforge/pkg/format"
	"github.com/matzehuels/creativeforge/pkg/scene"
)

// DefaultConcurrency bounds the number of formats exported in parallel.
const DefaultConcurrency = 4

// Rasterizer renders a scene to encoded image bytes. Pixel rendering lives
// outside this module; a Runner without a Rasterizer exports scene
// variants only.
type Rasterizer interface {
	Rasterize(ctx context.Context, s scene.Scene) ([]byte, error)
}

// AssetIngestor turns raw uploaded image bytes into an opaque source
// reference for an image element.
type AssetIngestor interface {
	Ingest(ctx context.Context, name string, data []byte) (sourceRef string, err error)
}

// Options configures an export.
type Options struct {
	// Formats are registry keys. Empty selects every registered format.
	Formats []string `json:"formats,omitempty"`
	// Guidelines evaluate every variant.
	Guidelines compliance.Guidelines `json:"guidelines"`
	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`
	// Concurrency bounds parallel adaptation. Defaults to DefaultConcurrency.
	Concurrency int `json:"concurrency,omitempty"`

	// Logger overrides the runner's logger for this call.
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	for _, key := range o.Formats {
		if err := errors.ValidateFormatKey(key); err != nil {
			return err
		}
	}
	if err := o.Guidelines.Validate(); err != nil {
		return err
	}
	o.Guidelines = o.Guidelines.WithDefaults()
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result is the outcome of one evaluation.
type Result struct {
	Report compliance.Report `json:"report"`
	// SceneHash is the content hash of the evaluated scene.
	SceneHash string `json:"sceneHash"`
	// CacheHit reports whether Report came from the cache.
	CacheHit bool          `json:"cacheHit"`
	Duration time.Duration `json:"-"`
}

// Variant is one exported format.
type Variant struct {
	Format format.Format     `json:"format"`
	Scene  scene.Scene       `json:"scene"`
	Report compliance.Report `json:"report"`
	// Image holds the rasterized variant when the runner has a Rasterizer.
	Image []byte `json:"image,omitempty"`
}
