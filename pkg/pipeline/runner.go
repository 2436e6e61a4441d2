package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/creativeforge/pkg/cache"
	"github.com/matzehuels/creativeforge/pkg/compliance"
	"github.com/matzehuels/creativeforge/pkg/format"
	"github.com/matzehuels/creativeforge/pkg/observability"
	"github.com/matzehuels/creativeforge/pkg/scene"
)

// Cache key types reported to observability hooks.
const (
	keyTypeReport  = "report"
	keyTypeVariant = "variant"
)

// Runner wraps evaluation and adaptation with caching.
// Both CLI and server use it so that caching behaves the same everywhere.
//
// The Runner holds no per-call state. Multiple goroutines can safely use
// the same Runner as long as Registry is not modified concurrently.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Registry *format.Registry
	// Rasterizer is optional. When nil, exports carry no image bytes.
	Rasterizer Rasterizer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The registry defaults to [format.DefaultRegistry].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Registry: format.DefaultRegistry(),
	}
}

// Evaluate scores s against g, serving repeated requests from the cache.
func (r *Runner) Evaluate(ctx context.Context, s scene.Scene, g compliance.Guidelines) (Result, error) {
	return r.evaluate(ctx, s, hashScene(s), g, false, r.Logger)
}

func (r *Runner) evaluate(ctx context.Context, s scene.Scene, sceneHash string, g compliance.Guidelines, refresh bool, logger *log.Logger) (Result, error) {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnEvaluateStart(ctx, len(s.Elements))

	res, err := r.evaluateCached(ctx, s, sceneHash, g, refresh)
	res.Duration = time.Since(start)
	hooks.OnEvaluateComplete(ctx, res.Report.Score, len(res.Report.Violations), res.Duration, err)
	if err != nil {
		return Result{}, err
	}

	logger.Debug("evaluated scene",
		"score", res.Report.Score,
		"violations", len(res.Report.Violations),
		"warnings", len(res.Report.Warnings),
		"cached", res.CacheHit,
		"duration", res.Duration)
	return res, nil
}

func (r *Runner) evaluateCached(ctx context.Context, s scene.Scene, sceneHash string, g compliance.Guidelines, refresh bool) (Result, error) {
	res := Result{SceneHash: sceneHash}

	var key string
	if gh, err := cache.HashJSON(g.WithDefaults()); err == nil && sceneHash != "" {
		key = r.Keyer.ReportKey(sceneHash, cache.ReportKeyOpts{GuidelinesHash: gh})
	}
	if key != "" && !refresh && r.load(ctx, keyTypeReport, key, &res.Report) {
		res.CacheHit = true
		return res, nil
	}

	report, err := compliance.Evaluate(s, g)
	if err != nil {
		return Result{}, err
	}
	res.Report = report
	if key != "" {
		r.store(ctx, keyTypeReport, key, report, cache.TTLReport)
	}
	return res, nil
}

// Adapt adapts s to the registered format key.
func (r *Runner) Adapt(ctx context.Context, s scene.Scene, key string) (scene.Scene, error) {
	f, err := r.Registry.Get(key)
	if err != nil {
		return scene.Scene{}, err
	}
	out, _, err := r.adapt(ctx, s, hashScene(s), f, false)
	return out, err
}

func (r *Runner) adapt(ctx context.Context, s scene.Scene, sceneHash string, f format.Format, refresh bool) (scene.Scene, bool, error) {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnAdaptStart(ctx, f.Key)

	out, hit, err := r.adaptCached(ctx, s, sceneHash, f, refresh)
	hooks.OnAdaptComplete(ctx, f.Key, time.Since(start), err)
	return out, hit, err
}

func (r *Runner) adaptCached(ctx context.Context, s scene.Scene, sceneHash string, f format.Format, refresh bool) (scene.Scene, bool, error) {
	var key string
	if sceneHash != "" {
		key = r.Keyer.VariantKey(sceneHash, cache.VariantKeyOpts{Format: f.Key, Width: f.Width, Height: f.Height})
	}
	if key != "" && !refresh {
		var cached scene.Scene
		if r.load(ctx, keyTypeVariant, key, &cached) {
			return cached, true, nil
		}
	}

	out, err := format.Adapt(s, f)
	if err != nil {
		return scene.Scene{}, false, err
	}
	if key != "" {
		r.store(ctx, keyTypeVariant, key, out, cache.TTLVariant)
	}
	return out, false, nil
}

// ExportAll adapts s to each format key, evaluates every variant against g
// and rasterizes it when the runner has a Rasterizer. An empty keys exports
// every registered format. Variants are returned in registry order.
func (r *Runner) ExportAll(ctx context.Context, s scene.Scene, keys []string, g compliance.Guidelines) ([]Variant, error) {
	return r.Export(ctx, s, Options{Formats: keys, Guidelines: g})
}

// Export is ExportAll with full options.
func (r *Runner) Export(ctx context.Context, s scene.Scene, opts Options) ([]Variant, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	formats, err := r.Registry.Lookup(opts.Formats)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(formats))
	for i, f := range formats {
		keys[i] = f.Key
	}

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, keys)

	sceneHash := hashScene(s)
	variants := make([]Variant, len(formats))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Concurrency)
	for i, f := range formats {
		eg.Go(func() error {
			v, err := r.exportOne(egCtx, s, sceneHash, f, opts)
			if err != nil {
				return fmt.Errorf("export %s: %w", f.Key, err)
			}
			variants[i] = v
			return nil
		})
	}
	err = eg.Wait()

	duration := time.Since(start)
	hooks.OnExportComplete(ctx, keys, duration, err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("exported variants",
		"formats", len(variants),
		"duration", duration)
	return variants, nil
}

func (r *Runner) exportOne(ctx context.Context, s scene.Scene, sceneHash string, f format.Format, opts Options) (Variant, error) {
	if err := ctx.Err(); err != nil {
		return Variant{}, err
	}

	adapted, hit, err := r.adapt(ctx, s, sceneHash, f, opts.Refresh)
	if err != nil {
		return Variant{}, err
	}
	res, err := r.evaluate(ctx, adapted, hashScene(adapted), opts.Guidelines, opts.Refresh, opts.Logger)
	if err != nil {
		return Variant{}, err
	}

	v := Variant{Format: f, Scene: adapted, Report: res.Report}
	if r.Rasterizer != nil {
		img, err := r.Rasterizer.Rasterize(ctx, adapted)
		if err != nil {
			return Variant{}, fmt.Errorf("rasterize: %w", err)
		}
		v.Image = img
	}

	opts.Logger.Debug("exported variant",
		"format", f.Key,
		"width", adapted.Width,
		"height", adapted.Height,
		"score", res.Report.Score,
		"cached", hit)
	return v, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// load decodes the cached value under key into v and reports a hit.
// Read and decode failures count as misses.
func (r *Runner) load(ctx context.Context, keyType, key string, v any) bool {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit || json.Unmarshal(data, v) != nil {
		hooks.OnCacheMiss(ctx, keyType)
		return false
	}
	hooks.OnCacheHit(ctx, keyType)
	return true
}

// store writes v under key. Failures are logged, never returned: a result
// that cannot be cached is still a valid result.
func (r *Runner) store(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// hashScene returns the content hash of s, or "" when s cannot be encoded.
// An empty hash disables caching for the call.
func hashScene(s scene.Scene) string {
	h, err := cache.HashJSON(s)
	if err != nil {
		return ""
	}
	return h
}
