package pipeline

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/matzehuels/creativeforge/pkg/cache"
	"github.com/matzehuels/creativeforge/pkg/errors"
)

// AssetScheme prefixes every source reference handed out by CacheIngestor.
const AssetScheme = "asset://"

// Ingestion limits.
const (
	DefaultMaxAssetBytes = 16 << 20
	TTLAsset             = 30 * 24 * time.Hour
)

// ImageInfo describes an ingested image.
type ImageInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int    `json:"size"`
}

// DescribeImage decodes the header of a PNG, JPEG or GIF image.
func DescribeImage(data []byte) (ImageInfo, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, errors.Wrap(errors.ErrCodeUnsupported, err, "not a PNG, JPEG or GIF image")
	}
	return ImageInfo{Width: cfg.Width, Height: cfg.Height, Format: name, Size: len(data)}, nil
}

// CacheIngestor stores uploaded images in a cache and returns
// content-addressed references of the form "asset://<sha256>". Uploading
// the same bytes twice yields the same reference.
type CacheIngestor struct {
	Cache cache.Cache
	Keyer cache.Keyer
	// MaxBytes bounds an upload. Defaults to DefaultMaxAssetBytes.
	MaxBytes int
	// TTL of stored assets. Defaults to TTLAsset.
	TTL time.Duration
}

// NewCacheIngestor returns an ingestor storing assets in c.
func NewCacheIngestor(c cache.Cache, keyer cache.Keyer) *CacheIngestor {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &CacheIngestor{Cache: c, Keyer: keyer, MaxBytes: DefaultMaxAssetBytes, TTL: TTLAsset}
}

// Ingest validates data as an image, stores it and returns its reference.
func (i *CacheIngestor) Ingest(ctx context.Context, name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "asset %q is empty", name)
	}
	limit := i.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxAssetBytes
	}
	if len(data) > limit {
		return "", errors.New(errors.ErrCodeInvalidInput, "asset %q is %d bytes (max %d)", name, len(data), limit)
	}
	if _, err := DescribeImage(data); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "asset %q", name)
	}

	hash := cache.Hash(data)
	ttl := i.TTL
	if ttl == 0 {
		ttl = TTLAsset
	}
	if err := i.Cache.Set(ctx, i.Keyer.AssetKey(hash), data, ttl); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "store asset %q", name)
	}
	return AssetScheme + hash, nil
}

// Load returns the bytes behind a reference produced by Ingest.
func (i *CacheIngestor) Load(ctx context.Context, ref string) ([]byte, error) {
	hash, ok := strings.CutPrefix(ref, AssetScheme)
	if !ok || hash == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "not an asset reference: %q", ref)
	}
	data, hit, err := i.Cache.Get(ctx, i.Keyer.AssetKey(hash))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load asset")
	}
	if !hit {
		return nil, errors.New(errors.ErrCodeNotFound, "asset %s not found", ref)
	}
	return data, nil
}

var _ AssetIngestor = (*CacheIngestor)(nil)
