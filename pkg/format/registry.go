package format

import (
	"slices"

	"github.com/matzehuels/creativeforge/pkg/errors"
)

// Built-in formats.
var (
	FacebookFeed   = Format{Key: "facebook_feed", Name: "Facebook Feed", Width: 1200, Height: 630, Platform: PlatformFacebook}
	FacebookStory  = Format{Key: "facebook_story", Name: "Facebook Story", Width: 1080, Height: 1920, Platform: PlatformFacebook}
	InstagramFeed  = Format{Key: "instagram_feed", Name: "Instagram Feed", Width: 1080, Height: 1080, Platform: PlatformInstagram}
	InstagramStory = Format{Key: "instagram_story", Name: "Instagram Story", Width: 1080, Height: 1920, Platform: PlatformInstagram}
	LinkedIn       = Format{Key: "linkedin", Name: "LinkedIn", Width: 1200, Height: 627, Platform: PlatformLinkedIn}
)

// Builtin lists the built-in formats in registry order.
var Builtin = []Format{FacebookFeed, FacebookStory, InstagramFeed, InstagramStory, LinkedIn}

// Registry is an ordered set of formats addressed by key.
//
// A Registry is not safe for concurrent mutation. Build it once during
// setup; concurrent reads are fine afterwards.
type Registry struct {
	formats []Format
	index   map[string]int
}

// NewRegistry returns a registry holding formats in the given order.
func NewRegistry(formats ...Format) (*Registry, error) {
	r := &Registry{index: make(map[string]int, len(formats))}
	for _, f := range formats {
		if err := r.Add(f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry returns a registry holding [Builtin].
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Builtin...)
	if err != nil {
		panic(err)
	}
	return r
}

// Add registers f. A format whose key is already present replaces the old
// entry in place, so configuration can override built-in sizes.
func (r *Registry) Add(f Format) error {
	if f.Key == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "format key cannot be empty")
	}
	if err := f.Validate(); err != nil {
		return err
	}
	if f.Name == "" {
		f.Name = f.Key
	}
	if f.Platform == "" {
		f.Platform = PlatformCustom
	}
	if i, ok := r.index[f.Key]; ok {
		r.formats[i] = f
		return nil
	}
	r.index[f.Key] = len(r.formats)
	r.formats = append(r.formats, f)
	return nil
}

// Get returns the format registered under key.
func (r *Registry) Get(key string) (Format, error) {
	i, ok := r.index[key]
	if !ok {
		return Format{}, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", key)
	}
	return r.formats[i], nil
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	_, ok := r.index[key]
	return ok
}

// All returns every format in registry order.
func (r *Registry) All() []Format {
	return slices.Clone(r.formats)
}

// Keys returns every key in registry order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.formats))
	for i, f := range r.formats {
		keys[i] = f.Key
	}
	return keys
}

// Lookup resolves keys to formats. The result follows registry order, not
// the order of keys, and duplicates collapse. An empty keys selects every
// format.
func (r *Registry) Lookup(keys []string) ([]Format, error) {
	if len(keys) == 0 {
		return r.All(), nil
	}
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !r.Has(k) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", k)
		}
		want[k] = true
	}
	out := make([]Format, 0, len(want))
	for _, f := range r.formats {
		if want[f.Key] {
			out = append(out, f)
		}
	}
	return out, nil
}

// Len returns the number of registered formats.
func (r *Registry) Len() int {
	return len(r.formats)
}
