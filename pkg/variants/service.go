package variants

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"pixelmill/pkg/cache"
	"pixelmill/pkg/optimizer"
)

// Service wraps the pipeline for server-style callers that may receive the
// same upload several times concurrently: identical in-flight requests
// (same content digest, same preset) collapse into one pipeline run, and
// encoded outputs can optionally be cached. Decoded pixels are never
// cached.
type Service struct {
	presets map[string]optimizer.Options
	group   singleflight.Group
	cache   *cache.Cache
}

// NewService builds a Service over a preset table. c may be nil to disable
// result caching.
func NewService(presets map[string]optimizer.Options, c *cache.Cache) *Service {
	return &Service{presets: presets, cache: c}
}

// Presets lists the known preset names, sorted.
func (s *Service) Presets() []string {
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options returns the options value behind a preset name.
func (s *Service) Options(preset string) (optimizer.Options, bool) {
	opts, ok := s.presets[preset]
	return opts, ok
}

// Process runs one preset over data, deduplicating concurrent identical
// work and consulting the result cache.
func (s *Service) Process(ctx context.Context, data []byte, preset string) (*optimizer.Optimized, error) {
	opts, ok := s.presets[preset]
	if !ok {
		return nil, errors.Errorf("unknown preset %q", preset)
	}

	key := digest(data) + ":" + preset

	if s.cache != nil {
		if raw, ok := s.cache.Get(key); ok {
			if out, err := decodeCached(raw); err == nil {
				return out, nil
			}
			s.cache.Delete(key)
		}
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		out, err := optimizer.Optimize(ctx, data, opts)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if raw, err := json.Marshal(out); err == nil {
				s.cache.Set(key, raw)
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "preset %q", preset)
	}
	return v.(*optimizer.Optimized), nil
}

// ProcessAll runs every preset over data, in sorted preset order.
func (s *Service) ProcessAll(ctx context.Context, data []byte) (VariantSet, error) {
	return ProcessVariants(ctx, data, s.presets, s.Presets()...)
}

func decodeCached(raw []byte) (*optimizer.Optimized, error) {
	var out optimizer.Optimized
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
