package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/semichord/pkg/cache"
	"github.com/matzehuels/semichord/pkg/chart"
	"github.com/matzehuels/semichord/pkg/config"
	"github.com/matzehuels/semichord/pkg/dataset"
)

// inputHash identifies everything that shapes c's drawing: the validated
// table, the resolved configuration and the container size.
func inputHash(c *chart.Chart, opts Options) (string, error) {
	data, err := json.Marshal(struct {
		Table  *dataset.Table `json:"table"`
		Config *config.Config `json:"config"`
		Box    config.Box     `json:"box"`
	}{c.Table(), c.Config(), opts.Container()})
	if err != nil {
		return "", fmt.Errorf("hash inputs: %w", err)
	}
	return cache.Hash(data), nil
}

// renderCached serves cacheable formats from r.Cache and renders the rest.
// Without a cache every format is rendered.
// Cache failures are logged and fall back to rendering.
func (r *Runner) renderCached(ctx context.Context, c *chart.Chart, opts Options) (map[string][]byte, error) {
	store := r.Cache
	if store == nil {
		store = cache.Null
	}

	inputs, err := inputHash(c, opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	keys := map[string]string{}
	var missing []string
	for _, format := range opts.Formats {
		if !cache.Cacheable(format) {
			missing = append(missing, format)
			continue
		}
		ko := cache.ArtifactKeyOpts{Format: format}
		if format == FormatPNG {
			ko.Scale = opts.Scale
		}
		key := cache.ArtifactKey(inputs, ko)
		data, hit, err := store.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if hit {
			r.Logger.Debug("cache hit", "format", format)
			artifacts[format] = data
			continue
		}
		keys[format] = key
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, c, sub)
	if err != nil {
		return nil, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		key, ok := keys[format]
		if !ok {
			continue
		}
		if err := store.Set(ctx, key, data, r.CacheTTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
		}
	}
	return artifacts, nil
}
