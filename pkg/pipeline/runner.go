package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/blueprint/pkg/cache"
	"github.com/matzehuels/blueprint/pkg/model"
	"github.com/matzehuels/blueprint/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeModel   = "model"
	keyTypeDrawing = "drawing"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger: it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	name := opts.DesignName()
	result := &Result{}

	// Stage 1: Build
	hooks.OnBuildStart(ctx, name)
	buildStart := time.Now()
	m, buildHit, err := r.BuildWithCacheInfo(ctx, opts)
	result.Stats.BuildTime = time.Since(buildStart)
	floors := 0
	if m != nil {
		floors = len(m.Floors)
	}
	hooks.OnBuildComplete(ctx, name, floors, result.Stats.BuildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Model = m
	result.CacheInfo.BuildHit = buildHit
	result.Validation = m.Validate()
	result.Stats.Floors = result.Validation.Metrics.Floors
	result.Stats.Rooms = result.Validation.Metrics.Rooms
	result.Stats.Openings = result.Validation.Metrics.Windows + result.Validation.Metrics.Doors
	if result.ModelHash, err = ModelHash(m); err != nil {
		return nil, err
	}

	opts.Logger.Info("built model",
		"design", name,
		"floors", result.Stats.Floors,
		"rooms", result.Stats.Rooms,
		"cached", buildHit,
		"duration", result.Stats.BuildTime)
	for _, w := range result.Validation.Warnings {
		opts.Logger.Warn(w, "design", name)
	}

	// Stage 2: Render
	hooks.OnRenderStart(ctx, m.ID, opts.Formats)
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, m, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, m.ID, len(artifacts), result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.Artifacts = len(artifacts)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered drawings",
		"design", name,
		"formats", opts.Formats,
		"files", len(artifacts),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ExecuteAll runs Execute for every options value, at most limit at a
// time. Results are in input order. The first error cancels the remaining
// runs and is returned.
func (r *Runner) ExecuteAll(ctx context.Context, all []Options, limit int) ([]*Result, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	results := make([]*Result, len(all))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, opts := range all {
		g.Go(func() error {
			res, err := r.Execute(ctx, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", opts.DesignName(), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BuildWithCacheInfo builds the model with caching and returns cache hit
// info. The brief is always loaded, since its hash is the cache key.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (*model.Building, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForBuild(); err != nil {
		return nil, false, err
	}

	b, err := LoadBrief(opts)
	if err != nil {
		return nil, false, err
	}
	briefHash, err := BriefHash(b)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.ModelKey(briefHash, opts.ModelKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if m, err := model.ReadJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeModel)
				return m, true, nil
			}
			// If deserialization fails, fall through to rebuild
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeModel)

	m, err := BuildModel(b, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := marshalModel(m); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLModel); err != nil {
			opts.Logger.Debug("cache write failed", "key", keyTypeModel, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeModel, len(data))
		}
	}
	return m, false, nil
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Build(ctx context.Context, opts Options) (*model.Building, error) {
	m, _, err := r.BuildWithCacheInfo(ctx, opts)
	return m, err
}

// RenderWithCacheInfo renders every requested format with caching and
// reports whether all of them came from the cache. The json format is
// never cached because its metadata carries a timestamp.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m *model.Building, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	modelHash, err := ModelHash(m)
	if err != nil {
		return nil, false, err
	}

	artifacts := map[string][]byte{}
	allCached := true
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		cacheable := format != FormatJSON
		cacheKey := r.Keyer.DrawingKey(modelHash, opts.DrawingKeyOpts(format))

		if cacheable && !opts.Refresh {
			if files, ok := r.cachedFiles(ctx, cacheKey); ok {
				observability.Cache().OnCacheHit(ctx, keyTypeDrawing)
				for name, data := range files {
					artifacts[name] = data
				}
				continue
			}
			observability.Cache().OnCacheMiss(ctx, keyTypeDrawing)
		}
		allCached = false

		files, err := RenderFormat(ctx, m, format, opts)
		if err != nil {
			return nil, false, err
		}
		opts.Logger.Debug("rendered format", "format", format, "files", len(files))
		for name, data := range files {
			artifacts[name] = data
		}
		if cacheable {
			if data, err := json.Marshal(files); err == nil {
				if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLDrawing); err == nil {
					observability.Cache().OnCacheSet(ctx, keyTypeDrawing, len(data))
				}
			}
		}
	}
	return artifacts, allCached, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, m *model.Building, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, m, opts)
	return artifacts, err
}

func (r *Runner) cachedFiles(ctx context.Context, key string) (map[string][]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var files map[string][]byte
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, false
	}
	return files, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
