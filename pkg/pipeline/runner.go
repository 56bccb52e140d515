package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/knotwork/pkg/bpseq"
	"github.com/matzehuels/knotwork/pkg/cache"
	"github.com/matzehuels/knotwork/pkg/dotbracket"
	"github.com/matzehuels/knotwork/pkg/observability"
	"github.com/matzehuels/knotwork/pkg/pseudoknot"
)

// cacheKeyType labels conversion entries in cache hooks.
const cacheKeyType = "conversion"

// Runner encapsulates conversion with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
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

// Execute converts seq into multi-level dot-bracket notation.
//
// Resolution itself cannot be interrupted; if ctx is done first, Execute
// returns ctx.Err() and the abandoned conversion finishes in the background
// without being cached.
func (r *Runner) Execute(ctx context.Context, seq *bpseq.BpSeq, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnConvertStart(ctx, opts.Strategy, seq.Len(), seq.PairCount())
	start := time.Now()

	inputHash := cache.Hash([]byte(seq.String()))
	key := r.Keyer.ConversionKey(inputHash, opts.KeyOpts())

	if !opts.Refresh {
		if result, ok := r.lookup(ctx, key, opts.Logger); ok {
			result.ID = uuid.NewString()
			result.CacheHit = true
			hooks.OnConvertComplete(ctx, opts.Strategy, result.Stats.Levels, result.Stats.Rounds, time.Since(start), nil)
			opts.Logger.Debug("using cached conversion", "key", key)
			return result, nil
		}
	}

	conv, err := pseudoknot.FromConfig(opts.Config())
	if err != nil {
		hooks.OnConvertComplete(ctx, opts.Strategy, 0, 0, time.Since(start), err)
		return nil, err
	}

	done := make(chan *pseudoknot.Conversion, 1)
	go func() { done <- conv.Convert(seq) }()

	var out *pseudoknot.Conversion
	select {
	case <-ctx.Done():
		hooks.OnConvertComplete(ctx, opts.Strategy, 0, 0, time.Since(start), ctx.Err())
		return nil, ctx.Err()
	case out = <-done:
	}

	result := newResult(inputHash, seq.Len(), seq.PairCount(), out)
	result.Stats.Duration = time.Since(start)
	hooks.OnConvertComplete(ctx, opts.Strategy, result.Stats.Levels, result.Stats.Rounds, result.Stats.Duration, nil)

	if result.Unassigned > 0 {
		opts.Logger.Warn("bracket alphabet exhausted, pairs left unpaired",
			"unassigned", result.Unassigned,
			"max_levels", dotbracket.MaxLevels)
	}
	opts.Logger.Info("resolved structure",
		"residues", result.Stats.Residues,
		"pairs", result.Stats.Pairs,
		"levels", result.Stats.Levels,
		"rounds", result.Stats.Rounds,
		"alternatives", len(result.Alternatives),
		"duration", result.Stats.Duration)

	r.store(ctx, key, result, opts.Logger)
	result.ID = uuid.NewString()
	return result, nil
}

// lookup returns the cached result for key. Backend errors and undecodable
// entries are treated as misses.
func (r *Runner) lookup(ctx context.Context, key string, logger *log.Logger) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return &result, true
}

func (r *Runner) store(ctx context.Context, key string, result *Result, logger *log.Logger) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLConversion); err != nil {
		logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
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
