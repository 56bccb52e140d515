// Package pipeline runs pseudoknot resolution with caching, logging and
// instrumentation around it.
//
// The CLI and the HTTP server both go through a [Runner] so that defaults,
// cache keys and log output are identical across entry points.
//
// # Usage
//
// Parse the input and execute a conversion:
//
//	seq, err := pipeline.ParseInput(data, "")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, seq, pipeline.Options{Strategy: "exact"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.DotBracket.Structure)
//
// Zero-valued options take the defaults of [pseudoknot.DefaultConfig].
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/knotwork/pkg/cache"
	"github.com/matzehuels/knotwork/pkg/dotbracket"
	kerrors "github.com/matzehuels/knotwork/pkg/errors"
	"github.com/matzehuels/knotwork/pkg/pseudoknot"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a conversion.
// This struct supports JSON serialization for API requests.
type Options struct {
	Strategy          string `json:"strategy,omitempty"`
	Selector          string `json:"selector,omitempty"`
	MaxCliqueSize     int    `json:"max_clique_size,omitempty"`
	MaxStatesPerRound int    `json:"max_states_per_round,omitempty"`
	Refresh           bool   `json:"refresh,omitempty"` // Recompute even if cached

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults fills zero values with defaults and validates the
// result. Negative caps are rejected rather than defaulted.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MaxCliqueSize < 0 || o.MaxStatesPerRound < 0 {
		return kerrors.New(kerrors.ErrCodeInvalidConfig,
			"limits must not be negative (max clique size %d, max states %d)", o.MaxCliqueSize, o.MaxStatesPerRound)
	}

	def := pseudoknot.DefaultConfig()
	if o.Strategy == "" {
		o.Strategy = def.Strategy
	}
	if o.Selector == "" {
		o.Selector = def.Selector
	}
	if o.MaxCliqueSize == 0 {
		o.MaxCliqueSize = def.MaxCliqueSize
	}
	if o.MaxStatesPerRound == 0 {
		o.MaxStatesPerRound = def.MaxStatesPerRound
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := o.Config().Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Config returns the resolver configuration described by o.
func (o *Options) Config() pseudoknot.Config {
	return pseudoknot.Config{
		Strategy:          o.Strategy,
		Selector:          o.Selector,
		MaxCliqueSize:     o.MaxCliqueSize,
		MaxStatesPerRound: o.MaxStatesPerRound,
	}
}

// KeyOpts returns the cache key options for a conversion with o.
func (o *Options) KeyOpts() cache.ConversionKeyOpts {
	return cache.ConversionKeyOpts{
		Strategy:          o.Strategy,
		Selector:          o.Selector,
		MaxCliqueSize:     o.MaxCliqueSize,
		MaxStatesPerRound: o.MaxStatesPerRound,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run. It is fresh for every call, cache hit or not.
	ID string `json:"id"`

	// InputHash is the content hash of the input in BPSEQ form.
	InputHash string `json:"input_hash"`

	// DotBracket is the best-ranked structure.
	DotBracket dotbracket.DotBracket `json:"dot_bracket"`

	// Alternatives lists every ranked structure, best first.
	Alternatives []string `json:"alternatives"`

	// Unassigned counts pairs left as '.' because the bracket alphabet ran out.
	Unassigned int `json:"unassigned,omitempty"`

	// Stats contains size and timing information.
	Stats Stats `json:"stats"`

	// CacheHit reports whether the result came from the cache.
	CacheHit bool `json:"cache_hit"`
}

// Stats contains conversion statistics.
type Stats struct {
	Residues int           `json:"residues"`
	Pairs    int           `json:"pairs"`
	Levels   int           `json:"levels"`
	Rounds   int           `json:"rounds"`
	States   int           `json:"states"`
	Duration time.Duration `json:"duration"`
}

func newResult(inputHash string, residues, pairs int, conv *pseudoknot.Conversion) *Result {
	alts := make([]string, len(conv.Alternatives))
	for i, a := range conv.Alternatives {
		alts[i] = a.DotBracket.Structure
	}
	return &Result{
		InputHash:    inputHash,
		DotBracket:   conv.Best.DotBracket,
		Alternatives: alts,
		Unassigned:   conv.Best.Unassigned,
		Stats: Stats{
			Residues: residues,
			Pairs:    pairs,
			Levels:   len(conv.Best.Levels),
			Rounds:   conv.Rounds,
			States:   conv.States,
		},
	}
}
