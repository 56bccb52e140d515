package pseudoknot

import (
	kerrors "github.com/matzehuels/knotwork/pkg/errors"
)

// Strategy names.
const (
	StrategyHeuristic = "heuristic"
	StrategyExact     = "exact"
)

// Defaults applied by [DefaultConfig].
const (
	DefaultStrategy          = StrategyExact
	DefaultSelector          = SelectorEliminationGain
	DefaultMaxCliqueSize     = 20
	DefaultMaxStatesPerRound = 10
)

// Strategies lists the supported strategy names.
var Strategies = []string{StrategyExact, StrategyHeuristic}

// Config selects and tunes the resolver used by a [Converter].
type Config struct {
	Strategy          string `json:"strategy" toml:"strategy"`
	Selector          string `json:"selector" toml:"selector"`
	MaxCliqueSize     int    `json:"max_clique_size" toml:"max_clique_size"`
	MaxStatesPerRound int    `json:"max_states_per_round" toml:"max_states_per_round"`
}

// DefaultConfig returns the exact strategy with the elimination-gain
// selector, 20 endpoints per clique and 10 states per round.
func DefaultConfig() Config {
	return Config{
		Strategy:          DefaultStrategy,
		Selector:          DefaultSelector,
		MaxCliqueSize:     DefaultMaxCliqueSize,
		MaxStatesPerRound: DefaultMaxStatesPerRound,
	}
}

// Validate reports the first invalid field as an INVALID_CONFIG error.
func (c Config) Validate() error {
	if err := kerrors.ValidateOneOf("strategy", c.Strategy, Strategies); err != nil {
		return err
	}
	if err := kerrors.ValidateOneOf("selector", c.Selector, Selectors()); err != nil {
		return err
	}
	if err := kerrors.ValidatePositive("max clique size", c.MaxCliqueSize); err != nil {
		return err
	}
	return kerrors.ValidatePositive("max states per round", c.MaxStatesPerRound)
}

// NewResolver builds the resolver described by c.
func NewResolver(c Config) (Resolver, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	sel, err := SelectorByName(c.Selector)
	if err != nil {
		return nil, err
	}
	if c.Strategy == StrategyHeuristic {
		return NewHeuristic(sel), nil
	}
	exact := NewExact(sel, c.MaxCliqueSize)
	exact.MaxSolutions = c.MaxStatesPerRound
	return exact, nil
}

// FromConfig builds a converter from c.
func FromConfig(c Config) (*Converter, error) {
	r, err := NewResolver(c)
	if err != nil {
		return nil, err
	}
	return NewConverter(r, c.MaxStatesPerRound)
}
