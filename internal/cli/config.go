package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	kerrors "github.com/matzehuels/knotwork/pkg/errors"
	"github.com/matzehuels/knotwork/pkg/pipeline"
	"github.com/matzehuels/knotwork/pkg/pseudoknot"
)

const defaultServerAddr = ":8080"

// Config is the contents of config.toml.
//
//	[resolver]
//	strategy = "exact"
//	selector = "elimination-gain"
//	max_clique_size = 20
//	max_states_per_round = 10
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
type Config struct {
	Resolver pseudoknot.Config `toml:"resolver"`
	Cache    CacheConfig       `toml:"cache"`
	Server   ServerConfig      `toml:"server"`
}

// CacheConfig selects the conversion cache backend.
type CacheConfig struct {
	Dir      string `toml:"dir"`       // file cache directory; defaults to ~/.cache/knotwork
	RedisURL string `toml:"redis_url"` // use Redis instead of the file cache
	Disabled bool   `toml:"disabled"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

func defaultConfig() *Config {
	return &Config{
		Resolver: pseudoknot.DefaultConfig(),
		Server:   ServerConfig{Addr: defaultServerAddr},
	}
}

// loadConfig reads path on top of the defaults. An empty path means the
// default location, which may be absent; an explicit path must exist.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return nil, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return cfg, nil
		}
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Resolver.Validate(); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// =============================================================================
// Resolver Flags
// =============================================================================

// resolverFlags are the flags shared by commands that run a conversion.
type resolverFlags struct {
	config    string
	strategy  string
	selector  string
	maxClique int
	maxStates int
	noCache   bool
	refresh   bool
}

func (f *resolverFlags) register(cmd *cobra.Command) {
	def := pseudoknot.DefaultConfig()
	cmd.Flags().StringVar(&f.config, "config", "", "config file (default: ~/.config/knotwork/config.toml)")
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", def.Strategy, "resolver strategy: exact, heuristic")
	cmd.Flags().StringVar(&f.selector, "selector", def.Selector, "region selector: elimination-gain, elimination-conflicts, fewest-pairs")
	cmd.Flags().IntVar(&f.maxClique, "max-clique", def.MaxCliqueSize, "largest clique (in endpoints) solved exactly")
	cmd.Flags().IntVar(&f.maxStates, "max-states", def.MaxStatesPerRound, "states kept per round")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if cached")
}

// load reads the config file and applies explicitly set flags on top.
func (f *resolverFlags) load(cmd *cobra.Command) (*Config, error) {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("strategy") {
		cfg.Resolver.Strategy = f.strategy
	}
	if flags.Changed("selector") {
		cfg.Resolver.Selector = f.selector
	}
	if flags.Changed("max-clique") {
		cfg.Resolver.MaxCliqueSize = f.maxClique
	}
	if flags.Changed("max-states") {
		cfg.Resolver.MaxStatesPerRound = f.maxStates
	}
	if err := cfg.Resolver.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// options converts cfg into pipeline options.
func (f *resolverFlags) options(cfg *Config) pipeline.Options {
	return pipeline.Options{
		Strategy:          cfg.Resolver.Strategy,
		Selector:          cfg.Resolver.Selector,
		MaxCliqueSize:     cfg.Resolver.MaxCliqueSize,
		MaxStatesPerRound: cfg.Resolver.MaxStatesPerRound,
		Refresh:           f.refresh,
	}
}
