// Package cache provides byte-level caching for conversion results.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entries under a directory, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server and multi-host setups
//   - [NullCache]: disables caching
//
// Keys are produced by a [Keyer] so that every option affecting the result
// is part of the key. [ScopedKeyer] adds a namespace prefix, which keeps the
// server's entries apart from those written by the CLI.
package cache

import (
	"context"
	"time"
)

// TTLConversion is how long a conversion result stays cached. Results are a
// pure function of input and options, so the TTL only bounds disk usage.
const TTLConversion = 30 * 24 * time.Hour

// Cache stores opaque byte payloads by key.
type Cache interface {
	// Get returns the payload for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// ConversionKeyOpts holds every option that changes a conversion result.
type ConversionKeyOpts struct {
	Strategy          string `json:"strategy"`
	Selector          string `json:"selector"`
	MaxCliqueSize     int    `json:"max_clique_size"`
	MaxStatesPerRound int    `json:"max_states_per_round"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ConversionKey returns the key of the result for the input with the
	// given content hash under opts.
	ConversionKey(inputHash string, opts ConversionKeyOpts) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ConversionKey returns "conversion:<sha256 of input hash and options>".
func (DefaultKeyer) ConversionKey(inputHash string, opts ConversionKeyOpts) string {
	return hashKey("conversion", inputHash, opts)
}
