package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/knotwork/pkg/observability"
)

// logHooks reports pipeline, cache and HTTP events at debug level.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks routes observability events to logger.
func registerLogHooks(logger *log.Logger) {
	h := logHooks{logger: logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnConvertStart(_ context.Context, strategy string, residues, pairs int) {
	h.logger.Debug("convert start", "strategy", strategy, "residues", residues, "pairs", pairs)
}

func (h logHooks) OnConvertComplete(_ context.Context, strategy string, levels, rounds int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("convert failed", "strategy", strategy, "duration", dur, "error", err)
		return
	}
	h.logger.Debug("convert complete", "strategy", strategy, "levels", levels, "rounds", rounds, "duration", dur)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("http request", "method", method, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, path string, status int, dur time.Duration) {
	h.logger.Debug("http response", "method", method, "path", path, "status", status, "duration", dur)
}

func (h logHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Debug("http error", "method", method, "path", path, "error", err)
}
