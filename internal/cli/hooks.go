package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/leftysay/pkg/observability"
)

// logHooks reports pipeline and cache events to the debug log.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
)

// installLogHooks routes observability events to logger. With verbose off
// the no-op hooks stay in place.
func installLogHooks(logger *log.Logger, verbose bool) {
	if !verbose {
		observability.Reset()
		return
	}
	h := &logHooks{logger: logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

func (h *logHooks) OnRenderStart(_ context.Context, imagePath, format string) {
	h.logger.Debug("chafa start", "image", imagePath, "format", format)
}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("chafa failed", "format", format, "took", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("chafa done", "format", format, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnComposeComplete(_ context.Context, layout string, lines int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("compose failed", "layout", layout, "err", err)
		return
	}
	h.logger.Debug("composed", "layout", layout, "lines", lines, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "size", size)
}

func (h *logHooks) OnCacheEvict(_ context.Context, backend string, size int64) {
	h.logger.Debug("cache evict", "backend", backend, "size", size)
}

func (h *logHooks) OnCacheError(_ context.Context, op string, err error) {
	h.logger.Debug("cache error", "op", op, "err", err)
}
