package translate

import (
	"context"
	"log/slog"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/couchcryptid/livestock-risk-service/internal/observability"
)

// Backend performs uncached translations.
type Backend interface {
	Translate(ctx context.Context, text, target, source string) (string, error)
}

// Cached implements domain.Translator over a Backend. It never fails:
// anything that goes wrong yields the input text.
type Cached struct {
	inner   Backend
	cache   *expirable.LRU[string, string]
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewCached wraps inner with the given cache. The cache is owned by the
// caller so that its size and TTL stay in configuration.
func NewCached(inner Backend, cache *expirable.LRU[string, string], logger *slog.Logger, metrics *observability.Metrics) *Cached {
	return &Cached{inner: inner, cache: cache, logger: logger, metrics: metrics}
}

// Translate returns text in target, serving repeats from the cache. Failures
// return the original text and are not cached.
func (c *Cached) Translate(ctx context.Context, text, target, source string) string {
	if text == "" || target == source || !Supported(target) {
		return text
	}

	key := source + ":" + target + ":" + text
	if out, ok := c.cache.Get(key); ok {
		c.metrics.TranslateCache.WithLabelValues("hit").Inc()
		return out
	}
	c.metrics.TranslateCache.WithLabelValues("miss").Inc()

	out, err := c.inner.Translate(ctx, text, target, source)
	if err != nil {
		c.logger.Warn("translation failed, returning original text",
			"error", err, "target", target)
		return text
	}
	c.cache.Add(key, out)
	return out
}

// Len returns the number of cached translations.
func (c *Cached) Len() int { return c.cache.Len() }

// Identity is the translator used when no API key is configured.
type Identity struct{}

// Translate returns text unchanged.
func (Identity) Translate(_ context.Context, text, _, _ string) string { return text }
