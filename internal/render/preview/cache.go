package preview

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/smallbiznis/paperpress/internal/cache"
	"github.com/smallbiznis/paperpress/internal/observability/metrics"
	"github.com/smallbiznis/paperpress/internal/render"
)

// DefaultCacheTTL bounds how long a memoized preview stays warm. The editor
// re-renders on every field change, so stale entries age out fast anyway.
const DefaultCacheTTL = 2 * time.Minute

// CachingRenderer memoizes rendered previews by a content hash of the layout
// tree and options. Correctness never depends on a hit: the tree is
// deterministic, so equal keys imply byte-identical output.
type CachingRenderer struct {
	inner Renderer
	cache cache.Cache[string, string]
	ttl   time.Duration
}

func NewCachingRenderer(inner Renderer, store cache.Cache[string, string]) *CachingRenderer {
	if store == nil {
		store = cache.NoopCache[string, string]{}
	}
	return &CachingRenderer{inner: inner, cache: store, ttl: DefaultCacheTTL}
}

func (r *CachingRenderer) RenderHTML(tree *render.LayoutTree, opts Options) (string, error) {
	opts = opts.withDefaults()
	key, err := cacheKey(tree, opts)
	if err != nil {
		return r.inner.RenderHTML(tree, opts)
	}
	if html, ok := r.cache.Get(key); ok {
		metrics.Render().IncCacheLookup(true)
		return html, nil
	}
	metrics.Render().IncCacheLookup(false)
	html, err := r.inner.RenderHTML(tree, opts)
	if err != nil {
		return "", err
	}
	r.cache.Set(key, html, r.ttl)
	return html, nil
}

func cacheKey(tree *render.LayoutTree, opts Options) (string, error) {
	raw, err := json.Marshal(tree)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write(raw)
	fmt.Fprintf(h, "|%s|%d", opts.ViewMode, opts.ZoomPercent)
	return hex.EncodeToString(h.Sum(nil)), nil
}
