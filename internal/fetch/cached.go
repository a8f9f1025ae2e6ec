package fetch

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/jonathan/resume-tailor/internal/cache"
	"github.com/jonathan/resume-tailor/internal/logger"
)

// DefaultCacheTTL is how long a fetched page stays cached.
const DefaultCacheTTL = time.Hour

const cachePrefix = "jobpage"

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	Options  *Options
	Cache    cache.Cache // nil disables caching
	CacheTTL time.Duration
	// RequestsPerSecond limits outgoing requests; 0 means unlimited.
	RequestsPerSecond float64
	// UseBrowser re-renders pages whose extracted text is shorter than MinContentLength.
	UseBrowser bool
	Browser    BrowserFunc
}

// DefaultCachedFetcherConfig returns sensible defaults.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		Options:           DefaultOptions(),
		CacheTTL:          DefaultCacheTTL,
		RequestsPerSecond: 1,
		Browser:           Browser,
	}
}

// CachedFetcher fetches pages politely: requests are rate limited, successful
// pages are cached by URL, and thin pages can be re-rendered in a browser.
// It is safe for concurrent use.
type CachedFetcher struct {
	options    *Options
	cache      cache.Cache
	cacheTTL   time.Duration
	limiter    *rate.Limiter
	useBrowser bool
	browser    BrowserFunc
}

// NewCachedFetcher creates a new cached fetcher.
func NewCachedFetcher(config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	options := config.Options
	if options == nil {
		options = DefaultOptions()
	}
	ttl := config.CacheTTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	limit := rate.Inf
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
	}
	browser := config.Browser
	if browser == nil {
		browser = Browser
	}
	return &CachedFetcher{
		options:    options,
		cache:      config.Cache,
		cacheTTL:   ttl,
		limiter:    rate.NewLimiter(limit, 1),
		useBrowser: config.UseBrowser,
		browser:    browser,
	}
}

// CacheKey returns the cache key used for a URL.
func CacheKey(urlStr string) string {
	return cache.Key(cachePrefix, urlStr)
}

// Fetch implements Fetcher. Cache failures are logged and otherwise ignored.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	log := logger.Ctx(ctx)
	key := CacheKey(urlStr)

	if f.cache != nil {
		html, ok, err := f.cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("url", urlStr).Msg("page cache read failed")
		} else if ok {
			log.Debug().Str("url", urlStr).Msg("page cache hit")
			return &Result{URL: urlStr, HTML: html, StatusCode: 200, ContentType: "text/html", FromCache: true}, nil
		}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &Error{URL: urlStr, Message: "rate limiter wait cancelled", Cause: err}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return result, err
	}

	if f.useBrowser && IsHTML(result.ContentType, result.HTML) {
		f.maybeRender(ctx, result)
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, key, result.HTML, f.cacheTTL); err != nil {
			log.Warn().Err(err).Str("url", urlStr).Msg("page cache write failed")
		}
	}
	return result, nil
}

// maybeRender replaces result.HTML with a browser rendering when the static page is too thin.
// A failed rendering keeps the HTTP content.
func (f *CachedFetcher) maybeRender(ctx context.Context, result *Result) {
	log := logger.Ctx(ctx)
	platform := DetectPlatform(result.URL)
	text, err := ExtractMainText(result.HTML, ContentSelectors(platform), NoiseSelectors(platform)...)
	if err == nil && !ShouldUseBrowser(text) {
		return
	}

	log.Info().
		Str("url", result.URL).
		Int("chars", len(text)).
		Int("min_chars", MinContentLength).
		Msg("content too short, rendering with browser")

	html, err := f.browser(ctx, result.URL, f.options.Timeout)
	if err != nil {
		log.Warn().Err(err).Str("url", result.URL).Msg("browser rendering failed, using HTTP content")
		return
	}
	result.HTML = html
	result.Rendered = true
}
