package ingestion

import (
	"context"

	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/logger"
)

// FromURL fetches a job posting and returns its cleaned text. The main content is
// located with platform specific selectors and converted to Markdown so that
// headings and bullet lists survive; plain-text responses are used as-is.
// A nil fetcher fetches directly with default options.
func FromURL(ctx context.Context, urlStr string, fetcher fetch.Fetcher) (string, *Metadata, error) {
	if fetcher == nil {
		fetcher = fetch.NewCachedFetcher(&fetch.CachedFetcherConfig{})
	}
	log := logger.Ctx(ctx)

	result, err := fetcher.Fetch(ctx, urlStr)
	if err != nil {
		return "", nil, &Error{Source: urlStr, Message: "HTTP request failed", Cause: err}
	}
	log.Debug().
		Str("url", urlStr).
		Int("bytes", len(result.HTML)).
		Bool("from_cache", result.FromCache).
		Bool("rendered", result.Rendered).
		Msg("fetched job posting")

	content := result.HTML
	if fetch.IsHTML(result.ContentType, result.HTML) {
		content, err = htmlToText(result.HTML, urlStr)
		if err != nil {
			return "", nil, &Error{Source: urlStr, Message: "content extraction failed", Cause: err}
		}
	}

	cleaned := CleanText(content)
	if cleaned == "" {
		return "", nil, &Error{Source: urlStr, Message: "no text content found"}
	}

	metadata := NewMetadata(cleaned, urlStr, now())
	metadata.URL = urlStr
	metadata.Platform = string(fetch.DetectPlatform(urlStr))
	metadata.FromCache = result.FromCache
	metadata.Rendered = result.Rendered

	log.Info().
		Str("url", urlStr).
		Str("platform", metadata.Platform).
		Int("chars", len(cleaned)).
		Msg("ingested job posting")
	return cleaned, metadata, nil
}

// htmlToText extracts the posting body as Markdown, falling back to plain text
// when the converter fails.
func htmlToText(html, urlStr string) (string, error) {
	platform := fetch.DetectPlatform(urlStr)
	contentSelectors := fetch.ContentSelectors(platform)
	noiseSelectors := fetch.NoiseSelectors(platform)

	md, err := fetch.ExtractMainMarkdown(html, contentSelectors, noiseSelectors...)
	if err == nil {
		return md, nil
	}
	logger.Debug().Err(err).Msg("markdown conversion failed, extracting plain text")
	return fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
}
