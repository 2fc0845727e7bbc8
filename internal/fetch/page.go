package fetch

import (
	"context"
	"errors"

	"github.com/jonathan/visa-scraper/internal/logging"
)

// Page is the outcome of fetching one source URL.
// Success is false when the page could not be retrieved; ErrorMessage then says why.
type Page struct {
	URL          string
	Markdown     string
	Success      bool
	ErrorMessage string
	StatusCode   int
}

// Fetcher retrieves a page as markdown.
type Fetcher interface {
	Fetch(ctx context.Context, url, userAgent string) (*Page, error)
}

// HTTPFetcher fetches pages over HTTP, optionally re-rendering thin pages in a browser.
type HTTPFetcher struct {
	options  Options
	renderer Renderer
}

// HTTPFetcherConfig holds configuration for HTTPFetcher.
type HTTPFetcherConfig struct {
	Options *Options
	// Renderer is used when converted content is shorter than MinContentLength. Nil disables it.
	Renderer Renderer
}

// NewHTTPFetcher creates a new HTTP fetcher.
func NewHTTPFetcher(config *HTTPFetcherConfig) *HTTPFetcher {
	if config == nil {
		config = &HTTPFetcherConfig{}
	}
	opts := DefaultOptions()
	if config.Options != nil {
		opts = config.Options
	}
	return &HTTPFetcher{
		options:  *opts,
		renderer: config.Renderer,
	}
}

// Fetch retrieves url and converts it to markdown.
// Network and HTTP failures are reported through Page.Success; the returned error is
// reserved for context cancellation.
func (f *HTTPFetcher) Fetch(ctx context.Context, url, userAgent string) (*Page, error) {
	opts := f.options
	if userAgent != "" {
		opts.UserAgent = userAgent
	}

	page := &Page{URL: url}

	result, err := URL(ctx, url, &opts)
	if result != nil {
		page.StatusCode = result.StatusCode
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var fetchErr *Error
		if errors.As(err, &fetchErr) {
			page.ErrorMessage = fetchErr.Error()
		} else {
			page.ErrorMessage = err.Error()
		}
		return page, nil
	}

	md, err := ToMarkdown(result.HTML, url)
	if err != nil {
		page.ErrorMessage = err.Error()
		return page, nil
	}

	if f.renderer != nil && ShouldUseBrowser(md) {
		logging.Debug("content too short, rendering in browser", "url", url, "chars", len(md))
		rendered, rerr := f.renderer.Render(ctx, url, opts.UserAgent)
		if rerr != nil {
			logging.Warn("browser rendering failed, keeping HTTP content", "url", url, "error", rerr)
		} else if renderedMD, merr := ToMarkdown(rendered, url); merr == nil && len(renderedMD) > len(md) {
			md = renderedMD
		}
	}

	page.Markdown = md
	page.Success = true
	return page, nil
}
