package extraction

import (
	"context"

	"github.com/jonathan/visa-scraper/internal/logging"
	"github.com/jonathan/visa-scraper/internal/types"
)

// Request is the input for a single page extraction.
type Request struct {
	CountryName string
	SourceURL   string
	Content     string
}

// Extractor turns page content into a RawExtraction.
type Extractor interface {
	Extract(ctx context.Context, req Request) (*types.RawExtraction, error)
}

// fallbackExtractor tries primary and degrades to fallback on any primary failure.
type fallbackExtractor struct {
	primary  Extractor
	fallback Extractor
}

// WithFallback returns an Extractor that uses fallback whenever primary fails.
// Context cancellation is returned as is.
func WithFallback(primary, fallback Extractor) Extractor {
	if primary == nil {
		return fallback
	}
	return &fallbackExtractor{primary: primary, fallback: fallback}
}

func (f *fallbackExtractor) Extract(ctx context.Context, req Request) (*types.RawExtraction, error) {
	raw, err := f.primary.Extract(ctx, req)
	if err == nil {
		return raw, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	logging.Warn("structured extraction failed, attempting manual extraction",
		"url", req.SourceURL,
		"error", err,
	)
	return f.fallback.Extract(ctx, req)
}
