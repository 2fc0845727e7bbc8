// Package pipeline provides the high-level orchestration of a scrape run: fetch each
// country's pages, extract visa fields, merge them into one record per country.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/jonathan/visa-scraper/internal/countries"
	"github.com/jonathan/visa-scraper/internal/extraction"
	"github.com/jonathan/visa-scraper/internal/fetch"
	"github.com/jonathan/visa-scraper/internal/logging"
	"github.com/jonathan/visa-scraper/internal/merge"
	"github.com/jonathan/visa-scraper/internal/pipeline/steps"
	"github.com/jonathan/visa-scraper/internal/types"
)

// DefaultDelay is the pause between consecutive countries.
const DefaultDelay = 2 * time.Second

var (
	// ErrUnknownCountry is returned for a key missing from the registry.
	ErrUnknownCountry = errors.New("unknown country")
	// ErrNoData is returned when no source page of a country yielded an extraction.
	ErrNoData = errors.New("no data extracted")
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Country  string `json:"country,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Driver runs the scrape pipeline over a country registry.
type Driver struct {
	Registry  *countries.Registry
	Fetcher   fetch.Fetcher
	Extractor extraction.Extractor
	UserAgent string
	// Delay separates consecutive countries in RunAll. Zero means no pause.
	Delay time.Duration
	// Clock stamps merged records; defaults to time.Now.
	Clock      func() time.Time
	OnProgress ProgressCallback

	mu        sync.Mutex
	completed map[string]bool
}

// emitProgress records step as completed and calls the progress callback if configured
func (d *Driver) emitProgress(step, country, message string, content any) {
	d.mu.Lock()
	if d.completed == nil {
		d.completed = make(map[string]bool)
	}
	d.completed[step] = true
	d.mu.Unlock()

	if d.OnProgress != nil {
		d.OnProgress(ProgressEvent{
			Step:     step,
			Category: steps.CategoryOf(step),
			Message:  message,
			Country:  country,
			Content:  content,
		})
	}
}

// CompletedSteps returns a copy of the steps recorded since the last RunAll started.
func (d *Driver) CompletedSteps() map[string]bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]bool, len(d.completed))
	maps.Copy(out, d.completed)
	return out
}

func (d *Driver) resetSteps() {
	d.mu.Lock()
	d.completed = nil
	d.mu.Unlock()
}

func (d *Driver) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

// RunCountry fetches and extracts every source page of one country and merges the results.
// Pages that fail to fetch or extract are logged and skipped.
func (d *Driver) RunCountry(ctx context.Context, key string) (*types.VisaRecord, error) {
	profile, ok := d.Registry.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCountry, key)
	}

	logging.Info("scraping country", "country", key, "sources", len(profile.SourceURLs))

	var extractions []*types.RawExtraction
	for _, url := range profile.SourceURLs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := d.processURL(ctx, profile, url)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logging.Warn("skipping source", "country", key, "url", url, "error", err)
			continue
		}
		extractions = append(extractions, raw)
	}

	record, ok := merge.Merge(profile, extractions, d.now())
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoData, key)
	}
	d.emitProgress(steps.MergeCountry, key,
		fmt.Sprintf("Merged %d extractions for %s", len(extractions), profile.DisplayName), record)
	return record, nil
}

// processURL runs fetch and extraction for one page. A panic is converted to an error.
func (d *Driver) processURL(ctx context.Context, profile types.CountryProfile, url string) (raw *types.RawExtraction, err error) {
	defer func() {
		if r := recover(); r != nil {
			raw, err = nil, fmt.Errorf("panic processing %s: %v", url, r)
		}
	}()

	page, err := d.Fetcher.Fetch(ctx, url, d.UserAgent)
	if err != nil {
		return nil, err
	}
	if !page.Success {
		return nil, fmt.Errorf("fetch failed: %s", page.ErrorMessage)
	}
	d.emitProgress(steps.FetchPage, profile.Key,
		fmt.Sprintf("Fetched %s (%d chars)", url, len(page.Markdown)), nil)

	raw, err = d.Extractor.Extract(ctx, extraction.Request{
		CountryName: profile.DisplayName,
		SourceURL:   url,
		Content:     page.Markdown,
	})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("extractor returned no data for %s", url)
	}
	d.emitProgress(steps.ExtractPage, profile.Key,
		fmt.Sprintf("Extracted %s using %s method", url, raw.ExtractionMethod), raw)
	return raw, nil
}

// RunAll processes every registry country in order. A failing country is logged and
// left out of the results; only context cancellation aborts the run.
func (d *Driver) RunAll(ctx context.Context) (*types.Results, error) {
	results := types.NewResults()
	keys := d.Registry.Keys()
	d.resetSteps()

	d.emitProgress(steps.RunStarted, "", fmt.Sprintf("Starting visa data scraping for %d countries", len(keys)), nil)

	for i, key := range keys {
		record, err := d.runCountrySafe(ctx, key)
		switch {
		case err == nil:
			results.Add(key, record)
			logging.Info("completed country", "country", key)
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			logging.Error("failed to get data for country", "country", key, "error", err)
			d.emitProgress(steps.CountryFailed, key, err.Error(), nil)
		}

		if i < len(keys)-1 {
			if err := sleep(ctx, d.Delay); err != nil {
				return nil, err
			}
		}
	}

	d.emitProgress(steps.RunCompleted, "",
		fmt.Sprintf("Successfully scraped %d out of %d countries", results.Len(), len(keys)), nil)
	return results, nil
}

// runCountrySafe is RunCountry with panics converted to errors.
func (d *Driver) runCountrySafe(ctx context.Context, key string) (record *types.VisaRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			record, err = nil, fmt.Errorf("panic processing %s: %v", key, r)
		}
	}()
	return d.RunCountry(ctx, key)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
