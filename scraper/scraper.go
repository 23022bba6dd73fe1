// Package scraper fetches a provider page and turns it into a scrape
// result envelope. One invocation is one validate → fetch → extract pass:
// fully sequential, stateless, no retries, no shared mutable state, so
// concurrent invocations need no coordination.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/use-agent/smsgrab/config"
	"github.com/use-agent/smsgrab/extractor"
	"github.com/use-agent/smsgrab/models"
)

// Scraper runs the full pipeline. Safe for concurrent use.
type Scraper struct {
	validator *Validator
	fetcher   *Fetcher
	extractor *extractor.Extractor
}

// New creates a Scraper wired with the default extraction patterns.
func New(providerCfg config.ProviderConfig, fetcherCfg config.FetcherConfig) *Scraper {
	return &Scraper{
		validator: NewValidator(providerCfg),
		fetcher:   NewFetcher(fetcherCfg),
		extractor: extractor.New(),
	}
}

// Validator exposes the URL validator, e.g. for the persistence layer to
// pull the phone parameter out of an accepted URL.
func (s *Scraper) Validator() *Validator {
	return s.validator
}

// Scrape never returns an error and never panics: every failure mode is
// folded into the response envelope, so handlers can pass the result
// straight through without their own guard.
//
// Failure taxonomy:
//   - validation failure: error set, no HTTP status in debug info
//   - fetch failure: error set, ServiceAccessible false, status/elapsed
//     where available
//   - parse failure: error set, ServiceAccessible stays true
//   - zero messages: success, empty list
func (s *Scraper) Scrape(ctx context.Context, targetURL string) *models.ScrapeResponse {
	resp := &models.ScrapeResponse{Messages: []models.Message{}}
	defer func() {
		resp.LastScrapedAt = time.Now().UTC().Format(models.ISOMillis)
	}()

	if !s.validator.IsValidURL(targetURL) {
		resp.Error = models.NewScrapeError(models.ErrCodeInvalidURL,
			fmt.Sprintf("url does not match the expected provider shape: %s", targetURL), nil).Error()
		slog.Warn("scrape rejected by validator", "url", targetURL)
		return resp
	}

	outcome, ferr := s.fetcher.Fetch(ctx, targetURL)
	if ferr != nil {
		code := models.ErrCodeFetchFailed
		if errors.Is(ferr.Err, context.DeadlineExceeded) {
			code = models.ErrCodeTimeout
		}
		resp.Error = models.NewScrapeError(code, "fetch failed", ferr).Error()
		resp.DebugInfo = models.DebugInfo{
			HTTPStatus:        ferr.Status,
			ResponseTimeMs:    ferr.ElapsedMs,
			ServiceAccessible: false,
			FetchMethod:       "http",
		}
		slog.Warn("scrape fetch failed",
			"url", targetURL,
			"status", ferr.Status,
			"elapsed_ms", ferr.ElapsedMs,
			"error", ferr.Err,
		)
		return resp
	}

	resp.DebugInfo = models.DebugInfo{
		HTTPStatus:        outcome.Status,
		ResponseTimeMs:    outcome.ElapsedMs,
		ContentLength:     len(outcome.Body),
		ServiceAccessible: true,
		FetchMethod:       "http",
	}

	msgs, err := s.extractor.Extract(outcome.Body)
	if err != nil {
		resp.Error = err.Error()
		slog.Warn("scrape extraction failed", "url", targetURL, "error", err)
		return resp
	}

	resp.Success = true
	resp.Messages = msgs
	slog.Info("scrape completed",
		"url", targetURL,
		"messages", len(msgs),
		"elapsed_ms", outcome.ElapsedMs,
	)
	return resp
}
