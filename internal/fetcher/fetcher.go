// Package fetcher retrieves watched pages and reduces them to comparable text.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"webwatch/internal/common"
	"webwatch/internal/config"
)

// Fetcher handles fetching page content from URLs.
type Fetcher struct {
	httpClient *http.Client
	logger     zerolog.Logger
	cfg        *config.MonitorConfig
}

// NewFetcher creates a new Fetcher.
func NewFetcher(client *http.Client, logger zerolog.Logger, cfg *config.MonitorConfig) *Fetcher {
	return &Fetcher{
		httpClient: client,
		logger:     logger.With().Str("component", "Fetcher").Logger(),
		cfg:        cfg,
	}
}

// Fetch issues a single GET for the URL with browser-emulating headers and
// returns the extracted visible text of the page's content region. Transport
// failures and non-success HTTP statuses are returned as typed errors; the
// caller decides how to recover.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.logger.Error().Err(err).Str("url", url).Msg("Failed to create HTTP request")
		return "", common.WrapError(err, fmt.Sprintf("creating request for %s", url))
	}

	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept-Language", f.cfg.AcceptLanguage)
	req.Header.Set("Referer", f.cfg.Referer)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", common.NewNetworkError(url, "HTTP request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		// Read a slice of the body for error context, then discard the rest.
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", common.NewHTTPErrorWithURL(resp.StatusCode, string(bodyBytes), url)
	}

	content, err := ExtractText(resp.Body)
	if err != nil {
		return "", common.WrapError(err, fmt.Sprintf("parsing response body for %s", url))
	}

	f.logger.Debug().Str("url", url).Int("content_length", len(content)).Msg("Page content fetched")
	return content, nil
}
