// Package scripture talks to the external verse provider (bolls.life) and
// turns its responses into domain verses.
package scripture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/scripturesanctuary/sanctuary-server/internal/catalog"
	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	"github.com/scripturesanctuary/sanctuary-server/internal/metrics"
	"github.com/scripturesanctuary/sanctuary-server/internal/ratelimit"
)

const (
	DefaultBaseURL  = "https://bolls.life"
	DefaultBooksKey = "YLT"

	defaultTimeout    = 10 * time.Second
	defaultRetryDelay = 250 * time.Millisecond
	defaultRPS        = 5.0
	defaultBurst      = 10

	// maxRetries bounds retries of a single call.
	maxRetries = 1

	// maxBodySize caps provider responses; the largest chapter (Psalm 119)
	// is well under this.
	maxBodySize = 4 << 20

	pathBooks        = "/static/bolls/app/views/translations_books.json"
	pathTranslations = "/static/bolls/app/views/languages.json"
)

// Config configures a Client. Zero values fall back to defaults, except
// Retries where zero disables the retry.
type Config struct {
	BaseURL    string
	BooksKey   string
	Timeout    time.Duration
	Retries    int // 0 or 1; larger values are clamped to 1
	RetryDelay time.Duration
	RPS        float64
	Burst      int
}

// Client is a rate-limited, retrying scripture provider client.
// It is safe for concurrent use.
type Client struct {
	http       *http.Client
	baseURL    string
	host       string
	booksKey   string
	retries    int
	retryDelay time.Duration
	limiter    *ratelimit.KeyedRateLimiter
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// New creates a provider client. m may be nil.
func New(cfg Config, m *metrics.Metrics, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.BooksKey == "" {
		cfg.BooksKey = DefaultBooksKey
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.RPS <= 0 {
		cfg.RPS = defaultRPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	retries := min(max(cfg.Retries, 0), maxRetries)

	base := strings.TrimRight(cfg.BaseURL, "/")
	host := base
	if u, err := url.Parse(base); err == nil && u.Host != "" {
		host = u.Host
	}

	return &Client{
		http:       &http.Client{Timeout: cfg.Timeout},
		baseURL:    base,
		host:       host,
		booksKey:   cfg.BooksKey,
		retries:    retries,
		retryDelay: cfg.RetryDelay,
		limiter:    ratelimit.New(cfg.RPS, cfg.Burst),
		metrics:    m,
		logger:     logger,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

type rawVerse struct {
	Verse int    `json:"verse"`
	Text  string `json:"text"`
}

// GetChapter fetches a whole chapter. Each verse carries the provider text
// and its cleaned form.
func (c *Client) GetChapter(ctx context.Context, translation string, book, chapter int) ([]domain.Verse, error) {
	path := fmt.Sprintf("/get-chapter/%s/%d/%d/", url.PathEscape(translation), book, chapter)

	body, err := c.doRequest(ctx, "chapter", path)
	if err != nil {
		return nil, err
	}

	var raw []rawVerse
	if err := json.Unmarshal(body, &raw); err != nil {
		c.metrics.ObserveProvider("chapter_decode", "error", 0)
		return nil, wrapError("chapter", path, http.StatusOK, fmt.Errorf("%w: %v", ErrProviderError, err))
	}

	verses := make([]domain.Verse, len(raw))
	for i, v := range raw {
		n := v.Verse
		if n == 0 {
			n = i + 1
		}
		verses[i] = domain.Verse{Number: n, RawText: v.Text, Text: Clean(v.Text)}
	}
	return verses, nil
}

// Resolve fetches the chapter named by ref and selects its verses with
// SelectVerses. Verses come back in ascending order.
func (c *Client) Resolve(ctx context.Context, ref domain.Reference) ([]domain.Verse, error) {
	chapter, err := c.GetChapter(ctx, ref.Translation, ref.Book, ref.Chapter)
	if err != nil {
		return nil, err
	}
	return SelectVerses(chapter, ref)
}

// FetchBooks returns the provider's book list for the configured key.
func (c *Client) FetchBooks(ctx context.Context) ([]catalog.Book, error) {
	body, err := c.doRequest(ctx, "books", pathBooks)
	if err != nil {
		return nil, err
	}

	var byTranslation map[string][]catalog.Book
	if err := json.Unmarshal(body, &byTranslation); err != nil {
		return nil, wrapError("books", pathBooks, http.StatusOK, fmt.Errorf("%w: %v", ErrProviderError, err))
	}
	books, ok := byTranslation[c.booksKey]
	if !ok {
		return nil, wrapError("books", pathBooks, http.StatusOK, fmt.Errorf("%w: no books for %q", ErrProviderError, c.booksKey))
	}
	return books, nil
}

// FetchTranslations returns every translation the provider lists, across
// all languages.
func (c *Client) FetchTranslations(ctx context.Context) ([]catalog.Translation, error) {
	body, err := c.doRequest(ctx, "translations", pathTranslations)
	if err != nil {
		return nil, err
	}

	var languages []struct {
		Language     string                `json:"language"`
		Translations []catalog.Translation `json:"translations"`
	}
	if err := json.Unmarshal(body, &languages); err != nil {
		return nil, wrapError("translations", pathTranslations, http.StatusOK, fmt.Errorf("%w: %v", ErrProviderError, err))
	}

	var out []catalog.Translation
	for _, l := range languages {
		out = append(out, l.Translations...)
	}
	return out, nil
}

// doRequest performs a GET with rate limiting and at most c.retries retries
// on transport failures and 502/503/504.
func (c *Client) doRequest(ctx context.Context, op, path string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		start := time.Now()
		body, status, err := c.attempt(ctx, path)
		if err == nil {
			c.metrics.ObserveProvider(op, "ok", time.Since(start))
			return body, nil
		}

		if attempt >= c.retries || !retryable(ctx, status, err) {
			c.metrics.ObserveProvider(op, resultLabel(err), time.Since(start))
			c.logger.Warn("scripture provider request failed",
				"op", op,
				"path", path,
				"status", status,
				"attempts", attempt+1,
				"error", err,
			)
			return nil, wrapError(op, path, status, err)
		}

		c.metrics.ObserveRetry(op)
		c.logger.Debug("retrying scripture provider request", "op", op, "path", path, "status", status, "error", err)

		select {
		case <-ctx.Done():
			return nil, wrapError(op, path, status, fmt.Errorf("%w: %v", ErrProviderUnavailable, ctx.Err()))
		case <-time.After(c.retryDelay):
		}
	}
}

// attempt performs a single request. The returned status is 0 when no
// response was received.
func (c *Client) attempt(ctx context.Context, path string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx, c.host); err != nil {
		return nil, 0, fmt.Errorf("%w: rate limit wait: %v", ErrProviderUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: create request: %v", ErrProviderError, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ScriptureSanctuary/1.0")

	c.logger.Debug("scripture request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, resp.StatusCode, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response: %v", ErrProviderUnavailable, err)
	}
	return body, resp.StatusCode, nil
}

func retryable(ctx context.Context, status int, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	switch status {
	case 0:
		return errors.Is(err, ErrProviderUnavailable)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func resultLabel(err error) string {
	if errors.Is(err, ErrProviderError) {
		return "error"
	}
	return "unavailable"
}
