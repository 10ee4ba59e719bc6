// Package translate translates user-facing text with the Google Cloud
// Translation v2 API.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/couchcryptid/livestock-risk-service/internal/adapter/redact"
	"github.com/couchcryptid/livestock-risk-service/internal/observability"
)

const defaultBaseURL = "https://translation.googleapis.com/language/translate/v2"

// Languages lists the supported language codes.
var Languages = []string{"en", "hi", "ta", "te", "mr", "bn", "pa", "gu", "kn", "ml"}

// Supported reports whether lang is a supported language code.
func Supported(lang string) bool {
	return slices.Contains(Languages, lang)
}

var errNoTranslation = errors.New("response has no translations")

// Client calls the translation API directly. Wrap it in Cached for use by
// request handlers.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a translation client.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: defaultBaseURL,
		logger:  logger,
		metrics: metrics,
	}
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate returns text translated from source into target. An empty
// source lets the API detect the language.
func (c *Client) Translate(ctx context.Context, text, target, source string) (string, error) {
	out, err := c.translate(ctx, text, target, source)
	if err != nil {
		c.metrics.TranslateRequests.WithLabelValues("error").Inc()
		return "", err
	}
	c.metrics.TranslateRequests.WithLabelValues("success").Inc()
	return out, nil
}

func (c *Client) translate(ctx context.Context, text, target, source string) (string, error) {
	form := url.Values{
		"q":      {text},
		"target": {target},
		"format": {"text"},
	}
	if source != "" {
		form.Set("source", source)
	}

	// The text travels in the form body; only the key is in the query.
	u := c.baseURL + "?" + url.Values{"key": {c.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate: %w", redact.URLError(err))
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort cleanup

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("translate API returned %d: %s", resp.StatusCode, string(body))
	}

	var tr translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if len(tr.Data.Translations) == 0 {
		return "", errNoTranslation
	}
	return html.UnescapeString(tr.Data.Translations[0].TranslatedText), nil
}
