// Package gemini provides an HTTP client for the Gemini generateContent
// API, used to draft marketing copy for catalog entities.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/semaphore"

	"github.com/modaflow/backend/internal/config"
	"github.com/modaflow/backend/internal/port/textgen"
)

// Client talks to the Gemini generateContent endpoint. A weighted
// semaphore caps in-flight upstream calls so a burst of copy requests
// cannot exhaust the API quota in one go.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	sem        *semaphore.Weighted
}

// NewClient creates a new Gemini client from config.
func NewClient(cfg config.Gemini) *Client {
	limit := cfg.MaxConcurrent
	if limit < 1 {
		limit = 1
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		sem: semaphore.NewWeighted(int64(limit)),
	}
}

// ProductDescription generates premium product copy, degrading to a
// fixed fallback string on any upstream failure.
func (c *Client) ProductDescription(ctx context.Context, productName, category, brandName string) string {
	prompt := fmt.Sprintf(
		"Write a premium, high-converting fashion product description for a %s in the %s category for the brand %s. "+
			"Focus on luxury, quality, and lifestyle. Keep it under 100 words. Make it compelling and professional.",
		productName, category, brandName)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		slog.Error("gemini product description failed", "error", err)
		return textgen.FallbackProductDescription
	}
	if text == "" {
		return textgen.FallbackEmptyDescription
	}
	return text
}

// SEOKeywords generates up to five keywords for a product, degrading to
// an empty list on failure.
func (c *Client) SEOKeywords(ctx context.Context, productName string) []string {
	prompt := fmt.Sprintf(
		"Provide 5 SEO keywords for a fashion product called %q. "+
			"Return only the keywords separated by commas, no additional text.", productName)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		slog.Error("gemini seo keywords failed", "error", err)
		return []string{}
	}

	var keywords []string
	for _, kw := range strings.Split(text, ",") {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		keywords = append(keywords, kw)
		if len(keywords) == 5 {
			break
		}
	}
	if keywords == nil {
		return []string{}
	}
	return keywords
}

// CategoryDescription generates category copy, degrading to a fixed
// fallback string on any upstream failure.
func (c *Client) CategoryDescription(ctx context.Context, categoryName, brandName string) string {
	prompt := fmt.Sprintf(
		"Write a compelling category description for %q in a fashion e-commerce store for the brand %s. "+
			"Focus on the style, quality, and appeal of this category. Keep it under 80 words.",
		categoryName, brandName)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		slog.Error("gemini category description failed", "error", err)
		return textgen.FallbackCategoryDescription
	}
	if text == "" {
		return textgen.FallbackEmptyDescription
	}
	return text
}

// --- wire types ---

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate performs a single generateContent call and returns the first
// candidate's text.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("acquire slot: %w", err)
	}
	defer c.sem.Release(1)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned %d: %s", resp.StatusCode, data)
	}

	var gr generateResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return strings.TrimSpace(gr.Candidates[0].Content.Parts[0].Text), nil
}
