// Package catalog fetches shop, product, and collection records from a
// storefront admin API. The client owns pagination and request retries;
// callers see only typed snapshots and a single fetch-failure error class.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// ErrFetch wraps every failure to reach or parse the storefront API.
var ErrFetch = errors.New("catalog fetch failed")

const (
	defaultTimeout  = 30 * time.Second
	defaultPageSize = 250
	maxAttempts     = 3
)

var nextLinkPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// ClientConfig holds connection settings for the storefront API.
type ClientConfig struct {
	ShopDomain  string // e.g. "example" for example.myshopify.com
	AccessToken string
	APIVersion  string
	// BaseURL overrides the derived admin API URL. Mainly for tests.
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
}

// Client is a storefront API client with rate-limit awareness and retries.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a storefront API client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2023-10"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.myshopify.com/admin/api/%s", cfg.ShopDomain, cfg.APIVersion)
	}
	return &Client{
		baseURL: baseURL,
		token:   cfg.AccessToken,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// GetShopInfo fetches the shop record.
func (c *Client) GetShopInfo(ctx context.Context) (*Shop, error) {
	var payload struct {
		Shop Shop `json:"shop"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/shop.json", &payload); err != nil {
		return nil, err
	}
	return &payload.Shop, nil
}

// GetProducts fetches up to limit products, following cursor pagination.
// Results preserve API order; the sequence is finite and fetched eagerly so
// a mid-stream failure surfaces before any output is produced.
func (c *Client) GetProducts(ctx context.Context, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	pageSize := limit
	if pageSize > defaultPageSize {
		pageSize = defaultPageSize
	}
	next := c.baseURL + "/products.json?limit=" + strconv.Itoa(pageSize)

	products := make([]Product, 0, limit)
	for next != "" && len(products) < limit {
		var payload struct {
			Products []Product `json:"products"`
		}
		link, err := c.getJSONWithLink(ctx, next, &payload)
		if err != nil {
			return nil, err
		}

		for _, p := range payload.Products {
			products = append(products, p)
			if len(products) >= limit {
				return products, nil
			}
		}
		if len(payload.Products) == 0 {
			break
		}
		next = link
	}
	return products, nil
}

// GetCollections fetches all collections.
func (c *Client) GetCollections(ctx context.Context) ([]Collection, error) {
	var payload struct {
		Collections []Collection `json:"collections"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/collections.json", &payload); err != nil {
		return nil, err
	}
	return payload.Collections, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	_, err := c.getJSONWithLink(ctx, rawURL, out)
	return err
}

// getJSONWithLink performs a GET with retries and returns the rel="next"
// pagination URL from the Link header, if any.
func (c *Client) getJSONWithLink(ctx context.Context, rawURL string, out any) (string, error) {
	var nextURL string

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("X-Shopify-Access-Token", c.token)
			req.Header.Set("Content-Type", "application/json")

			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			c.observeCallLimit(resp)

			if resp.StatusCode == http.StatusTooManyRequests {
				delay := retryAfter(resp)
				c.logger.Warn("storefront API rate limited", "retry_after", delay)
				select {
				case <-ctx.Done():
					return retry.Unrecoverable(ctx.Err())
				case <-time.After(delay):
				}
				return fmt.Errorf("rate limited (status 429)")
			}
			if resp.StatusCode >= 500 {
				return fmt.Errorf("server error (status %d)", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
				return retry.Unrecoverable(fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body))
			}

			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return retry.Unrecoverable(fmt.Errorf("malformed response: %w", err))
			}
			nextURL = parseNextLink(resp.Header.Get("Link"))
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("retrying storefront request", "attempt", n+1, "url", rawURL, "error", err)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: GET %s: %v", ErrFetch, rawURL, err)
	}
	return nextURL, nil
}

// observeCallLimit slows down when the API reports we are close to its
// leaky-bucket call limit.
func (c *Client) observeCallLimit(resp *http.Response) {
	header := resp.Header.Get("X-Shopify-Shop-Api-Call-Limit")
	if header == "" {
		return
	}
	parts := strings.SplitN(header, "/", 2)
	if len(parts) != 2 {
		return
	}
	current, err1 := strconv.Atoi(parts[0])
	limit, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return
	}
	if limit-current < 5 {
		c.logger.Warn("approaching storefront API call limit", "current", current, "limit", limit)
		time.Sleep(2 * time.Second)
	}
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 2 * time.Second
}

func parseNextLink(header string) string {
	if header == "" {
		return ""
	}
	m := nextLinkPattern.FindStringSubmatch(header)
	if m == nil {
		return ""
	}
	if _, err := url.Parse(m[1]); err != nil {
		return ""
	}
	return m[1]
}
