// Package inventory implements the HTTP client for the inventory service,
// which owns product price and stock. The client performs no retries; the
// placement circuit breaker decides what happens on failure.
package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goshop/orderflow/internal/domains/orders/ports"
)

var _ ports.InventoryClient = (*Client)(nil)

// Client talks to the inventory service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient instantiates the inventory client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("inventory base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

type productPayload struct {
	Price float64 `json:"price"`
	Stock int32   `json:"stock"`
}

type reducePayload struct {
	Status string `json:"status"`
}

// FetchProduct reads price and stock for a product. A 404 maps to
// ErrProductNotFound; any transport failure or unexpected status maps to
// ErrInventoryUnavailable.
func (c *Client) FetchProduct(ctx context.Context, id int64) (*ports.Product, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrInventoryUnavailable, err)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrInventoryUnavailable, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
		var payload productPayload
		if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("%w: decoding product %d: %w", ports.ErrInventoryUnavailable, id, err)
		}
		return &ports.Product{ID: id, Price: payload.Price, Stock: payload.Stock}, nil
	case res.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: id %d", ports.ErrProductNotFound, id)
	default:
		return nil, fmt.Errorf("%w: unexpected status %s fetching product %d", ports.ErrInventoryUnavailable, res.Status, id)
	}
}

// ReduceStock asks the inventory service to commit a stock reduction. The
// service answers {"status":"OK"} on success and a client error when it
// declines; anything else means the call could not be completed.
func (c *Client) ReduceStock(ctx context.Context, id int64, qty int32) error {
	url := fmt.Sprintf("%s/products/%d/reduce?qty=%s", c.baseURL, id, strconv.FormatInt(int64(qty), 10))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrInventoryUnavailable, err)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrInventoryUnavailable, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
		var payload reducePayload
		if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
			return fmt.Errorf("%w: decoding reduce response for product %d: %w", ports.ErrInventoryUnavailable, id, err)
		}
		if !strings.EqualFold(payload.Status, "OK") {
			return fmt.Errorf("%w: product %d, status %q", ports.ErrStockRejected, id, payload.Status)
		}
		return nil
	case res.StatusCode >= http.StatusBadRequest && res.StatusCode < http.StatusInternalServerError:
		return fmt.Errorf("%w: product %d", ports.ErrStockRejected, id)
	default:
		return fmt.Errorf("%w: unexpected status %s reducing stock for product %d", ports.ErrInventoryUnavailable, res.Status, id)
	}
}
