package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxResponseSize bounds the external catalog response read (1MB)
const maxResponseSize = 1 * 1024 * 1024

// ErrProductNotFound indicates the external catalog has no usable record for
// the barcode. A payload without a product name counts as not found.
var ErrProductNotFound = errors.New("product not found in external catalog")

// ProductInfo is the normalized metadata returned by the external catalog
type ProductInfo struct {
	Barcode     string
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Category    string
}

// Client performs barcode lookups against an external product catalog
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given base URL. A zero timeout
// falls back to 10 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// lookupResponse mirrors the Open Food Facts product endpoint payload
type lookupResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Product struct {
		ProductName string  `json:"product_name"`
		GenericName string  `json:"generic_name"`
		Brands      string  `json:"brands"`
		ImageURL    string  `json:"image_url"`
		Categories  string  `json:"categories"`
		Price       float64 `json:"price"`
	} `json:"product"`
}

// Lookup performs a single request for the barcode. It returns
// ErrProductNotFound when the catalog reports no such product or the payload
// lacks a usable name; any other failure is returned as a generic error and
// is never retried here.
func (c *Client) Lookup(ctx context.Context, barcode string) (*ProductInfo, error) {
	endpoint := fmt.Sprintf("%s/%s.json", c.baseURL, url.PathEscape(barcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	var payload lookupResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	if payload.Status == 0 {
		return nil, ErrProductNotFound
	}

	name := strings.TrimSpace(payload.Product.ProductName)
	if name == "" {
		// A record without a name is unusable
		return nil, ErrProductNotFound
	}

	description := strings.TrimSpace(payload.Product.GenericName)
	if description == "" {
		description = strings.TrimSpace(payload.Product.Brands)
	}

	return &ProductInfo{
		Barcode:     barcode,
		Name:        name,
		Description: description,
		Price:       payload.Product.Price,
		ImageURL:    strings.TrimSpace(payload.Product.ImageURL),
		Category:    strings.TrimSpace(payload.Product.Categories),
	}, nil
}
