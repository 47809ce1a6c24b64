// Package catalog is the outbound adapter for the product catalog service.
// The core only calls it at checkout to freeze SKUs and unit prices into
// order lines.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// HTTPClient implements ports.CatalogClient against the catalog service's
// JSON API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a catalog client for the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

type productResponse struct {
	SKU           string `json:"sku"`
	PriceAmount   int64  `json:"price_amount"`
	PriceCurrency string `json:"price_currency"`
}

// GetProduct retrieves the current SKU and price for a product. A 404 from
// the catalog maps to errs.ErrObjectNotFound.
func (c *HTTPClient) GetProduct(ctx context.Context, productID kernel.UUID) (ports.ProductSnapshot, error) {
	if err := productID.Validate(); err != nil {
		return ports.ProductSnapshot{}, err
	}

	url := fmt.Sprintf("%s/api/v1/products/%s", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.ProductSnapshot{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return ports.ProductSnapshot{}, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ports.ProductSnapshot{}, errs.NewObjectNotFoundError("product", productID.String())
	default:
		return ports.ProductSnapshot{}, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var body productResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.ProductSnapshot{}, fmt.Errorf("catalog response malformed: %w", err)
	}

	price, err := kernel.NewMoney(body.PriceAmount, body.PriceCurrency)
	if err != nil {
		return ports.ProductSnapshot{}, err
	}

	return ports.ProductSnapshot{SKU: body.SKU, Price: price}, nil
}
