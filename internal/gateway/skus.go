package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/skudeck/skudeck/internal/skus"
)

// ListSKUs fetches the full SKU collection.
func (c *Client) ListSKUs(ctx context.Context) ([]skus.SKU, error) {
	var result []skus.SKU
	if err := c.listCached(ctx, cacheKeySKUs, "/skus", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateSKU posts a new SKU and returns the stored entity with its ID.
func (c *Client) CreateSKU(ctx context.Context, sku skus.SKU) (*skus.SKU, error) {
	var created skus.SKU
	if _, err := c.do(ctx, http.MethodPost, "/skus", sku, &created); err != nil {
		return nil, err
	}
	c.invalidate(ctx, cacheKeySKUs)
	return &created, nil
}

// UpdateSKU replaces a SKU with a full entity body.
func (c *Client) UpdateSKU(ctx context.Context, id int64, sku skus.SKU) (*skus.SKU, error) {
	var updated skus.SKU
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/skus/%d", id), sku, &updated); err != nil {
		return nil, err
	}
	c.invalidate(ctx, cacheKeySKUs)
	return &updated, nil
}

// PatchSKU sends only the changed fields.
func (c *Client) PatchSKU(ctx context.Context, id int64, fields map[string]any) (*skus.SKU, error) {
	var updated skus.SKU
	if _, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/skus/%d", id), fields, &updated); err != nil {
		return nil, err
	}
	c.invalidate(ctx, cacheKeySKUs)
	return &updated, nil
}

// DeleteSKU removes a SKU by identifier.
func (c *Client) DeleteSKU(ctx context.Context, id int64) error {
	if _, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/skus/%d", id), nil, nil); err != nil {
		return err
	}
	c.invalidate(ctx, cacheKeySKUs)
	return nil
}
