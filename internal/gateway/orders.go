package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/skudeck/skudeck/internal/orders"
)

// ListOrders fetches the full orders collection.
func (c *Client) ListOrders(ctx context.Context) ([]orders.Order, error) {
	var result []orders.Order
	if err := c.listCached(ctx, cacheKeyOrders, "/orders", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateOrder posts a new order (sans identifier) and returns the stored
// entity carrying the gateway-assigned ID.
func (c *Client) CreateOrder(ctx context.Context, order orders.Order) (*orders.Order, error) {
	var created orders.Order
	if _, err := c.do(ctx, http.MethodPost, "/orders", order, &created); err != nil {
		return nil, err
	}
	c.invalidate(ctx, cacheKeyOrders)
	return &created, nil
}

// UpdateOrder replaces an order with a full entity body.
func (c *Client) UpdateOrder(ctx context.Context, id int64, order orders.Order) (*orders.Order, error) {
	var updated orders.Order
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", id), order, &updated); err != nil {
		return nil, err
	}
	c.invalidate(ctx, cacheKeyOrders)
	return &updated, nil
}

// PatchOrder sends only the changed fields.
func (c *Client) PatchOrder(ctx context.Context, id int64, fields map[string]any) (*orders.Order, error) {
	var updated orders.Order
	if _, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d", id), fields, &updated); err != nil {
		return nil, err
	}
	c.invalidate(ctx, cacheKeyOrders)
	return &updated, nil
}

// DeleteOrder removes an order by identifier.
func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	if _, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", id), nil, nil); err != nil {
		return err
	}
	c.invalidate(ctx, cacheKeyOrders)
	return nil
}
