package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/yeremiapane/restaurant-pos/models"
)

// The customer endpoints are unauthenticated and scoped by shop id.

func (c *Client) PublicMenu(ctx context.Context, shopID string) (*models.PublicMenu, error) {
	var menu models.PublicMenu
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/public/menu",
		query:  url.Values{"shopId": {shopID}},
	}, &menu)
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func (c *Client) CreatePublicOrder(ctx context.Context, req models.PublicOrderRequest) (*models.Order, error) {
	var order models.Order
	err := c.do(ctx, request{
		method:         http.MethodPost,
		path:           "/api/public/order",
		body:           req,
		idempotencyKey: req.IdempotencyKey,
	}, &order)
	if err != nil {
		return createdOrder(err)
	}
	return &order, nil
}

func (c *Client) AmendPublicOrder(ctx context.Context, orderID string, req models.PublicOrderRequest) error {
	return c.do(ctx, request{
		method:         http.MethodPut,
		path:           "/api/public/order/" + escape(orderID),
		body:           req,
		idempotencyKey: req.IdempotencyKey,
	}, nil)
}

func (c *Client) PublicOrder(ctx context.Context, shopID, orderID string) (*models.Order, error) {
	var order models.Order
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/public/order/" + escape(orderID),
		query:  url.Values{"shopId": {shopID}},
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
