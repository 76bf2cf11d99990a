package client

import (
	"context"
	"net/http"

	"github.com/yeremiapane/restaurant-pos/models"
)

// CreateBill closes an order into a bill.
func (c *Client) CreateBill(ctx context.Context, orderID string) (*models.Bill, error) {
	return c.bill(ctx, "/api/bills", orderID)
}

// FinalizeBill is the single-step variant used by the basic POS screen.
func (c *Client) FinalizeBill(ctx context.Context, orderID string) (*models.Bill, error) {
	return c.bill(ctx, "/api/bills/finalize", orderID)
}

func (c *Client) bill(ctx context.Context, path, orderID string) (*models.Bill, error) {
	var bill models.Bill
	if err := c.send(ctx, http.MethodPost, path, models.BillRequest{OrderID: orderID}, &bill); err != nil {
		return nil, err
	}
	if bill.OrderID == "" {
		bill.OrderID = orderID
	}
	return &bill, nil
}
