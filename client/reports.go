package client

import (
	"context"

	"github.com/yeremiapane/restaurant-pos/models"
)

func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var d models.Dashboard
	if err := c.get(ctx, "/api/reports/dashboard", &d); err != nil {
		return nil, err
	}
	return &d, nil
}
