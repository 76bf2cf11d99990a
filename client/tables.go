package client

import (
	"context"
	"net/http"

	"github.com/yeremiapane/restaurant-pos/models"
)

func (c *Client) Tables(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	if err := c.get(ctx, "/api/tables", &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (c *Client) CreateTable(ctx context.Context, form models.TableForm) (*models.Table, error) {
	if err := models.Validate(form); err != nil {
		return nil, err
	}
	var table models.Table
	if err := c.send(ctx, http.MethodPost, "/api/tables", form, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

func (c *Client) DeleteTable(ctx context.Context, tableID string) error {
	return c.send(ctx, http.MethodDelete, "/api/tables/"+escape(tableID), nil, nil)
}
