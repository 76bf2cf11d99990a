package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/yeremiapane/restaurant-pos/models"
)

func (c *Client) Menu(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.get(ctx, "/api/menu", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateMenuItem(ctx context.Context, form models.MenuItemForm) (*models.MenuItem, error) {
	return c.submitMenuForm(ctx, http.MethodPost, "/api/menu", form)
}

func (c *Client) UpdateMenuItem(ctx context.Context, menuItemID string, form models.MenuItemForm) (*models.MenuItem, error) {
	return c.submitMenuForm(ctx, http.MethodPut, "/api/menu/"+escape(menuItemID), form)
}

// SetMenuItemAvailability flips a dish on or off without touching the rest.
func (c *Client) SetMenuItemAvailability(ctx context.Context, menuItemID string, available bool) error {
	body := map[string]bool{"isAvailable": available}
	return c.send(ctx, http.MethodPut, "/api/menu/"+escape(menuItemID), body, nil)
}

func (c *Client) DeleteMenuItem(ctx context.Context, menuItemID string) error {
	return c.send(ctx, http.MethodDelete, "/api/menu/"+escape(menuItemID), nil, nil)
}

// submitMenuForm sends the dish as multipart form data so an image can ride along.
func (c *Client) submitMenuForm(ctx context.Context, method, path string, form models.MenuItemForm) (*models.MenuItem, error) {
	if err := models.Validate(form); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"name", form.Name},
		{"price", strconv.FormatFloat(form.Price, 'f', -1, 64)},
		{"category", form.Category},
		{"description", form.Description},
		{"isAvailable", strconv.FormatBool(form.IsAvailable)},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("encode menu form: %w", err)
		}
	}
	if len(form.Image) > 0 {
		name := form.ImageName
		if name == "" {
			name = "image"
		}
		part, err := w.CreateFormFile("image", name)
		if err != nil {
			return nil, fmt.Errorf("encode menu image: %w", err)
		}
		if _, err := part.Write(form.Image); err != nil {
			return nil, fmt.Errorf("encode menu image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encode menu form: %w", err)
	}

	var item models.MenuItem
	err := c.do(ctx, request{
		method:      method,
		path:        path,
		raw:         &buf,
		contentType: w.FormDataContentType(),
		auth:        true,
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
