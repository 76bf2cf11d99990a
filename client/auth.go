package client

import (
	"context"
	"net/http"

	"github.com/yeremiapane/restaurant-pos/models"
)

// Login exchanges credentials for a token. Storing it is the caller's job.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	if err := models.Validate(creds); err != nil {
		return nil, err
	}
	var out models.AuthResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/login", body: creds}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Signup(ctx context.Context, form models.SignupForm) error {
	if err := models.Validate(form); err != nil {
		return err
	}
	return c.do(ctx, request{method: http.MethodPost, path: "/api/signup", body: form}, nil)
}

func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := c.get(ctx, "/api/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
