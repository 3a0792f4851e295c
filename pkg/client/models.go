package client

import (
	"context"
	"time"
)

// ModelSummary describes one locally available model, as reported by the
// server's tags endpoint.
type ModelSummary struct {
	Name       string    `json:"name"`
	Model      string    `json:"model"`
	ModifiedAt time.Time `json:"modified_at"`
	Size       int64     `json:"size"`
	Digest     string    `json:"digest"`
}

// ListModels returns the models available on the server.
func (c *Client) ListModels(ctx context.Context) ([]ModelSummary, error) {
	var resp struct {
		Models []ModelSummary `json:"models"`
	}
	if err := c.get(ctx, "/api/tags", &resp); err != nil {
		return nil, err
	}
	return resp.Models, nil
}

// Version returns the server's version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	var resp struct {
		Version string `json:"version"`
	}
	if err := c.get(ctx, "/api/version", &resp); err != nil {
		return "", err
	}
	return resp.Version, nil
}
