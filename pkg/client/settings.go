package client

import (
	"context"
	"net/http"
)

// GetSettings returns the server settings
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var result getSettingsResponse
	if err := c.call(ctx, http.MethodGet, "/api/v1/settings", nil, &result); err != nil {
		return nil, err
	}

	return &result.Settings, nil
}

// SetSettings writes the given settings. Unset fields keep their value.
func (c *Client) SetSettings(ctx context.Context, settings *Settings) error {
	var result APIResponse
	return c.call(ctx, http.MethodPut, "/api/v1/settings", settings, &result)
}
