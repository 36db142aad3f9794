package client

import (
	"context"
	"fmt"
	"net/http"

	"k8s.io/utils/pointer"
)

// ListAPIKeys lists all API keys. Key material is never returned.
func (c *Client) ListAPIKeys(ctx context.Context) ([]APIKey, error) {
	var result listAPIKeysResponse
	if err := c.call(ctx, http.MethodGet, "/api/v1/api-keys", nil, &result); err != nil {
		return nil, err
	}

	return result.APIKeys, nil
}

// GetAPIKey gets a single API key by ID
func (c *Client) GetAPIKey(ctx context.Context, keyID int) (*APIKey, error) {
	var result getAPIKeyResponse
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/v1/api-keys/%d", keyID), nil, &result); err != nil {
		return nil, err
	}

	return &result.APIKey, nil
}

// FindAPIKeyByName returns the API key with the given name, or nil
func (c *Client) FindAPIKeyByName(ctx context.Context, name string) (*APIKey, error) {
	keys, err := c.ListAPIKeys(ctx)
	if err != nil {
		return nil, err
	}

	for i := range keys {
		if pointer.StringDeref(keys[i].Name, "") == name {
			return &keys[i], nil
		}
	}
	return nil, nil
}

// CreateAPIKey creates an API key. The returned response holds the clear
// text key, which cannot be fetched again later.
func (c *Client) CreateAPIKey(ctx context.Context, key *APIKey) (*CreateAPIKeyResponse, error) {
	var result CreateAPIKeyResponse
	if err := c.call(ctx, http.MethodPost, "/api/v1/api-keys", key, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// DeleteAPIKey deletes an API key
func (c *Client) DeleteAPIKey(ctx context.Context, keyID int) error {
	var result APIResponse
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/api-keys/%d", keyID), nil, &result)
}

// EnableAPIKey activates an API key
func (c *Client) EnableAPIKey(ctx context.Context, keyID int) error {
	var result APIResponse
	return c.call(ctx, http.MethodPost, fmt.Sprintf("/api/v1/api-keys/%d/enable", keyID), nil, &result)
}

// DisableAPIKey deactivates an API key
func (c *Client) DisableAPIKey(ctx context.Context, keyID int) error {
	var result APIResponse
	return c.call(ctx, http.MethodPost, fmt.Sprintf("/api/v1/api-keys/%d/disable", keyID), nil, &result)
}
