package client

import (
	"context"
	"net/http"
)

// GetHealth checks the health of the Uptime Kuma API
func (c *Client) GetHealth(ctx context.Context) (*HealthStatus, error) {
	var result HealthStatus
	if err := c.call(ctx, http.MethodGet, "/api/v1/status/health", nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Ping tests connectivity to the Uptime Kuma API
// Returns true if the API is reachable and healthy
func (c *Client) Ping(ctx context.Context) (bool, error) {
	health, err := c.GetHealth(ctx)
	if err != nil {
		return false, err
	}

	return health.OK && health.Status == "healthy", nil
}
