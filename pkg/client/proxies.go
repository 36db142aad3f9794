package client

import (
	"context"
	"fmt"
	"net/http"

	"k8s.io/utils/pointer"
)

// ListProxies lists all proxies
func (c *Client) ListProxies(ctx context.Context) ([]Proxy, error) {
	var result listProxiesResponse
	if err := c.call(ctx, http.MethodGet, "/api/v1/proxies", nil, &result); err != nil {
		return nil, err
	}

	return result.Proxies, nil
}

// GetProxy gets a single proxy by ID
func (c *Client) GetProxy(ctx context.Context, proxyID int) (*Proxy, error) {
	var result getProxyResponse
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/v1/proxies/%d", proxyID), nil, &result); err != nil {
		return nil, err
	}

	return &result.Proxy, nil
}

// FindProxyByHostPort returns the proxy listening on host:port, or nil.
// Proxies have no name, so the address is their natural key.
func (c *Client) FindProxyByHostPort(ctx context.Context, host string, port int) (*Proxy, error) {
	proxies, err := c.ListProxies(ctx)
	if err != nil {
		return nil, err
	}

	for i := range proxies {
		p := &proxies[i]
		if pointer.StringDeref(p.Host, "") == host && pointer.IntDeref(p.Port, 0) == port {
			return p, nil
		}
	}
	return nil, nil
}

// CreateProxy creates a proxy and returns its ID
func (c *Client) CreateProxy(ctx context.Context, proxy *Proxy) (int, error) {
	var result createResponse
	if err := c.call(ctx, http.MethodPost, "/api/v1/proxies", proxy, &result); err != nil {
		return 0, err
	}

	return result.ID, nil
}

// UpdateProxy updates an existing proxy
func (c *Client) UpdateProxy(ctx context.Context, proxyID int, proxy *Proxy) error {
	var result APIResponse
	return c.call(ctx, http.MethodPut, fmt.Sprintf("/api/v1/proxies/%d", proxyID), proxy, &result)
}

// DeleteProxy deletes a proxy
func (c *Client) DeleteProxy(ctx context.Context, proxyID int) error {
	var result APIResponse
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/proxies/%d", proxyID), nil, &result)
}
