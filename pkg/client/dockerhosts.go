package client

import (
	"context"
	"fmt"
	"net/http"

	"k8s.io/utils/pointer"
)

// ListDockerHosts lists all docker hosts
func (c *Client) ListDockerHosts(ctx context.Context) ([]DockerHost, error) {
	var result listDockerHostsResponse
	if err := c.call(ctx, http.MethodGet, "/api/v1/docker-hosts", nil, &result); err != nil {
		return nil, err
	}

	return result.DockerHosts, nil
}

// GetDockerHost gets a single docker host by ID
func (c *Client) GetDockerHost(ctx context.Context, hostID int) (*DockerHost, error) {
	var result getDockerHostResponse
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/v1/docker-hosts/%d", hostID), nil, &result); err != nil {
		return nil, err
	}

	return &result.DockerHost, nil
}

// FindDockerHostByName returns the docker host with the given name, or nil
func (c *Client) FindDockerHostByName(ctx context.Context, name string) (*DockerHost, error) {
	hosts, err := c.ListDockerHosts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range hosts {
		if pointer.StringDeref(hosts[i].Name, "") == name {
			return &hosts[i], nil
		}
	}
	return nil, nil
}

// CreateDockerHost creates a docker host and returns its ID
func (c *Client) CreateDockerHost(ctx context.Context, host *DockerHost) (int, error) {
	var result createResponse
	if err := c.call(ctx, http.MethodPost, "/api/v1/docker-hosts", host, &result); err != nil {
		return 0, err
	}

	return result.ID, nil
}

// UpdateDockerHost updates an existing docker host
func (c *Client) UpdateDockerHost(ctx context.Context, hostID int, host *DockerHost) error {
	var result APIResponse
	return c.call(ctx, http.MethodPut, fmt.Sprintf("/api/v1/docker-hosts/%d", hostID), host, &result)
}

// DeleteDockerHost deletes a docker host
func (c *Client) DeleteDockerHost(ctx context.Context, hostID int) error {
	var result APIResponse
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/docker-hosts/%d", hostID), nil, &result)
}
