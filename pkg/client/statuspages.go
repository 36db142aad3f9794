package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListStatusPages lists all status pages
func (c *Client) ListStatusPages(ctx context.Context) ([]StatusPage, error) {
	var result listStatusPagesResponse
	if err := c.call(ctx, http.MethodGet, "/api/v1/status-pages", nil, &result); err != nil {
		return nil, err
	}

	return result.StatusPages, nil
}

// GetStatusPage gets a status page by slug. A missing page is an error
// matching ErrNotFound.
func (c *Client) GetStatusPage(ctx context.Context, slug string) (*StatusPage, error) {
	var result getStatusPageResponse
	if err := c.call(ctx, http.MethodGet, statusPagePath(slug), nil, &result); err != nil {
		return nil, err
	}

	return &result.StatusPage, nil
}

// CreateStatusPage creates an empty status page. Use SaveStatusPage to
// configure it.
func (c *Client) CreateStatusPage(ctx context.Context, slug, title string) error {
	body := map[string]interface{}{
		"slug":  slug,
		"title": title,
	}

	var result APIResponse
	return c.call(ctx, http.MethodPost, "/api/v1/status-pages", body, &result)
}

// SaveStatusPage stores the full status page configuration
func (c *Client) SaveStatusPage(ctx context.Context, page *StatusPage) error {
	var result APIResponse
	return c.call(ctx, http.MethodPut, statusPagePath(page.Slug), page, &result)
}

// DeleteStatusPage deletes a status page
func (c *Client) DeleteStatusPage(ctx context.Context, slug string) error {
	var result APIResponse
	return c.call(ctx, http.MethodDelete, statusPagePath(slug), nil, &result)
}

// PostIncident pins an incident to the top of a status page
func (c *Client) PostIncident(ctx context.Context, slug string, incident *Incident) error {
	var result APIResponse
	return c.call(ctx, http.MethodPost, statusPagePath(slug)+"/incident", incident, &result)
}

// UnpinIncident removes the pinned incident from a status page
func (c *Client) UnpinIncident(ctx context.Context, slug string) error {
	var result APIResponse
	return c.call(ctx, http.MethodDelete, statusPagePath(slug)+"/incident", nil, &result)
}

func statusPagePath(slug string) string {
	return fmt.Sprintf("/api/v1/status-pages/%s", url.PathEscape(slug))
}
