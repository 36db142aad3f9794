package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"k8s.io/utils/pointer"
)

// monitorPageSize is the page size ListAllMonitors requests
const monitorPageSize = 100

// ListMonitors lists one page of monitors
func (c *Client) ListMonitors(ctx context.Context, page, limit int, groupID *int) (*ListMonitorsResponse, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if groupID != nil {
		query.Set("group", strconv.Itoa(*groupID))
	}

	var result ListMonitorsResponse
	if err := c.call(ctx, http.MethodGet, "/api/v1/monitors?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ListAllMonitors walks every page of the monitor list
func (c *Client) ListAllMonitors(ctx context.Context) ([]Monitor, error) {
	var monitors []Monitor
	for page := 1; ; page++ {
		result, err := c.ListMonitors(ctx, page, monitorPageSize, nil)
		if err != nil {
			return nil, err
		}
		monitors = append(monitors, result.Monitors...)
		if len(result.Monitors) < monitorPageSize || (result.Total > 0 && len(monitors) >= result.Total) {
			return monitors, nil
		}
	}
}

// GetMonitor gets a single monitor by ID
func (c *Client) GetMonitor(ctx context.Context, monitorID int) (*Monitor, error) {
	var result GetMonitorResponse
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/v1/monitors/%d", monitorID), nil, &result); err != nil {
		return nil, err
	}

	return &result.Monitor, nil
}

// FindMonitorByName returns the first monitor with the given name, or nil
func (c *Client) FindMonitorByName(ctx context.Context, name string) (*Monitor, error) {
	monitors, err := c.ListAllMonitors(ctx)
	if err != nil {
		return nil, err
	}

	for i := range monitors {
		if pointer.StringDeref(monitors[i].Name, "") == name {
			return &monitors[i], nil
		}
	}
	return nil, nil
}

// CreateMonitor creates a new monitor
func (c *Client) CreateMonitor(ctx context.Context, monitor *Monitor) (int, error) {
	var result CreateMonitorResponse
	if err := c.call(ctx, http.MethodPost, "/api/v1/monitors", monitor, &result); err != nil {
		return 0, err
	}

	return result.MonitorID, nil
}

// UpdateMonitor updates an existing monitor
func (c *Client) UpdateMonitor(ctx context.Context, monitorID int, monitor *Monitor) error {
	var result APIResponse
	return c.call(ctx, http.MethodPut, fmt.Sprintf("/api/v1/monitors/%d", monitorID), monitor, &result)
}

// DeleteMonitor deletes a monitor
func (c *Client) DeleteMonitor(ctx context.Context, monitorID int, deleteChildren bool) error {
	query := url.Values{}
	query.Set("deleteChildren", strconv.FormatBool(deleteChildren))

	var result APIResponse
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/monitors/%d?%s", monitorID, query.Encode()), nil, &result)
}

// PauseMonitor pauses a monitor
func (c *Client) PauseMonitor(ctx context.Context, monitorID int) error {
	var result APIResponse
	return c.call(ctx, http.MethodPost, fmt.Sprintf("/api/v1/monitors/%d/pause", monitorID), nil, &result)
}

// ResumeMonitor resumes a paused monitor
func (c *Client) ResumeMonitor(ctx context.Context, monitorID int) error {
	var result APIResponse
	return c.call(ctx, http.MethodPost, fmt.Sprintf("/api/v1/monitors/%d/resume", monitorID), nil, &result)
}

// GetMonitorStatus gets the status and statistics of a monitor
func (c *Client) GetMonitorStatus(ctx context.Context, monitorID int) (*MonitorStatus, error) {
	var result GetStatusResponse
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/v1/monitors/%d/status", monitorID), nil, &result); err != nil {
		return nil, err
	}

	return &result.Status, nil
}

// AddTagToMonitor adds a tag to a monitor
func (c *Client) AddTagToMonitor(ctx context.Context, monitorID, tagID int, value string) error {
	body := map[string]interface{}{
		"tagId": tagID,
		"value": value,
	}

	var result APIResponse
	return c.call(ctx, http.MethodPost, fmt.Sprintf("/api/v1/monitors/%d/tags", monitorID), body, &result)
}

// UpdateMonitorTag updates a tag value on a monitor
func (c *Client) UpdateMonitorTag(ctx context.Context, monitorID, tagID int, value string) error {
	body := map[string]interface{}{
		"value": value,
	}

	var result APIResponse
	return c.call(ctx, http.MethodPut, fmt.Sprintf("/api/v1/monitors/%d/tags/%d", monitorID, tagID), body, &result)
}

// RemoveTagFromMonitor removes one tag/value pair from a monitor
func (c *Client) RemoveTagFromMonitor(ctx context.Context, monitorID, tagID int, value string) error {
	query := url.Values{}
	query.Set("value", value)
	path := fmt.Sprintf("/api/v1/monitors/%d/tags/%d?%s", monitorID, tagID, query.Encode())

	var result APIResponse
	return c.call(ctx, http.MethodDelete, path, nil, &result)
}
