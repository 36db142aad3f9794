package client

import (
	"context"
	"fmt"
	"net/http"

	"k8s.io/utils/pointer"
)

// ListMaintenances lists all maintenance windows
func (c *Client) ListMaintenances(ctx context.Context) ([]Maintenance, error) {
	var result listMaintenancesResponse
	if err := c.call(ctx, http.MethodGet, "/api/v1/maintenances", nil, &result); err != nil {
		return nil, err
	}

	return result.Maintenances, nil
}

// GetMaintenance gets a single maintenance window by ID
func (c *Client) GetMaintenance(ctx context.Context, maintenanceID int) (*Maintenance, error) {
	var result getMaintenanceResponse
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/v1/maintenances/%d", maintenanceID), nil, &result); err != nil {
		return nil, err
	}

	return &result.Maintenance, nil
}

// FindMaintenanceByTitle returns the maintenance with the given title, or nil
func (c *Client) FindMaintenanceByTitle(ctx context.Context, title string) (*Maintenance, error) {
	maintenances, err := c.ListMaintenances(ctx)
	if err != nil {
		return nil, err
	}

	for i := range maintenances {
		if pointer.StringDeref(maintenances[i].Title, "") == title {
			return &maintenances[i], nil
		}
	}
	return nil, nil
}

// CreateMaintenance creates a maintenance window and returns its ID
func (c *Client) CreateMaintenance(ctx context.Context, maintenance *Maintenance) (int, error) {
	var result createResponse
	if err := c.call(ctx, http.MethodPost, "/api/v1/maintenances", maintenance, &result); err != nil {
		return 0, err
	}

	return result.ID, nil
}

// UpdateMaintenance updates an existing maintenance window
func (c *Client) UpdateMaintenance(ctx context.Context, maintenanceID int, maintenance *Maintenance) error {
	var result APIResponse
	return c.call(ctx, http.MethodPut, fmt.Sprintf("/api/v1/maintenances/%d", maintenanceID), maintenance, &result)
}

// DeleteMaintenance deletes a maintenance window
func (c *Client) DeleteMaintenance(ctx context.Context, maintenanceID int) error {
	var result APIResponse
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/maintenances/%d", maintenanceID), nil, &result)
}

// PauseMaintenance deactivates a maintenance window
func (c *Client) PauseMaintenance(ctx context.Context, maintenanceID int) error {
	var result APIResponse
	return c.call(ctx, http.MethodPost, fmt.Sprintf("/api/v1/maintenances/%d/pause", maintenanceID), nil, &result)
}

// ResumeMaintenance reactivates a paused maintenance window
func (c *Client) ResumeMaintenance(ctx context.Context, maintenanceID int) error {
	var result APIResponse
	return c.call(ctx, http.MethodPost, fmt.Sprintf("/api/v1/maintenances/%d/resume", maintenanceID), nil, &result)
}

// GetMaintenanceMonitors lists the monitors covered by a maintenance window
func (c *Client) GetMaintenanceMonitors(ctx context.Context, maintenanceID int) ([]MaintenanceLink, error) {
	var result maintenanceLinksResponse
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/v1/maintenances/%d/monitors", maintenanceID), nil, &result); err != nil {
		return nil, err
	}

	return result.Monitors, nil
}

// SetMaintenanceMonitors replaces the monitors covered by a maintenance window
func (c *Client) SetMaintenanceMonitors(ctx context.Context, maintenanceID int, monitors []MaintenanceLink) error {
	body := map[string]interface{}{"monitors": nonNilLinks(monitors)}

	var result APIResponse
	return c.call(ctx, http.MethodPut, fmt.Sprintf("/api/v1/maintenances/%d/monitors", maintenanceID), body, &result)
}

// GetMaintenanceStatusPages lists the status pages showing a maintenance window
func (c *Client) GetMaintenanceStatusPages(ctx context.Context, maintenanceID int) ([]MaintenanceLink, error) {
	var result maintenanceLinksResponse
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/v1/maintenances/%d/status-pages", maintenanceID), nil, &result); err != nil {
		return nil, err
	}

	return result.StatusPages, nil
}

// SetMaintenanceStatusPages replaces the status pages showing a maintenance window
func (c *Client) SetMaintenanceStatusPages(ctx context.Context, maintenanceID int, statusPages []MaintenanceLink) error {
	body := map[string]interface{}{"statusPages": nonNilLinks(statusPages)}

	var result APIResponse
	return c.call(ctx, http.MethodPut, fmt.Sprintf("/api/v1/maintenances/%d/status-pages", maintenanceID), body, &result)
}

// nonNilLinks makes an empty link list encode as [] instead of null
func nonNilLinks(links []MaintenanceLink) []MaintenanceLink {
	if links == nil {
		return []MaintenanceLink{}
	}
	return links
}
