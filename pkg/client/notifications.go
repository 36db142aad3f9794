package client

import (
	"context"
	"fmt"
	"net/http"

	"k8s.io/utils/pointer"
)

// ListNotifications lists all notification providers
func (c *Client) ListNotifications(ctx context.Context) ([]Notification, error) {
	var result listNotificationsResponse
	if err := c.call(ctx, http.MethodGet, "/api/v1/notifications", nil, &result); err != nil {
		return nil, err
	}

	return result.Notifications, nil
}

// GetNotification gets a single notification by ID
func (c *Client) GetNotification(ctx context.Context, notificationID int) (*Notification, error) {
	var result getNotificationResponse
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/v1/notifications/%d", notificationID), nil, &result); err != nil {
		return nil, err
	}

	return &result.Notification, nil
}

// FindNotificationByName returns the notification with the given name, or nil
func (c *Client) FindNotificationByName(ctx context.Context, name string) (*Notification, error) {
	notifications, err := c.ListNotifications(ctx)
	if err != nil {
		return nil, err
	}

	for i := range notifications {
		if pointer.StringDeref(notifications[i].Name, "") == name {
			return &notifications[i], nil
		}
	}
	return nil, nil
}

// CreateNotification creates a notification and returns its ID
func (c *Client) CreateNotification(ctx context.Context, notification *Notification) (int, error) {
	var result createResponse
	if err := c.call(ctx, http.MethodPost, "/api/v1/notifications", notification, &result); err != nil {
		return 0, err
	}

	return result.ID, nil
}

// UpdateNotification updates an existing notification
func (c *Client) UpdateNotification(ctx context.Context, notificationID int, notification *Notification) error {
	var result APIResponse
	return c.call(ctx, http.MethodPut, fmt.Sprintf("/api/v1/notifications/%d", notificationID), notification, &result)
}

// DeleteNotification deletes a notification
func (c *Client) DeleteNotification(ctx context.Context, notificationID int) error {
	var result APIResponse
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/notifications/%d", notificationID), nil, &result)
}
