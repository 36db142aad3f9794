package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"k8s.io/utils/pointer"
)

// ListGroups lists one page of groups
func (c *Client) ListGroups(ctx context.Context, page, limit int) (*ListGroupsResponse, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var result ListGroupsResponse
	if err := c.call(ctx, http.MethodGet, "/api/v1/groups?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetGroup gets a single group by ID
func (c *Client) GetGroup(ctx context.Context, groupID int, includeChildren bool) (*Group, error) {
	query := url.Values{}
	query.Set("includeChildren", strconv.FormatBool(includeChildren))

	var result GetGroupResponse
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/v1/groups/%d?%s", groupID, query.Encode()), nil, &result); err != nil {
		return nil, err
	}

	return &result.Group, nil
}

// FindGroupByName returns the first group with the given name, or nil
func (c *Client) FindGroupByName(ctx context.Context, name string) (*Group, error) {
	result, err := c.ListGroups(ctx, 1, 1000)
	if err != nil {
		return nil, err
	}

	for i := range result.Groups {
		if pointer.StringDeref(result.Groups[i].Name, "") == name {
			return &result.Groups[i], nil
		}
	}
	return nil, nil
}

// CreateGroup creates a new group
func (c *Client) CreateGroup(ctx context.Context, group *Group) (int, error) {
	var result CreateGroupResponse
	if err := c.call(ctx, http.MethodPost, "/api/v1/groups", group, &result); err != nil {
		return 0, err
	}

	return result.GroupID, nil
}

// UpdateGroup updates an existing group
func (c *Client) UpdateGroup(ctx context.Context, groupID int, group *Group) error {
	var result APIResponse
	return c.call(ctx, http.MethodPut, fmt.Sprintf("/api/v1/groups/%d", groupID), group, &result)
}

// DeleteGroup deletes a group
func (c *Client) DeleteGroup(ctx context.Context, groupID int, deleteChildren bool) error {
	query := url.Values{}
	query.Set("deleteChildren", strconv.FormatBool(deleteChildren))

	var result APIResponse
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/groups/%d?%s", groupID, query.Encode()), nil, &result)
}

// AddMonitorToGroup adds a monitor to a group
func (c *Client) AddMonitorToGroup(ctx context.Context, groupID, monitorID int) error {
	var result APIResponse
	return c.call(ctx, http.MethodPost, fmt.Sprintf("/api/v1/groups/%d/children/%d", groupID, monitorID), nil, &result)
}

// RemoveMonitorFromGroup removes a monitor from a group
func (c *Client) RemoveMonitorFromGroup(ctx context.Context, groupID, monitorID int) error {
	var result APIResponse
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/groups/%d/children/%d", groupID, monitorID), nil, &result)
}
