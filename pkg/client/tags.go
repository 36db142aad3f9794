package client

import (
	"context"
	"fmt"
	"net/http"

	"k8s.io/utils/pointer"
)

// ListTags lists all tags
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var result ListTagsResponse
	if err := c.call(ctx, http.MethodGet, "/api/v1/tags", nil, &result); err != nil {
		return nil, err
	}

	return result.Tags, nil
}

// GetTag gets a single tag by ID
func (c *Client) GetTag(ctx context.Context, tagID int) (*Tag, error) {
	var result GetTagResponse
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/v1/tags/%d", tagID), nil, &result); err != nil {
		return nil, err
	}

	return &result.Tag, nil
}

// FindTagByName returns the tag with the given name, or nil
func (c *Client) FindTagByName(ctx context.Context, name string) (*Tag, error) {
	tags, err := c.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tags {
		if pointer.StringDeref(tags[i].Name, "") == name {
			return &tags[i], nil
		}
	}
	return nil, nil
}

// CreateTag creates a new tag
func (c *Client) CreateTag(ctx context.Context, tag *Tag) (*Tag, error) {
	var result CreateTagResponse
	if err := c.call(ctx, http.MethodPost, "/api/v1/tags", tag, &result); err != nil {
		return nil, err
	}

	return &result.Tag, nil
}

// UpdateTag updates an existing tag
func (c *Client) UpdateTag(ctx context.Context, tagID int, tag *Tag) (*Tag, error) {
	var result GetTagResponse
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/api/v1/tags/%d", tagID), tag, &result); err != nil {
		return nil, err
	}

	return &result.Tag, nil
}

// DeleteTag deletes a tag
func (c *Client) DeleteTag(ctx context.Context, tagID int) error {
	var result APIResponse
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/tags/%d", tagID), nil, &result)
}

// FindOrCreateTag finds a tag by name or creates it if it doesn't exist
func (c *Client) FindOrCreateTag(ctx context.Context, name, color string) (*Tag, error) {
	tag, err := c.FindTagByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if tag != nil {
		return tag, nil
	}

	return c.CreateTag(ctx, &Tag{
		Name:  pointer.String(name),
		Color: pointer.String(color),
	})
}
