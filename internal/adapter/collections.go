package adapter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/collectify/collectify/models"
)

type createCollectionRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	TemplateID  int64   `json:"templateId"`
}

type updateCollectionRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (c *Client) CreateCollection(ctx context.Context, name string, description *string, templateID int64) (*models.Collection, error) {
	var collection models.Collection

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(createCollectionRequest{Name: name, Description: description, TemplateID: templateID}).
		SetResult(&collection).
		Post("/api/collections")
	if err != nil {
		return nil, fmt.Errorf("create collection request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return &collection, nil
}

func (c *Client) ListCollections(ctx context.Context, q models.CollectionQuery) ([]models.Collection, error) {
	var collections []models.Collection

	req := c.client.R().
		SetContext(ctx).
		SetResult(&collections)
	if q.TemplateID != nil {
		req.SetQueryParam("templateId", strconv.FormatInt(*q.TemplateID, 10))
	}
	if q.Search != "" {
		req.SetQueryParam("search", q.Search)
	}
	if q.SortDescending {
		req.SetQueryParam("sort", "desc")
	}

	resp, err := req.Get("/api/collections")
	if err != nil {
		return nil, fmt.Errorf("list collections request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return collections, nil
}

func (c *Client) GetCollection(ctx context.Context, id int64, includeItems bool) (*models.Collection, error) {
	var collection models.Collection

	req := c.client.R().
		SetContext(ctx).
		SetResult(&collection)
	if includeItems {
		req.SetQueryParam("includeItems", "true")
	}

	resp, err := req.Get(fmt.Sprintf("/api/collections/%d", id))
	if err != nil {
		return nil, fmt.Errorf("get collection request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return &collection, nil
}

func (c *Client) UpdateCollection(ctx context.Context, id int64, name string, description *string) (*models.Collection, error) {
	var collection models.Collection

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(updateCollectionRequest{Name: name, Description: description}).
		SetResult(&collection).
		Put(fmt.Sprintf("/api/collections/%d", id))
	if err != nil {
		return nil, fmt.Errorf("update collection request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return &collection, nil
}

func (c *Client) DeleteCollection(ctx context.Context, id int64) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/collections/%d", id))
	if err != nil {
		return fmt.Errorf("delete collection request: %w", err)
	}

	return mapHTTPError(resp)
}
