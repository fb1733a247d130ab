package adapter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/collectify/collectify/models"
)

type itemRequest struct {
	FieldValues    []models.ItemFieldValueInput `json:"fieldValues,omitempty"`
	PreviousItemID *int64                       `json:"previousItemId,omitempty"`
	NextItemID     *int64                       `json:"nextItemId,omitempty"`
}

func (c *Client) CreateItem(ctx context.Context, collectionID int64, values []models.ItemFieldValueInput, previousItemID, nextItemID *int64) (*models.Item, error) {
	var item models.Item

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(itemRequest{FieldValues: values, PreviousItemID: previousItemID, NextItemID: nextItemID}).
		SetResult(&item).
		Post(fmt.Sprintf("/api/collections/%d/items", collectionID))
	if err != nil {
		return nil, fmt.Errorf("create item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return &item, nil
}

func (c *Client) UpdateItem(ctx context.Context, id int64, values []models.ItemFieldValueInput, previousItemID, nextItemID *int64) (*models.Item, error) {
	var item models.Item

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(itemRequest{FieldValues: values, PreviousItemID: previousItemID, NextItemID: nextItemID}).
		SetResult(&item).
		Put(fmt.Sprintf("/api/items/%d", id))
	if err != nil {
		return nil, fmt.Errorf("update item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return &item, nil
}

type removeFieldValueRequest struct {
	FieldDefinitionID int64 `json:"fieldDefinitionId"`
	Value             any   `json:"value"`
}

func (c *Client) RemoveFieldValue(ctx context.Context, itemID, fieldDefinitionID int64, raw any) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(removeFieldValueRequest{FieldDefinitionID: fieldDefinitionID, Value: raw}).
		Delete(fmt.Sprintf("/api/items/%d/values", itemID))
	if err != nil {
		return fmt.Errorf("remove field value request: %w", err)
	}

	return mapHTTPError(resp)
}

func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/items/%d", id))
	if err != nil {
		return fmt.Errorf("delete item request: %w", err)
	}

	return mapHTTPError(resp)
}

func (c *Client) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&item).
		Get(fmt.Sprintf("/api/items/%d", id))
	if err != nil {
		return nil, fmt.Errorf("get item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return &item, nil
}

func (c *Client) GetItemsForCollection(ctx context.Context, collectionID int64, q models.ItemQuery) ([]models.Item, error) {
	var items []models.Item

	req := c.client.R().
		SetContext(ctx).
		SetResult(&items)
	if q.Search != "" {
		req.SetQueryParam("search", q.Search)
	}
	if q.SortByFieldDefinitionID != nil {
		req.SetQueryParam("sortBy", strconv.FormatInt(*q.SortByFieldDefinitionID, 10))
	}
	if q.Descending {
		req.SetQueryParam("sort", "desc")
	}

	resp, err := req.Get(fmt.Sprintf("/api/collections/%d/items", collectionID))
	if err != nil {
		return nil, fmt.Errorf("list items request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return items, nil
}
