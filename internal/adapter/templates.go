package adapter

import (
	"context"
	"fmt"

	"github.com/collectify/collectify/models"
)

type createTemplateRequest struct {
	Name   string                      `json:"name"`
	Fields []models.TemplateFieldInput `json:"fields,omitempty"`
}

func (c *Client) CreateTemplate(ctx context.Context, name string, fields []models.TemplateFieldInput) (*models.Template, error) {
	var template models.Template

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(createTemplateRequest{Name: name, Fields: fields}).
		SetResult(&template).
		Post("/api/templates")
	if err != nil {
		return nil, fmt.Errorf("create template request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return &template, nil
}

func (c *Client) AddField(ctx context.Context, templateID int64, field models.TemplateFieldInput) (*models.FieldDefinition, error) {
	var definition models.FieldDefinition

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(field).
		SetResult(&definition).
		Post(fmt.Sprintf("/api/templates/%d/fields", templateID))
	if err != nil {
		return nil, fmt.Errorf("add field request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return &definition, nil
}

func (c *Client) RemoveField(ctx context.Context, fieldDefinitionID int64) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/fields/%d", fieldDefinitionID))
	if err != nil {
		return fmt.Errorf("remove field request: %w", err)
	}

	return mapHTTPError(resp)
}

func (c *Client) GetTemplate(ctx context.Context, id int64, includeFields bool) (*models.Template, error) {
	var template models.Template

	req := c.client.R().
		SetContext(ctx).
		SetResult(&template)
	if includeFields {
		req.SetQueryParam("includeFields", "true")
	}

	resp, err := req.Get(fmt.Sprintf("/api/templates/%d", id))
	if err != nil {
		return nil, fmt.Errorf("get template request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return &template, nil
}

func (c *Client) ListTemplates(ctx context.Context, q models.TemplateQuery) ([]models.Template, error) {
	var templates []models.Template

	req := c.client.R().
		SetContext(ctx).
		SetResult(&templates)
	if q.Search != "" {
		req.SetQueryParam("search", q.Search)
	}
	if q.SortDescending {
		req.SetQueryParam("sort", "desc")
	}

	resp, err := req.Get("/api/templates")
	if err != nil {
		return nil, fmt.Errorf("list templates request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return templates, nil
}

func (c *Client) DeleteTemplate(ctx context.Context, id int64) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/templates/%d", id))
	if err != nil {
		return fmt.Errorf("delete template request: %w", err)
	}

	return mapHTTPError(resp)
}
