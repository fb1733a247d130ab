package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/collectify/collectify/internal/logger"
	"github.com/collectify/collectify/internal/store"
	"github.com/collectify/collectify/models"
)

type templateService struct {
	store store.Store

	logger *logger.Logger
}

func NewTemplateService(store store.Store, logger *logger.Logger) TemplateService {
	return &templateService{
		store:  store,
		logger: logger,
	}
}

func (t *templateService) CreateTemplate(ctx context.Context, name string, fields []models.TemplateFieldInput) (*models.Template, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	for _, field := range fields {
		if err := validateFieldInput(field); err != nil {
			return nil, err
		}
	}

	uow, err := t.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	template := &models.Template{Name: name}
	if err := uow.Templates().Add(ctx, template); err != nil {
		return nil, err
	}

	for _, field := range fields {
		definition := models.FieldDefinition{
			Name:       field.Name,
			FieldType:  field.FieldType,
			IsList:     field.IsList,
			TemplateID: template.ID,
		}
		if err := uow.FieldDefinitions().Add(ctx, &definition); err != nil {
			return nil, err
		}
		template.Fields = append(template.Fields, definition)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	t.logger.Info().Str("func", "templateService.CreateTemplate").
		Int64("templateID", template.ID).
		Int("fields", len(template.Fields)).
		Msg("template created")

	return template, nil
}

func (t *templateService) AddField(ctx context.Context, templateID int64, field models.TemplateFieldInput) (*models.FieldDefinition, error) {
	if err := validateFieldInput(field); err != nil {
		return nil, err
	}

	// existence check; also yields ErrTemplateNotFound for the caller
	if _, err := t.store.Templates().GetByID(ctx, templateID); err != nil {
		return nil, err
	}

	definition := &models.FieldDefinition{
		Name:       field.Name,
		FieldType:  field.FieldType,
		IsList:     field.IsList,
		TemplateID: templateID,
	}
	if err := t.store.FieldDefinitions().Add(ctx, definition); err != nil {
		return nil, err
	}

	return definition, nil
}

func (t *templateService) RemoveField(ctx context.Context, fieldDefinitionID int64) error {
	err := t.store.FieldDefinitions().Remove(ctx, fieldDefinitionID)
	if errors.Is(err, store.ErrFieldDefinitionNotFound) {
		// removing an absent definition is not an error
		return nil
	}
	return err
}

func (t *templateService) GetTemplate(ctx context.Context, id int64, includeFields bool) (*models.Template, error) {
	if includeFields {
		return t.store.Templates().GetWithFields(ctx, id)
	}
	return t.store.Templates().GetByID(ctx, id)
}

func (t *templateService) ListTemplates(ctx context.Context, q models.TemplateQuery) ([]models.Template, error) {
	return t.store.Templates().List(ctx, q)
}

func (t *templateService) DeleteTemplate(ctx context.Context, id int64) error {
	count, err := t.store.Collections().CountByTemplate(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d collections", store.ErrTemplateInUse, count)
	}

	if err := t.store.Templates().Remove(ctx, id); err != nil {
		return err
	}

	t.logger.Info().Str("func", "templateService.DeleteTemplate").
		Int64("templateID", id).
		Msg("template deleted")

	return nil
}
