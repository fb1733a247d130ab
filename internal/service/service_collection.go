package service

import (
	"context"

	"github.com/collectify/collectify/internal/logger"
	"github.com/collectify/collectify/internal/store"
	"github.com/collectify/collectify/models"
)

type collectionService struct {
	store store.Store

	logger *logger.Logger
}

func NewCollectionService(store store.Store, logger *logger.Logger) CollectionService {
	return &collectionService{
		store:  store,
		logger: logger,
	}
}

func (c *collectionService) CreateCollection(ctx context.Context, name string, description *string, templateID int64) (*models.Collection, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	// the template must exist before a collection can bind to it
	if _, err := c.store.Templates().GetByID(ctx, templateID); err != nil {
		return nil, err
	}

	collection := &models.Collection{
		Name:        name,
		Description: description,
		TemplateID:  templateID,
	}
	if err := c.store.Collections().Add(ctx, collection); err != nil {
		return nil, err
	}

	c.logger.Info().Str("func", "collectionService.CreateCollection").
		Int64("collectionID", collection.ID).
		Int64("templateID", templateID).
		Msg("collection created")

	return collection, nil
}

func (c *collectionService) ListCollections(ctx context.Context, q models.CollectionQuery) ([]models.Collection, error) {
	return c.store.Collections().List(ctx, q)
}

func (c *collectionService) GetCollection(ctx context.Context, id int64, includeItems bool) (*models.Collection, error) {
	collection, err := c.store.Collections().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !includeItems {
		return collection, nil
	}

	items, err := c.store.Items().ListByCollection(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := attachFieldValues(ctx, c.store.FieldValues(), items); err != nil {
		return nil, err
	}
	collection.Items = items

	return collection, nil
}

func (c *collectionService) UpdateCollection(ctx context.Context, id int64, name string, description *string) (*models.Collection, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	collection, err := c.store.Collections().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	collection.Name = name
	collection.Description = description
	if err := c.store.Collections().Update(ctx, collection); err != nil {
		return nil, err
	}

	return collection, nil
}

func (c *collectionService) DeleteCollection(ctx context.Context, id int64) error {
	uow, err := c.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback()

	if _, err := uow.Collections().GetByID(ctx, id); err != nil {
		return err
	}

	// the self-referencing chain pointers would block the cascade
	if err := uow.Items().ClearLinksForCollection(ctx, id); err != nil {
		return err
	}
	if err := uow.Collections().Remove(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	c.logger.Info().Str("func", "collectionService.DeleteCollection").
		Int64("collectionID", id).
		Msg("collection deleted")

	return nil
}
