package service

import (
	"github.com/collectify/collectify/internal/logger"
	"github.com/collectify/collectify/internal/store"
)

// Services bundles the application services handed to the HTTP layer.
type Services struct {
	TemplateService   TemplateService
	CollectionService CollectionService
	ItemService       ItemService
}

func NewServices(store store.Store, logger *logger.Logger) *Services {
	return &Services{
		TemplateService:   NewTemplateService(store, logger),
		CollectionService: NewCollectionService(store, logger),
		ItemService:       NewItemService(store, logger),
	}
}
