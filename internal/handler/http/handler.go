// Package http exposes the collection-management services over a JSON REST
// API.
package http

import (
	"github.com/collectify/collectify/internal/logger"
	"github.com/collectify/collectify/internal/service"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
