// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	api "activity-signup/internal/oapi"
	"activity-signup/internal/usecase"

	"go.uber.org/zap"
)

var _ api.ServerInterface = (*Handler)(nil)

// Handler implements oapi.ServerInterface using service layer interfaces.
type Handler struct {
	log       *zap.SugaredLogger
	uc        usecase.InterfaceUsecase
	indexPath string
}

// NewHandler constructs an HTTP server with service dependencies.
// indexPath is the redirect target for the root path.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase, indexPath string) *Handler {
	return &Handler{
		log:       log,
		uc:        usecase,
		indexPath: indexPath,
	}
}
