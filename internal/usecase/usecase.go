// Package usecase defines the application layer consumed by transports.
package usecase

import (
	"time"

	"activity-signup/internal/repository"
	"activity-signup/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	ActivityUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(log *zap.SugaredLogger, repo repository.Repository, timeout time.Duration) InterfaceUsecase {
	return domain.New(log, repo, timeout)
}
