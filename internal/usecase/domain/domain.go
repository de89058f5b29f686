package domain

import (
	"context"
	"time"

	"activity-signup/internal/repository"

	"go.uber.org/zap"
)

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	log     *zap.SugaredLogger
	repo    repository.Repository
	timeout time.Duration
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	repo repository.Repository,
	timeout time.Duration,
) *Usecase {
	return &Usecase{
		log:     log,
		repo:    repo,
		timeout: timeout,
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
