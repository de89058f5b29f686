package usecase

import (
	"context"

	"activity-signup/internal/entities"
)

// ActivityUsecaseInterface abstracts activity registry operations for delivery layer.
type ActivityUsecaseInterface interface {
	Activities(ctx context.Context) (map[string]entities.Activity, error)
	Activity(ctx context.Context, name string) (*entities.Activity, error)
	SignUp(ctx context.Context, name, email string) (string, error)
	Unregister(ctx context.Context, name, email string) (string, error)
}
