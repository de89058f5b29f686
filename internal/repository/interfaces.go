// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"activity-signup/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// ActivityInterface exposes registry operations. Implementations make the
// membership check and the participant update a single atomic step.
type ActivityInterface interface {
	ListActivities(ctx context.Context) (map[string]entities.Activity, error)
	GetActivity(ctx context.Context, name string) (*entities.Activity, error)
	AddParticipant(ctx context.Context, name, email string) (*entities.Activity, error)
	RemoveParticipant(ctx context.Context, name, email string) (*entities.Activity, error)
}
