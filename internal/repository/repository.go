// Package repository provides factory for repositories.
package repository

import (
	"context"
	"fmt"

	"activity-signup/config"
	"activity-signup/internal/repository/memory"
	"activity-signup/internal/repository/postgres"
	"activity-signup/internal/repository/redis"

	"go.uber.org/zap"
)

// Repository aggregates all persistence interfaces.
type Repository interface {
	LifecycleInterface
	ActivityInterface
}

// New constructs repository backend by name.
func New(ctx context.Context, name string, log *zap.SugaredLogger, cfg *config.Config) (Repository, error) {
	switch name {
	case config.BackendMemory:
		return memory.New(log), nil
	case config.BackendPostgres:
		return postgres.New(ctx, log, cfg), nil
	case config.BackendRedis:
		return redis.New(ctx, log, cfg), nil
	default:
		return nil, fmt.Errorf("unknown repo backend: %s", name)
	}
}
