// Package redis implements the repository on top of Redis. Each activity is a
// metadata hash plus a list of participants; names are kept in a set.
package redis

import (
	"context"
	"fmt"

	"activity-signup/config"
	"activity-signup/internal/entities"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	activitiesKey = "activities"
	keyPrefix     = "activity:"
)

// Redis wraps a go-redis client and configuration.
type Redis struct {
	baseCtx context.Context
	log     *zap.SugaredLogger
	client  *goredis.Client
	cfg     config.RedisConfig
	seed    map[string]entities.Activity
}

// New creates a Redis repository instance seeded with entities.DefaultActivities.
func New(ctx context.Context, log *zap.SugaredLogger, cfg *config.Config) *Redis {
	return &Redis{
		baseCtx: ctx,
		log:     log.Named("repo.redis"),
		cfg:     cfg.Redis,
		seed:    entities.DefaultActivities(),
	}
}

// OnStart connects to Redis and inserts seed activities that are not present yet.
func (r *Redis) OnStart(ctx context.Context) error {
	client := goredis.NewClient(&goredis.Options{
		Addr:        r.cfg.Address,
		Password:    r.cfg.Password,
		DB:          r.cfg.DB,
		DialTimeout: r.cfg.DialTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis ping failed: %w", err)
	}
	r.client = client

	inserted, err := r.seedActivities(ctx)
	if err != nil {
		return err
	}

	r.log.Infow("redis ready", "address", r.cfg.Address, "db", r.cfg.DB, "seeded", inserted)
	return nil
}

// OnStop closes the Redis connection.
func (r *Redis) OnStop(_ context.Context) error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// seedActivities writes every seed activity whose metadata hash is missing.
// Index membership and activity data are written in one MULTI; an activity that
// already has metadata only gets its index entry restored.
func (r *Redis) seedActivities(ctx context.Context) (int, error) {
	inserted := 0
	for name, a := range r.seed {
		seeded := false
		err := r.watch(ctx, name, func(tx *goredis.Tx) error {
			exists, err := tx.Exists(ctx, metaKey(name)).Result()
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
				pipe.SAdd(ctx, activitiesKey, name)
				if exists > 0 {
					return nil
				}
				pipe.Del(ctx, participantsKey(name))
				pipe.HSet(ctx, metaKey(name), metaFields(a))
				if len(a.Participants) > 0 {
					pipe.RPush(ctx, participantsKey(name), toAny(a.Participants)...)
				}
				return nil
			})
			seeded = err == nil && exists == 0
			return err
		})
		if err != nil {
			return 0, fmt.Errorf("seed activity %q: %w", name, err)
		}
		if seeded {
			inserted++
		}
	}
	return inserted, nil
}

func metaKey(name string) string {
	return keyPrefix + name + ":meta"
}

func participantsKey(name string) string {
	return keyPrefix + name + ":participants"
}

func toAny(list []string) []any {
	res := make([]any, 0, len(list))
	for _, v := range list {
		res = append(res, v)
	}
	return res
}
