package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"activity-signup/internal/entities"

	goredis "github.com/redis/go-redis/v9"
)

const (
	fieldDescription     = "description"
	fieldSchedule        = "schedule"
	fieldMaxParticipants = "max_participants"
)

var errRetriesExhausted = errors.New("redis transaction retries exhausted")

// ListActivities returns every activity listed in the index set.
func (r *Redis) ListActivities(ctx context.Context) (map[string]entities.Activity, error) {
	names, err := r.client.SMembers(ctx, activitiesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list activity names: %w", err)
	}

	metas := make([]*goredis.MapStringStringCmd, len(names))
	parts := make([]*goredis.StringSliceCmd, len(names))
	_, err = r.client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		for i, name := range names {
			metas[i] = pipe.HGetAll(ctx, metaKey(name))
			parts[i] = pipe.LRange(ctx, participantsKey(name), 0, -1)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read activities: %w", err)
	}

	res := make(map[string]entities.Activity, len(names))
	for i, name := range names {
		a, err := buildActivity(name, metas[i].Val(), parts[i].Val())
		if err != nil {
			if errors.Is(err, entities.ErrActivityNotFound) {
				continue
			}
			return nil, err
		}
		res[name] = *a
	}
	return res, nil
}

// GetActivity fetches one activity by exact name.
func (r *Redis) GetActivity(ctx context.Context, name string) (*entities.Activity, error) {
	var (
		meta  *goredis.MapStringStringCmd
		parts *goredis.StringSliceCmd
	)
	_, err := r.client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		meta = pipe.HGetAll(ctx, metaKey(name))
		parts = pipe.LRange(ctx, participantsKey(name), 0, -1)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return buildActivity(name, meta.Val(), parts.Val())
}

// AddParticipant appends email inside a WATCH/MULTI transaction on the participant list.
func (r *Redis) AddParticipant(ctx context.Context, name, email string) (*entities.Activity, error) {
	var res *entities.Activity
	err := r.watch(ctx, name, func(tx *goredis.Tx) error {
		a, err := readActivity(ctx, tx, name)
		if err != nil {
			return err
		}
		if a.HasParticipant(email) {
			return entities.ErrAlreadyRegistered
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.RPush(ctx, participantsKey(name), email)
			return nil
		})
		if err != nil {
			return err
		}
		a.Participants = append(a.Participants, email)
		res = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Infow("participant added", "activity", name, "participants", len(res.Participants))
	return res, nil
}

// RemoveParticipant deletes email inside a WATCH/MULTI transaction on the participant list.
func (r *Redis) RemoveParticipant(ctx context.Context, name, email string) (*entities.Activity, error) {
	var res *entities.Activity
	err := r.watch(ctx, name, func(tx *goredis.Tx) error {
		a, err := readActivity(ctx, tx, name)
		if err != nil {
			return err
		}
		if !a.HasParticipant(email) {
			return entities.ErrNotRegistered
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.LRem(ctx, participantsKey(name), 1, email)
			return nil
		})
		if err != nil {
			return err
		}
		a.Participants = a.WithoutParticipant(email)
		res = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Infow("participant removed", "activity", name, "participants", len(res.Participants))
	return res, nil
}

// watch runs fn optimistically, retrying when another client touched the watched keys.
func (r *Redis) watch(ctx context.Context, name string, fn func(tx *goredis.Tx) error) error {
	attempts := r.cfg.MaxRetries
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		err := r.client.Watch(ctx, fn, metaKey(name), participantsKey(name))
		if errors.Is(err, goredis.TxFailedErr) {
			r.log.Debugw("redis transaction conflict, retrying", "activity", name, "attempt", i+1)
			continue
		}
		return err
	}
	return fmt.Errorf("%w: activity %q", errRetriesExhausted, name)
}

func readActivity(ctx context.Context, tx *goredis.Tx, name string) (*entities.Activity, error) {
	meta, err := tx.HGetAll(ctx, metaKey(name)).Result()
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}
	parts, err := tx.LRange(ctx, participantsKey(name), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("get participants: %w", err)
	}
	return buildActivity(name, meta, parts)
}

func buildActivity(name string, meta map[string]string, participants []string) (*entities.Activity, error) {
	if len(meta) == 0 {
		return nil, entities.ErrActivityNotFound
	}
	maxParticipants, err := strconv.Atoi(meta[fieldMaxParticipants])
	if err != nil {
		return nil, fmt.Errorf("parse max_participants for %q: %w", name, err)
	}
	if participants == nil {
		participants = make([]string, 0)
	}
	return &entities.Activity{
		Name:            name,
		Description:     meta[fieldDescription],
		Schedule:        meta[fieldSchedule],
		MaxParticipants: maxParticipants,
		Participants:    participants,
	}, nil
}

func metaFields(a entities.Activity) map[string]any {
	return map[string]any{
		fieldDescription:     a.Description,
		fieldSchedule:        a.Schedule,
		fieldMaxParticipants: strconv.Itoa(a.MaxParticipants),
	}
}
