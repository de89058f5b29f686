package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"activity-signup/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	selectActivitiesQuery  = `SELECT name, description, schedule, max_participants FROM activities`
	selectActivityQuery    = `SELECT name, description, schedule, max_participants FROM activities WHERE name=$1`
	lockActivityQuery      = `SELECT name, description, schedule, max_participants FROM activities WHERE name=$1 FOR UPDATE`
	selectAllParticipants  = `SELECT activity_name, email FROM activity_participants ORDER BY id`
	selectParticipants     = `SELECT email FROM activity_participants WHERE activity_name=$1 ORDER BY id`
	insertParticipantQuery = `INSERT INTO activity_participants(activity_name, email) VALUES ($1,$2) ON CONFLICT (activity_name, email) DO NOTHING`
	deleteParticipantQuery = `DELETE FROM activity_participants WHERE activity_name=$1 AND email=$2`
	insertSeedQuery        = `
INSERT INTO activities(name, description, schedule, max_participants)
VALUES ($1, $2, $3, $4)
ON CONFLICT (name) DO NOTHING`
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ListActivities returns all activities with participants in signup order.
func (p *Postgres) ListActivities(ctx context.Context) (map[string]entities.Activity, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, selectActivitiesQuery)
	if err != nil {
		return nil, fmt.Errorf("select activities: %w", err)
	}
	defer rows.Close()

	res := make(map[string]entities.Activity)
	for rows.Next() {
		a := entities.Activity{Participants: make([]string, 0)}
		if err := rows.Scan(&a.Name, &a.Description, &a.Schedule, &a.MaxParticipants); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		res[a.Name] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}

	partRows, err := tx.Query(ctx, selectAllParticipants)
	if err != nil {
		return nil, fmt.Errorf("select participants: %w", err)
	}
	defer partRows.Close()
	for partRows.Next() {
		var name, email string
		if err := partRows.Scan(&name, &email); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		a, ok := res[name]
		if !ok {
			continue
		}
		a.Participants = append(a.Participants, email)
		res[name] = a
	}
	if err := partRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return res, nil
}

// GetActivity fetches one activity by exact name.
func (p *Postgres) GetActivity(ctx context.Context, name string) (*entities.Activity, error) {
	return p.readActivity(ctx, p.db, selectActivityQuery, name)
}

// AddParticipant appends email under a row lock on the activity.
func (p *Postgres) AddParticipant(ctx context.Context, name, email string) (*entities.Activity, error) {
	if err := checkText(name, email); err != nil {
		return nil, err
	}

	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := p.readActivity(ctx, tx, lockActivityQuery, name); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, insertParticipantQuery, name, email)
	if err != nil {
		p.log.Errorw("failed to insert participant", "error", err, "activity", name)
		return nil, fmt.Errorf("insert participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, entities.ErrAlreadyRegistered
	}

	a, err := p.readActivity(ctx, tx, selectActivityQuery, name)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("participant added", "activity", name, "participants", len(a.Participants))
	return a, nil
}

// RemoveParticipant deletes email under a row lock on the activity.
func (p *Postgres) RemoveParticipant(ctx context.Context, name, email string) (*entities.Activity, error) {
	if err := checkText(name, email); err != nil {
		return nil, err
	}

	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := p.readActivity(ctx, tx, lockActivityQuery, name); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, deleteParticipantQuery, name, email)
	if err != nil {
		p.log.Errorw("failed to delete participant", "error", err, "activity", name)
		return nil, fmt.Errorf("delete participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, entities.ErrNotRegistered
	}

	a, err := p.readActivity(ctx, tx, selectActivityQuery, name)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("participant removed", "activity", name, "participants", len(a.Participants))
	return a, nil
}

func (p *Postgres) readActivity(ctx context.Context, q querier, query, name string) (*entities.Activity, error) {
	a := entities.Activity{Participants: make([]string, 0)}
	if err := q.QueryRow(ctx, query, name).Scan(&a.Name, &a.Description, &a.Schedule, &a.MaxParticipants); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrActivityNotFound
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}

	rows, err := q.Query(ctx, selectParticipants, name)
	if err != nil {
		return nil, fmt.Errorf("select participants: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		a.Participants = append(a.Participants, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return &a, nil
}

func (p *Postgres) seedActivities(ctx context.Context) (int, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inserted := 0
	for name, a := range p.seed {
		tag, err := tx.Exec(ctx, insertSeedQuery, name, a.Description, a.Schedule, a.MaxParticipants)
		if err != nil {
			return 0, fmt.Errorf("insert seed activity: %w", err)
		}
		if tag.RowsAffected() == 0 {
			continue
		}
		for _, email := range a.Participants {
			if _, err := tx.Exec(ctx, insertParticipantQuery, name, email); err != nil {
				return 0, fmt.Errorf("insert seed participant: %w", err)
			}
		}
		inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}

// checkText rejects values PostgreSQL TEXT cannot store.
func checkText(name, email string) error {
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: activity name contains a NUL byte", entities.ErrInvalidArgument)
	}
	if strings.ContainsRune(email, 0) {
		return fmt.Errorf("%w: email contains a NUL byte", entities.ErrInvalidArgument)
	}
	return nil
}
