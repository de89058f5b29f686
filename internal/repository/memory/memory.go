// Package memory implements the repository as an in-process map guarded by a mutex.
package memory

import (
	"context"
	"sync"

	"activity-signup/internal/entities"

	"go.uber.org/zap"
)

// Memory holds the activity registry for the lifetime of the process.
type Memory struct {
	log *zap.SugaredLogger

	mu         sync.RWMutex
	activities map[string]entities.Activity
}

// New creates a registry seeded with entities.DefaultActivities.
func New(log *zap.SugaredLogger) *Memory {
	return NewWithActivities(log, entities.DefaultActivities())
}

// NewWithActivities creates a registry holding copies of the given activities.
func NewWithActivities(log *zap.SugaredLogger, seed map[string]entities.Activity) *Memory {
	activities := make(map[string]entities.Activity, len(seed))
	for name, a := range seed {
		a = a.Clone()
		a.Name = name
		activities[name] = a
	}
	return &Memory{
		log:        log.Named("repo.memory"),
		activities: activities,
	}
}

// OnStart is a no-op: the registry is seeded on construction.
func (m *Memory) OnStart(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.log.Infow("memory registry ready", "activities", len(m.activities))
	return nil
}

// OnStop is a no-op; state is dropped with the process.
func (m *Memory) OnStop(_ context.Context) error {
	return nil
}

// ListActivities returns a snapshot of every activity.
func (m *Memory) ListActivities(_ context.Context) (map[string]entities.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make(map[string]entities.Activity, len(m.activities))
	for name, a := range m.activities {
		res[name] = a.Clone()
	}
	return res, nil
}

// GetActivity returns a snapshot of a single activity.
func (m *Memory) GetActivity(_ context.Context, name string) (*entities.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.activities[name]
	if !ok {
		return nil, entities.ErrActivityNotFound
	}
	cp := a.Clone()
	return &cp, nil
}

// AddParticipant appends email to the activity's participants.
func (m *Memory) AddParticipant(_ context.Context, name, email string) (*entities.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.activities[name]
	if !ok {
		return nil, entities.ErrActivityNotFound
	}
	if a.HasParticipant(email) {
		return nil, entities.ErrAlreadyRegistered
	}

	updated := a.Clone()
	updated.Participants = append(updated.Participants, email)
	m.activities[name] = updated

	m.log.Debugw("participant added", "activity", name, "participants", len(updated.Participants))
	cp := updated.Clone()
	return &cp, nil
}

// RemoveParticipant deletes email from the activity's participants, keeping order.
func (m *Memory) RemoveParticipant(_ context.Context, name, email string) (*entities.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.activities[name]
	if !ok {
		return nil, entities.ErrActivityNotFound
	}
	if !a.HasParticipant(email) {
		return nil, entities.ErrNotRegistered
	}

	a.Participants = a.WithoutParticipant(email)
	m.activities[name] = a

	m.log.Debugw("participant removed", "activity", name, "participants", len(a.Participants))
	cp := a.Clone()
	return &cp, nil
}
