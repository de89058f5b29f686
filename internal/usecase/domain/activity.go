// Package domain contains application services orchestrating the activity registry.
package domain

import (
	"context"
	"errors"
	"fmt"

	"activity-signup/internal/entities"
	"activity-signup/internal/metrics"
)

// Activities returns every activity keyed by name.
func (u *Usecase) Activities(ctx context.Context) (map[string]entities.Activity, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()
	return u.repo.ListActivities(ctx)
}

// Activity returns a single activity by exact name.
func (u *Usecase) Activity(ctx context.Context, name string) (*entities.Activity, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if name == "" {
		return nil, fmt.Errorf("%w: activity name is required", entities.ErrInvalidArgument)
	}
	return u.repo.GetActivity(ctx, name)
}

// SignUp registers email for the activity and returns a confirmation message.
// Capacity is not checked.
func (u *Usecase) SignUp(ctx context.Context, name, email string) (string, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if name == "" {
		metrics.Signups.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return "", fmt.Errorf("%w: activity name is required", entities.ErrInvalidArgument)
	}

	a, err := u.repo.AddParticipant(ctx, name, email)
	if err != nil {
		metrics.Signups.WithLabelValues(outcome(err)).Inc()
		u.log.Infow("signup rejected", "activity", name, "reason", err.Error())
		return "", err
	}

	metrics.Signups.WithLabelValues(metrics.OutcomeOK).Inc()
	if len(a.Participants) > a.MaxParticipants {
		u.log.Warnw("activity over advertised capacity", "activity", name,
			"participants", len(a.Participants), "max_participants", a.MaxParticipants)
	}
	u.log.Infow("signup", "activity", name, "participants", len(a.Participants))
	return fmt.Sprintf("Signed up %s for %s", email, name), nil
}

// Unregister removes email from the activity and returns a confirmation message.
func (u *Usecase) Unregister(ctx context.Context, name, email string) (string, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if name == "" {
		metrics.Unregistrations.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return "", fmt.Errorf("%w: activity name is required", entities.ErrInvalidArgument)
	}

	a, err := u.repo.RemoveParticipant(ctx, name, email)
	if err != nil {
		metrics.Unregistrations.WithLabelValues(outcome(err)).Inc()
		u.log.Infow("unregister rejected", "activity", name, "reason", err.Error())
		return "", err
	}

	metrics.Unregistrations.WithLabelValues(metrics.OutcomeOK).Inc()
	u.log.Infow("unregister", "activity", name, "participants", len(a.Participants))
	return fmt.Sprintf("Unregistered %s from %s", email, name), nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, entities.ErrActivityNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, entities.ErrAlreadyRegistered):
		return metrics.OutcomeAlreadyRegistered
	case errors.Is(err, entities.ErrNotRegistered):
		return metrics.OutcomeNotRegistered
	case errors.Is(err, entities.ErrInvalidArgument):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
