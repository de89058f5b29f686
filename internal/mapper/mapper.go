// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"activity-signup/internal/entities"
	oapi "activity-signup/internal/oapi"
)

// ToOAPIActivity maps entities.Activity to transport model. Participants is never nil.
func ToOAPIActivity(a entities.Activity) oapi.Activity {
	participants := make([]string, len(a.Participants))
	copy(participants, a.Participants)

	return oapi.Activity{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
	}
}

// ToOAPIActivities maps a name-keyed set of activities to transport model.
func ToOAPIActivities(src map[string]entities.Activity) oapi.Activities {
	res := make(oapi.Activities, len(src))
	for name, a := range src {
		res[name] = ToOAPIActivity(a)
	}
	return res
}
