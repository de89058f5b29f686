// Package oapi holds the HTTP contract of the service: wire types, the
// server interface and the fiber route binding.
package oapi

// Activity is the wire form of an activity; the name is the map key.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Activities maps activity name to its record.
type Activities map[string]Activity

// MessageResponse confirms a successful mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a human readable failure reason.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationError describes one malformed or missing request field.
type ValidationError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationErrorResponse is returned with 422 Unprocessable Entity.
type ValidationErrorResponse struct {
	Detail []ValidationError `json:"detail"`
}

// PostActivitiesActivityNameSignupParams defines parameters for PostActivitiesActivityNameSignup.
type PostActivitiesActivityNameSignupParams struct {
	Email string `json:"email"`
}

// Error details shared by handlers and tests.
const (
	DetailActivityNotFound  = "Activity not found"
	DetailAlreadyRegistered = "Student already signed up for this activity"
	DetailNotRegistered     = "Student is not signed up for this activity"
	DetailInternal          = "internal error"
)
