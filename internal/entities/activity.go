// Package entities contains core business entities.
package entities

// Activity is a named extracurricular offering and its ordered participant list.
// MaxParticipants is advisory and never enforced.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// HasParticipant reports whether email is signed up, by exact string match.
func (a Activity) HasParticipant(email string) bool {
	return indexOf(a.Participants, email) >= 0
}

// Clone returns a copy that shares no memory with a.
func (a Activity) Clone() Activity {
	cp := a
	cp.Participants = make([]string, len(a.Participants))
	copy(cp.Participants, a.Participants)
	return cp
}

// WithoutParticipant returns the participants with email removed, preserving order.
func (a Activity) WithoutParticipant(email string) []string {
	idx := indexOf(a.Participants, email)
	if idx < 0 {
		return a.Participants
	}
	res := make([]string, 0, len(a.Participants)-1)
	res = append(res, a.Participants[:idx]...)
	return append(res, a.Participants[idx+1:]...)
}

func indexOf(list []string, target string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}
