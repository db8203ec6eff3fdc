// Package activity holds the extracurricular activity roster and the
// in-memory registry that signup and unregister operate on.
package activity

import "errors"

var (
	// ErrActivityNotFound is returned when no activity has the requested name.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadySignedUp is returned when the email is already on the roster.
	ErrAlreadySignedUp = errors.New("student is already signed up")
	// ErrNotSignedUp is returned when the email is not on the roster.
	ErrNotSignedUp = errors.New("student is not signed up for this activity")
)

// Activity is a named offering with a schedule, an informational capacity and
// an ordered roster of unique participant emails.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// HasParticipant reports whether email is on the roster.
func (a Activity) HasParticipant(email string) bool {
	return indexOf(a.Participants, email) >= 0
}

func (a Activity) clone() Activity {
	out := a
	out.Participants = append(make([]string, 0, len(a.Participants)), a.Participants...)
	return out
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
