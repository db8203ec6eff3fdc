package api

import "github.com/joeydtaylor/steeze-activities/pkg/activity"

// ActivityView is the wire shape of one activity.
type ActivityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// ListActivitiesResponse maps activity name to its details.
type ListActivitiesResponse map[string]ActivityView

// MessageResponse confirms a roster change.
type MessageResponse struct {
	Message string `json:"message"`
}

func toActivityView(a activity.Activity) ActivityView {
	participants := a.Participants
	if participants == nil {
		participants = []string{}
	}
	return ActivityView{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
	}
}
