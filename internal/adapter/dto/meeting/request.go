package meeting

import (
	"time"
)

// ParticipantInput is one declared participant in a registration request
type ParticipantInput struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Role string `json:"role,omitempty" validate:"omitempty,max=255"`
}

// RegisterMeetingRequest represents the request to register a meeting
type RegisterMeetingRequest struct {
	Title           string             `json:"title" validate:"required,min=1,max=255"`
	Platform        string             `json:"platform" validate:"required,oneof=zoom teams meet webex other"`
	Date            *time.Time         `json:"date,omitempty"`
	DurationSeconds *float64           `json:"duration_seconds,omitempty" validate:"omitempty,min=0"`
	// TotalParticipants is the headcount the platform reported; it may
	// exceed the named participant list. Zero means not reported.
	TotalParticipants int                `json:"total_participants,omitempty" validate:"omitempty,min=0"`
	Participants      []ParticipantInput `json:"participants" validate:"dive"`
	ArtifactPrefix    string             `json:"artifact_prefix" validate:"required,min=1,max=1024"`
}

// ResolvedTotalParticipants falls back to the named list length when the
// platform did not report a headcount.
func (r RegisterMeetingRequest) ResolvedTotalParticipants() int {
	if r.TotalParticipants > 0 {
		return r.TotalParticipants
	}
	return len(r.Participants)
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}
