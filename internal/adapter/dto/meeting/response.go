package meeting

import (
	"time"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// MeetingResponse represents a registered meeting
type MeetingResponse struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Platform          string     `json:"platform"`
	Date              *time.Time `json:"date,omitempty"`
	Status            string     `json:"status"`
	DurationSeconds   *float64   `json:"duration_seconds,omitempty"`
	TotalParticipants int        `json:"total_participants"`
	ArtifactPrefix    string     `json:"artifact_prefix"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// FromEntity maps a meeting entity to its response shape
func FromEntity(m *entities.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:                m.ID.String(),
		Title:             m.Title,
		Platform:          m.Platform,
		Date:              m.Date,
		Status:            string(m.Status),
		DurationSeconds:   m.DurationSeconds,
		TotalParticipants: m.TotalParticipants,
		ArtifactPrefix:    m.ArtifactPrefix,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// AnalysisJobResponse describes a queued or finished analysis job
type AnalysisJobResponse struct {
	ID          string     `json:"id"`
	MeetingID   string     `json:"meeting_id"`
	Status      string     `json:"status"`
	RetryCount  int        `json:"retry_count"`
	LastError   *string    `json:"last_error,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// JobFromEntity maps an analysis job entity to its response shape
func JobFromEntity(j *entities.AnalysisJob) AnalysisJobResponse {
	return AnalysisJobResponse{
		ID:          j.ID.String(),
		MeetingID:   j.MeetingID.String(),
		Status:      string(j.Status),
		RetryCount:  j.RetryCount,
		LastError:   j.LastError,
		StartedAt:   j.StartedAt,
		CompletedAt: j.CompletedAt,
		CreatedAt:   j.CreatedAt,
	}
}
