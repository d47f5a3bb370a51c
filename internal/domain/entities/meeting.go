package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingStatus represents the analysis lifecycle of a registered meeting
type MeetingStatus string

const (
	MeetingStatusRegistered MeetingStatus = "registered"
	MeetingStatusAnalyzing  MeetingStatus = "analyzing"
	MeetingStatusAnalyzed   MeetingStatus = "analyzed"
	MeetingStatusFailed     MeetingStatus = "failed"
)

// Meeting represents a recorded meeting registered for analysis
type Meeting struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title             string         `gorm:"type:varchar(255);not null" json:"title"`
	Platform          string         `gorm:"type:varchar(50);not null;index" json:"platform"`
	Date              *time.Time     `gorm:"index" json:"date,omitempty"`
	Status            MeetingStatus  `gorm:"type:varchar(20);not null;default:'registered';index" json:"status"`
	DurationSeconds   *float64       `json:"duration_seconds,omitempty"` // declared by the platform
	TotalParticipants int            `gorm:"default:0" json:"total_participants"`
	Participants      datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"participants,omitempty"`
	ArtifactPrefix    string         `gorm:"type:text;not null" json:"artifact_prefix"`
	Metadata          datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`
	CreatedAt         time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// IsAnalyzed checks if the meeting has a completed analysis
func (m *Meeting) IsAnalyzed() bool {
	return m.Status == MeetingStatusAnalyzed
}

// MarkAnalyzing marks the meeting as having an analysis in flight
func (m *Meeting) MarkAnalyzing() {
	m.Status = MeetingStatusAnalyzing
	m.UpdatedAt = time.Now()
}

// MarkAnalyzed marks the meeting as analyzed
func (m *Meeting) MarkAnalyzed() {
	m.Status = MeetingStatusAnalyzed
	m.UpdatedAt = time.Now()
}

// MarkFailed marks the last analysis attempt as failed
func (m *Meeting) MarkFailed() {
	m.Status = MeetingStatusFailed
	m.UpdatedAt = time.Now()
}
