package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingAnalysisRecord is the persisted form of a composed MeetingAnalysis.
// Payload holds the full document; the remaining columns are denormalized
// for querying without unpacking the JSON.
type MeetingAnalysisRecord struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"meeting_id"`
	SchemaVersion      string         `gorm:"type:varchar(10);not null" json:"schema_version"`
	DurationSeconds    float64        `json:"duration_seconds"`
	OverallSentiment   float64        `json:"overall_sentiment"`
	ActiveParticipants int            `json:"active_participants"`
	SpeakerCount       int            `json:"speaker_count"`
	Payload            datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	CreatedAt          time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for MeetingAnalysisRecord
func (MeetingAnalysisRecord) TableName() string {
	return "meeting_analyses"
}
