package entities

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AnalysisJobStatus represents the status of an analysis job
type AnalysisJobStatus string

const (
	AnalysisJobStatusPending   AnalysisJobStatus = "pending"   // Waiting to be picked up by a worker
	AnalysisJobStatusRunning   AnalysisJobStatus = "running"   // Claimed by a worker, pipeline running
	AnalysisJobStatusCompleted AnalysisJobStatus = "completed" // Analysis persisted
	AnalysisJobStatusFailed    AnalysisJobStatus = "failed"    // Pipeline failed
	AnalysisJobStatusRetrying  AnalysisJobStatus = "retrying"  // Retrying after failure
	AnalysisJobStatusCancelled AnalysisJobStatus = "cancelled" // Job was cancelled
)

// AnalysisJob represents one queued analysis run for a meeting
type AnalysisJob struct {
	ID             uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID      uuid.UUID         `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Status         AnalysisJobStatus `json:"status" gorm:"type:varchar(50);not null;index;default:'pending'"`
	ArtifactPrefix string            `json:"artifact_prefix" gorm:"type:text;not null"`

	// Processing details
	StartedAt   *time.Time `json:"started_at,omitempty" gorm:"type:timestamp"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"type:timestamp"`
	RetryCount  int        `json:"retry_count" gorm:"type:integer;default:0"`
	MaxRetries  int        `json:"max_retries" gorm:"type:integer;default:3"`
	LastError   *string    `json:"last_error,omitempty" gorm:"type:text"`

	// Metadata
	Metadata AnalysisJobMetadata `json:"metadata,omitempty" gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// AnalysisJobMetadata stores additional metadata for analysis jobs
type AnalysisJobMetadata struct {
	SegmentCount     int                    `json:"segment_count,omitempty"`
	LogEntryCount    int                    `json:"log_entry_count,omitempty"`
	SpeakerCount     int                    `json:"speaker_count,omitempty"`
	ProcessingTimeMs int64                  `json:"processing_time_ms,omitempty"`
	ErrorDetails     map[string]interface{} `json:"error_details,omitempty"`
}

// Scan implements sql.Scanner interface for GORM
func (m *AnalysisJobMetadata) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, &m)
}

// Value implements driver.Valuer interface for GORM
func (m AnalysisJobMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// NewAnalysisJob creates a new pending analysis job
func NewAnalysisJob(meetingID uuid.UUID, artifactPrefix string) *AnalysisJob {
	return &AnalysisJob{
		ID:             uuid.New(),
		MeetingID:      meetingID,
		Status:         AnalysisJobStatusPending,
		ArtifactPrefix: artifactPrefix,
		RetryCount:     0,
		MaxRetries:     3,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

// IsRetryable checks if job can be retried
func (j *AnalysisJob) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries && j.Status == AnalysisJobStatusFailed
}

// MarkAsRunning marks job as claimed by a worker
func (j *AnalysisJob) MarkAsRunning() {
	j.Status = AnalysisJobStatusRunning
	now := time.Now()
	j.StartedAt = &now
	j.UpdatedAt = now
}

// MarkAsCompleted marks job as completed successfully
func (j *AnalysisJob) MarkAsCompleted() {
	j.Status = AnalysisJobStatusCompleted
	now := time.Now()
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkAsFailed marks job as failed with error message
func (j *AnalysisJob) MarkAsFailed(errMsg string) {
	j.Status = AnalysisJobStatusFailed
	j.LastError = &errMsg
	j.UpdatedAt = time.Now()
}

// IncrementRetry increments retry count and marks for retry
func (j *AnalysisJob) IncrementRetry(errMsg string) {
	j.RetryCount++
	j.Status = AnalysisJobStatusRetrying
	j.LastError = &errMsg
	j.UpdatedAt = time.Now()
}

// MarkAsCancelled marks job as cancelled
func (j *AnalysisJob) MarkAsCancelled() {
	j.Status = AnalysisJobStatusCancelled
	now := time.Now()
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// TableName specifies the table name for GORM
func (AnalysisJob) TableName() string {
	return "analysis_jobs"
}
