package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// AnalysisRepository defines persistence operations for analysis documents
type AnalysisRepository interface {
	Save(ctx context.Context, record *entities.MeetingAnalysisRecord) error
	GetByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingAnalysisRecord, error)
	DeleteByMeetingID(ctx context.Context, meetingID uuid.UUID) error
}

// AnalysisJobRepository defines persistence operations for analysis jobs
type AnalysisJobRepository interface {
	Create(ctx context.Context, job *entities.AnalysisJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisJob, error)
	ListByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entities.AnalysisJob, error)
	Update(ctx context.Context, job *entities.AnalysisJob) error
	ClaimPending(ctx context.Context) (*entities.AnalysisJob, error)
	MarkCompleted(ctx context.Context, jobID uuid.UUID) error
	MarkFailed(ctx context.Context, jobID uuid.UUID, errMsg string) error
	IncrementRetry(ctx context.Context, jobID uuid.UUID, errMsg string) error
	GetStuckJobs(ctx context.Context, olderThan int, limit int) ([]entities.AnalysisJob, error)
}
