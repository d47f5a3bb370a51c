package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// AnalysisJobRepository handles analysis job data operations
type AnalysisJobRepository struct {
	db *gorm.DB
}

// NewAnalysisJobRepository creates a new analysis job repository
func NewAnalysisJobRepository(db *gorm.DB) *AnalysisJobRepository {
	return &AnalysisJobRepository{db: db}
}

// Create creates a new analysis job
func (r *AnalysisJobRepository) Create(ctx context.Context, job *entities.AnalysisJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// GetByID retrieves an analysis job by ID
func (r *AnalysisJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisJob, error) {
	var job entities.AnalysisJob
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// ListByMeetingID retrieves all analysis jobs for a meeting
func (r *AnalysisJobRepository) ListByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entities.AnalysisJob, error) {
	var jobs []entities.AnalysisJob
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Update updates an analysis job
func (r *AnalysisJobRepository) Update(ctx context.Context, job *entities.AnalysisJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.AnalysisJob{}).
		Where("id = ?", job.ID).
		Save(job).Error
}

// ClaimPending atomically claims the oldest pending or retrying job. The
// conditional update guards against two workers claiming the same job;
// losing the race returns (nil, nil) like an empty queue.
func (r *AnalysisJobRepository) ClaimPending(ctx context.Context) (*entities.AnalysisJob, error) {
	var job entities.AnalysisJob
	err := r.db.WithContext(ctx).
		Where("status IN ?", []entities.AnalysisJobStatus{
			entities.AnalysisJobStatusPending,
			entities.AnalysisJobStatusRetrying,
		}).
		Order("created_at ASC").
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entities.AnalysisJob{}).
		Where("id = ? AND status IN ?", job.ID, []entities.AnalysisJobStatus{
			entities.AnalysisJobStatusPending,
			entities.AnalysisJobStatusRetrying,
		}).
		Updates(map[string]interface{}{
			"status":     entities.AnalysisJobStatusRunning,
			"started_at": now,
			"updated_at": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	job.Status = entities.AnalysisJobStatusRunning
	job.StartedAt = &now
	job.UpdatedAt = now
	return &job, nil
}

// MarkCompleted marks a job as completed
func (r *AnalysisJobRepository) MarkCompleted(ctx context.Context, jobID uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.AnalysisJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":       entities.AnalysisJobStatusCompleted,
			"completed_at": now,
			"updated_at":   now,
		}).Error
}

// MarkFailed marks a job as failed with error message
func (r *AnalysisJobRepository) MarkFailed(ctx context.Context, jobID uuid.UUID, errMsg string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.AnalysisJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":     entities.AnalysisJobStatusFailed,
			"last_error": errMsg,
			"updated_at": now,
		}).Error
}

// IncrementRetry increments the retry count and marks the job for retry
func (r *AnalysisJobRepository) IncrementRetry(ctx context.Context, jobID uuid.UUID, errMsg string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.AnalysisJob{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"retry_count": gorm.Expr("retry_count + 1"),
			"status":      entities.AnalysisJobStatusRetrying,
			"last_error":  errMsg,
			"updated_at":  now,
		}).Error
}

// GetStuckJobs retrieves running jobs whose worker likely died
func (r *AnalysisJobRepository) GetStuckJobs(ctx context.Context, olderThan int, limit int) ([]entities.AnalysisJob, error) {
	var jobs []entities.AnalysisJob
	if limit == 0 {
		limit = 10
	}
	cutoff := time.Now().Add(-time.Duration(olderThan) * time.Minute)
	if err := r.db.WithContext(ctx).
		Where("status = ? AND started_at < ?", entities.AnalysisJobStatusRunning, cutoff).
		Order("started_at ASC").
		Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
