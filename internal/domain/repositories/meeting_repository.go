package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// MeetingRepository defines persistence operations for registered meetings
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	List(ctx context.Context, limit, offset int) ([]entities.Meeting, error)
	Update(ctx context.Context, meeting *entities.Meeting) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MeetingStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
