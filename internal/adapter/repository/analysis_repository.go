package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-insights/internal/domain/repositories"
)

type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository backed by GORM
func NewAnalysisRepository(db *gorm.DB) repo.AnalysisRepository {
	return &analysisRepository{db: db}
}

// Save upserts the analysis document for a meeting. Re-running a pipeline
// replaces the previous document rather than stacking a second row.
func (r *analysisRepository) Save(ctx context.Context, record *entities.MeetingAnalysisRecord) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	q := `INSERT INTO meeting_analyses (id, meeting_id, schema_version, duration_seconds, overall_sentiment, active_participants, speaker_count, payload, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?::jsonb, ?, ?)
        ON CONFLICT (meeting_id) DO UPDATE SET schema_version = EXCLUDED.schema_version, duration_seconds = EXCLUDED.duration_seconds, overall_sentiment = EXCLUDED.overall_sentiment, active_participants = EXCLUDED.active_participants, speaker_count = EXCLUDED.speaker_count, payload = EXCLUDED.payload, updated_at = NOW()`

	now := time.Now()
	return r.db.WithContext(ctx).Exec(q,
		record.ID, record.MeetingID, record.SchemaVersion,
		record.DurationSeconds, record.OverallSentiment,
		record.ActiveParticipants, record.SpeakerCount,
		string(record.Payload), now, now).Error
}

// GetByMeetingID retrieves the analysis document for a meeting
func (r *analysisRepository) GetByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingAnalysisRecord, error) {
	row := r.db.WithContext(ctx).Raw(
		`SELECT id, meeting_id, schema_version, duration_seconds, overall_sentiment, active_participants, speaker_count, payload::text AS payload, created_at, updated_at
         FROM meeting_analyses WHERE meeting_id = ? LIMIT 1`, meetingID).Row()

	var res struct {
		ID                 uuid.UUID
		MeetingID          uuid.UUID
		SchemaVersion      string
		DurationSeconds    float64
		OverallSentiment   float64
		ActiveParticipants int
		SpeakerCount       int
		Payload            string
		CreatedAt          time.Time
		UpdatedAt          time.Time
	}
	err := row.Scan(&res.ID, &res.MeetingID, &res.SchemaVersion,
		&res.DurationSeconds, &res.OverallSentiment,
		&res.ActiveParticipants, &res.SpeakerCount,
		&res.Payload, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	// Reject rows whose payload somehow stopped being valid JSON.
	if !json.Valid([]byte(res.Payload)) {
		return nil, errors.New("stored analysis payload is not valid JSON")
	}

	return &entities.MeetingAnalysisRecord{
		ID:                 res.ID,
		MeetingID:          res.MeetingID,
		SchemaVersion:      res.SchemaVersion,
		DurationSeconds:    res.DurationSeconds,
		OverallSentiment:   res.OverallSentiment,
		ActiveParticipants: res.ActiveParticipants,
		SpeakerCount:       res.SpeakerCount,
		Payload:            []byte(res.Payload),
		CreatedAt:          res.CreatedAt,
		UpdatedAt:          res.UpdatedAt,
	}, nil
}

// DeleteByMeetingID removes the analysis document for a meeting
func (r *analysisRepository) DeleteByMeetingID(ctx context.Context, meetingID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM meeting_analyses WHERE meeting_id = ?`, meetingID).Error
}
