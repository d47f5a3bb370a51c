package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/storage"
)

// Storage handles artifact inspection endpoints
type Storage struct {
	minioClient *storage.MinIOClient
	meetingRepo repositories.MeetingRepository
	logger      *zap.Logger
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(minioClient *storage.MinIOClient, meetingRepo repositories.MeetingRepository, logger *zap.Logger) *Storage {
	return &Storage{
		minioClient: minioClient,
		meetingRepo: meetingRepo,
		logger:      logger,
	}
}

// ListArtifacts handles GET /meetings/:id/artifacts
// @Summary      List meeting artifacts
// @Description  Lists the raw artifact objects stored under a meeting's prefix
// @Tags         Storage
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Artifact object names"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id}/artifacts [get]
func (h *Storage) ListArtifacts(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("meeting ID must be a valid UUID"))
	}

	m, err := h.meetingRepo.GetByID(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if m == nil {
		return HandleError(h.logger, c, errors.ErrMeetingNotFound(meetingID.String()))
	}

	objects, err := h.minioClient.ListFiles(c.Request().Context(), m.ArtifactPrefix)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("list artifacts", err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"meeting_id": meetingID.String(),
		"prefix":     m.ArtifactPrefix,
		"objects":    objects,
		"count":      len(objects),
	})
}

// BucketInfo handles GET /storage/info
// @Summary      Storage bucket info
// @Description  Returns bucket statistics to verify the object storage connection
// @Tags         Storage
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "Bucket information"
// @Failure      500  {object}  map[string]interface{}  "Storage unreachable"
// @Router       /storage/info [get]
func (h *Storage) BucketInfo(c echo.Context) error {
	info, err := h.minioClient.GetBucketInfo(c.Request().Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to get bucket info", zap.Error(err))
		}
		return HandleError(h.logger, c, errors.ErrStorageFailed("bucket info", err))
	}

	return HandleSuccess(h.logger, c, info)
}
