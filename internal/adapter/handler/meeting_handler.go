package handler

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-insights/errors"
	meetingdto "github.com/johnquangdev/meeting-insights/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	"github.com/johnquangdev/meeting-insights/internal/usecase/analyzer"
)

// Meeting handles meeting registration and analysis HTTP requests
type Meeting struct {
	meetingRepo     repositories.MeetingRepository
	analysisService analyzer.Service
	logger          *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingRepo repositories.MeetingRepository, analysisService analyzer.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingRepo:     meetingRepo,
		analysisService: analysisService,
		logger:          logger,
	}
}

// Register handles POST /meetings
// @Summary      Register a meeting
// @Description  Registers a recorded meeting whose artifacts are already uploaded to object storage
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.RegisterMeetingRequest  true  "Meeting registration request"
// @Success      201      {object}  meeting.MeetingResponse         "Meeting registered"
// @Failure      400      {object}  map[string]interface{}          "Invalid request or validation failed"
// @Router       /meetings [post]
func (h *Meeting) Register(c echo.Context) error {
	var req meetingdto.RegisterMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	participants, err := json.Marshal(req.Participants)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	m := &entities.Meeting{
		ID:                uuid.New(),
		Title:             req.Title,
		Platform:          req.Platform,
		Date:              req.Date,
		Status:            entities.MeetingStatusRegistered,
		DurationSeconds:   req.DurationSeconds,
		TotalParticipants: req.ResolvedTotalParticipants(),
		Participants:      datatypes.JSON(participants),
		ArtifactPrefix:    req.ArtifactPrefix,
	}

	if err := h.meetingRepo.Create(c.Request().Context(), m); err != nil {
		return HandleError(h.logger, c, errors.ErrMeetingCreationFailed(err))
	}

	if h.logger != nil {
		h.logger.Info("📋 Meeting registered",
			zap.String("meeting_id", m.ID.String()),
			zap.String("title", m.Title),
			zap.String("platform", m.Platform),
		)
	}

	return HandleCreated(h.logger, c, meetingdto.FromEntity(m))
}

// List handles GET /meetings
// @Summary      List meetings
// @Description  Gets a paginated list of registered meetings, newest first
// @Tags         Meetings
// @Produce      json
// @Param        page       query     int  false  "Page number (default: 1)"
// @Param        page_size  query     int  false  "Items per page (default: 20, max: 100)"
// @Success      200        {array}   meeting.MeetingResponse  "List of meetings"
// @Router       /meetings [get]
func (h *Meeting) List(c echo.Context) error {
	var req meetingdto.ListMeetingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	meetings, err := h.meetingRepo.List(c.Request().Context(), req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	responses := make([]meetingdto.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		responses = append(responses, meetingdto.FromEntity(&meetings[i]))
	}

	return HandleSuccess(h.logger, c, responses)
}

// Get handles GET /meetings/:id
// @Summary      Get meeting details
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.MeetingResponse  "Meeting details"
// @Failure      400  {object}  map[string]interface{}   "Invalid meeting ID"
// @Failure      404  {object}  map[string]interface{}   "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) Get(c echo.Context) error {
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

	return HandleSuccess(h.logger, c, meetingdto.FromEntity(m))
}

// Analyze handles POST /meetings/:id/analyze
// @Summary      Queue meeting analysis
// @Description  Enqueues an asynchronous analysis job for a registered meeting
// @Tags         Analysis
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      202  {object}  meeting.AnalysisJobResponse  "Analysis queued"
// @Failure      400  {object}  map[string]interface{}       "Invalid meeting ID"
// @Failure      404  {object}  map[string]interface{}       "Meeting not found"
// @Router       /meetings/{id}/analyze [post]
func (h *Meeting) Analyze(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("meeting ID must be a valid UUID"))
	}

	job, err := h.analysisService.EnqueueAnalysis(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleAccepted(h.logger, c, meetingdto.JobFromEntity(job))
}

// GetAnalysis handles GET /meetings/:id/analysis
// @Summary      Get meeting analysis
// @Description  Returns the full analysis document for an analyzed meeting
// @Tags         Analysis
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  entities.MeetingAnalysis  "Analysis document"
// @Failure      404  {object}  map[string]interface{}    "Analysis not found"
// @Router       /meetings/{id}/analysis [get]
func (h *Meeting) GetAnalysis(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("meeting ID must be a valid UUID"))
	}

	result, err := h.analysisService.GetAnalysis(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}

// GetAnalysisComponent handles GET /meetings/:id/analysis/:component
// @Summary      Get one analysis component
// @Description  Returns a single section of the analysis document (speakers, sentiment, topics, timeline, participants, reactions)
// @Tags         Analysis
// @Produce      json
// @Param        id         path      string  true  "Meeting ID (UUID)"
// @Param        component  path      string  true  "Component name"
// @Success      200        {object}  map[string]interface{}  "Component payload"
// @Failure      404        {object}  map[string]interface{}  "Analysis or component not found"
// @Router       /meetings/{id}/analysis/{component} [get]
func (h *Meeting) GetAnalysisComponent(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("meeting ID must be a valid UUID"))
	}

	component, err := h.analysisService.GetComponent(c.Request().Context(), meetingID, c.Param("component"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, component)
}
