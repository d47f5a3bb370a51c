package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
	storageHandler *Storage
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting, storageHandler *Storage) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
		storageHandler: storageHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupStorageRoutes(v1)
}

// setupMeetingRoutes configures meeting and analysis routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	if rt.meetingHandler != nil {
		meetingGroup.POST("", rt.meetingHandler.Register)
		meetingGroup.GET("", rt.meetingHandler.List)
		meetingGroup.GET("/:id", rt.meetingHandler.Get)
		meetingGroup.POST("/:id/analyze", rt.meetingHandler.Analyze)
		meetingGroup.GET("/:id/analysis", rt.meetingHandler.GetAnalysis)
		meetingGroup.GET("/:id/analysis/:component", rt.meetingHandler.GetAnalysisComponent)
	} else {
		meetingGroup.POST("", rt.notImplemented)
		meetingGroup.GET("", rt.notImplemented)
		meetingGroup.GET("/:id", rt.notImplemented)
		meetingGroup.POST("/:id/analyze", rt.notImplemented)
		meetingGroup.GET("/:id/analysis", rt.notImplemented)
		meetingGroup.GET("/:id/analysis/:component", rt.notImplemented)
	}

	if rt.storageHandler != nil {
		meetingGroup.GET("/:id/artifacts", rt.storageHandler.ListArtifacts)
	}
}

// setupStorageRoutes configures storage inspection routes
func (rt *Router) setupStorageRoutes(g *echo.Group) {
	storageGroup := g.Group("/storage")

	if rt.storageHandler != nil {
		storageGroup.GET("/info", rt.storageHandler.BucketInfo)
	} else {
		storageGroup.GET("/info", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := "production"
	if rt.cfg != nil && rt.cfg.Server.Environment != "" {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": env,
	})
}
