package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	httpmw "github.com/johnquangdev/meeting-scribe/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg                  *config.Config
	uiHandler            *UI
	transcriptionHandler *Transcription
	summaryHandler       *Summary
	historyHandler       *History
	archiveHandler       *Archive
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	uiHandler *UI,
	transcriptionHandler *Transcription,
	summaryHandler *Summary,
	historyHandler *History,
	archiveHandler *Archive,
) *Router {
	return &Router{
		cfg:                  cfg,
		uiHandler:            uiHandler,
		transcriptionHandler: transcriptionHandler,
		summaryHandler:       summaryHandler,
		historyHandler:       historyHandler,
		archiveHandler:       archiveHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	if rt.uiHandler != nil {
		e.GET("/", rt.uiHandler.Index)
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1", httpmw.TokenAuth(rt.cfg.Server.APIToken))

	rt.setupTranscriptionRoutes(v1)
	rt.setupSummaryRoutes(v1)
	rt.setupHistoryRoutes(v1)
	rt.setupArchiveRoutes(v1)
}

// setupTranscriptionRoutes configures audio upload routes
func (rt *Router) setupTranscriptionRoutes(g *echo.Group) {
	if rt.transcriptionHandler == nil {
		g.POST("/transcriptions", rt.notImplemented)
		return
	}
	// leave room for the multipart envelope around the audio
	limit := fmt.Sprintf("%dM", rt.cfg.Server.MaxUploadMB+1)
	g.POST("/transcriptions", rt.transcriptionHandler.Transcribe, middleware.BodyLimit(limit))
}

// setupSummaryRoutes configures summarization routes
func (rt *Router) setupSummaryRoutes(g *echo.Group) {
	if rt.summaryHandler == nil {
		g.POST("/summaries", rt.notImplemented)
		g.POST("/summaries/markdown", rt.notImplemented)
		g.POST("/followups", rt.notImplemented)
		return
	}
	g.POST("/summaries", rt.summaryHandler.Summarize)
	g.POST("/summaries/markdown", rt.summaryHandler.Markdown)
	g.POST("/followups", rt.summaryHandler.FollowUp)
}

// setupHistoryRoutes configures history routes
func (rt *Router) setupHistoryRoutes(g *echo.Group) {
	historyGroup := g.Group("/history")
	if rt.historyHandler == nil {
		historyGroup.GET("/transcripts", rt.notImplemented)
		historyGroup.GET("/summaries", rt.notImplemented)
		return
	}
	historyGroup.GET("/transcripts", rt.historyHandler.ListTranscripts)
	historyGroup.GET("/summaries", rt.historyHandler.ListSummaries)
}

// setupArchiveRoutes configures output archive routes
func (rt *Router) setupArchiveRoutes(g *echo.Group) {
	archiveGroup := g.Group("/archive")
	if rt.archiveHandler == nil {
		archiveGroup.GET("/files", rt.notImplemented)
		archiveGroup.GET("/url", rt.notImplemented)
		return
	}
	archiveGroup.GET("/files", rt.archiveHandler.ListFiles)
	archiveGroup.GET("/url", rt.archiveHandler.DownloadURL)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "This endpoint is not yet implemented",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
