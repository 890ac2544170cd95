package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	archiveDTO "github.com/johnquangdev/meeting-scribe/internal/adapter/dto/archive"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/archive"
)

// Archive exposes the output archive
type Archive struct {
	svc    *archive.Service
	logger *zap.Logger
}

// NewArchive creates a new archive handler
func NewArchive(svc *archive.Service, logger *zap.Logger) *Archive {
	return &Archive{svc: svc, logger: logger}
}

// ListFiles lists archived outputs
// @Summary      List archived outputs
// @Description  List transcripts, summaries and follow-ups stored in the output archive, optionally filtered by prefix
// @Tags         Archive
// @Produce      json
// @Security     BearerAuth
// @Param        prefix  query     string  false  "Object name prefix (e.g. summaries/)"
// @Success      200     {object}  archive.FilesResponse  "File list"
// @Failure      503     {object}  common.ErrorResponse   "Archive not configured"
// @Router       /archive/files [get]
func (h *Archive) ListFiles(c echo.Context) error {
	prefix := c.QueryParam("prefix")

	files, err := h.svc.List(c.Request().Context(), prefix)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if h.logger != nil {
		h.logger.Info("files listed",
			zap.String("prefix", prefix),
			zap.Int("count", len(files)))
	}

	return HandleSuccess(h.logger, c, archiveDTO.FilesResponse{
		Prefix: prefix,
		Files:  files,
		Count:  len(files),
	})
}

// DownloadURL generates a download URL for an archived output
// @Summary      Generate download URL
// @Description  Generate a presigned (MinIO) or file (local) URL for an archived output
// @Tags         Archive
// @Produce      json
// @Security     BearerAuth
// @Param        file  query     string  true  "Object name"
// @Success      200   {object}  archive.URLResponse   "Download URL"
// @Failure      400   {object}  common.ErrorResponse  "Missing file parameter"
// @Failure      503   {object}  common.ErrorResponse  "Archive not configured"
// @Router       /archive/url [get]
func (h *Archive) DownloadURL(c echo.Context) error {
	file := c.QueryParam("file")

	url, err := h.svc.URL(c.Request().Context(), file)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, archiveDTO.URLResponse{
		File:      file,
		URL:       url,
		ExpiresIn: h.svc.Expiry().String(),
	})
}
