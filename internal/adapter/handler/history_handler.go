package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
)

// History lists past runs recorded in the database
type History struct {
	repo   repositories.HistoryRepository
	logger *zap.Logger
}

// NewHistory creates a new history handler. repo is nil when the database
// is disabled.
func NewHistory(repo repositories.HistoryRepository, logger *zap.Logger) *History {
	return &History{repo: repo, logger: logger}
}

// ListTranscripts handles GET /v1/history/transcripts
// @Summary      List past transcriptions
// @Tags         History
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (max 100)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {object}  common.ListResponse   "Transcripts, newest first"
// @Failure      503     {object}  common.ErrorResponse  "Database disabled"
// @Router       /history/transcripts [get]
func (h *History) ListTranscripts(c echo.Context) error {
	if h.repo == nil {
		return HandleError(h.logger, c, errDatabaseDisabled())
	}
	filter, err := historyFilter(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	records, err := h.repo.ListTranscripts(c.Request().Context(), filter)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	items := presenter.ToTranscriptItems(records)

	return HandleSuccess(h.logger, c, common.ListResponse{
		Data: items,
		Pagination: &common.PaginationResponse{
			Limit:  filter.Limit,
			Offset: filter.Offset,
			Count:  len(items),
		},
	})
}

// ListSummaries handles GET /v1/history/summaries
// @Summary      List past summaries
// @Tags         History
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (max 100)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {object}  common.ListResponse   "Summaries, newest first"
// @Failure      503     {object}  common.ErrorResponse  "Database disabled"
// @Router       /history/summaries [get]
func (h *History) ListSummaries(c echo.Context) error {
	if h.repo == nil {
		return HandleError(h.logger, c, errDatabaseDisabled())
	}
	filter, err := historyFilter(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	records, err := h.repo.ListSummaries(c.Request().Context(), filter)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	items := presenter.ToSummaryItems(records)

	return HandleSuccess(h.logger, c, common.ListResponse{
		Data: items,
		Pagination: &common.PaginationResponse{
			Limit:  filter.Limit,
			Offset: filter.Offset,
			Count:  len(items),
		},
	})
}

func errDatabaseDisabled() errors.AppError {
	return errors.ErrConfiguration("history requires the database").
		WithHint("set DB_ENABLED=true and configure DB_HOST")
}
