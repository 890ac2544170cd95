package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/errors"
	summaryDTO "github.com/johnquangdev/meeting-scribe/internal/adapter/dto/summary"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/archive"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/followup"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/summary"
)

// SummaryService is the summarization use case
type SummaryService interface {
	Summarize(ctx context.Context, text string, opts summary.Options) (*summary.Result, error)
	SummarizeTranscript(ctx context.Context, t entities.Transcript, opts summary.Options) (*summary.Result, error)
}

// FollowUpService drafts follow-up e-mails
type FollowUpService interface {
	Generate(ctx context.Context, s entities.MeetingSummary, meta followup.Meta) (entities.FollowUpEmail, error)
}

// Summary handles summarization and follow-up requests
type Summary struct {
	svc             SummaryService
	followups       FollowUpService
	archive         *archive.Service
	defaultLanguage string
	logger          *zap.Logger
}

// NewSummary creates a new summary handler
func NewSummary(svc SummaryService, followups FollowUpService, archiveSvc *archive.Service, defaultLanguage string, logger *zap.Logger) *Summary {
	return &Summary{
		svc:             svc,
		followups:       followups,
		archive:         archiveSvc,
		defaultLanguage: defaultLanguage,
		logger:          logger,
	}
}

// Summarize handles POST /v1/summaries
// @Summary      Summarize a transcript
// @Description  Produces structured meeting minutes from transcript text. Malformed model output is repaired, and a preview-based summary is returned when nothing can be parsed
// @Tags         Summaries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      summary.SummarizeRequest   true  "Transcript text or transcript object"
// @Success      200      {object}  summary.SummarizeResponse  "Meeting summary"
// @Failure      400      {object}  common.ErrorResponse       "Invalid request"
// @Failure      503      {object}  common.ErrorResponse       "API key not configured"
// @Router       /summaries [post]
func (h *Summary) Summarize(c echo.Context) error {
	var req summaryDTO.SummarizeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if req.Transcript != nil && req.Transcript.Language == "" {
		req.Transcript.Language = h.defaultLanguage
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, validationError(err))
	}

	opts := summary.Options{
		Model:        req.Model,
		Temperature:  req.Temperature,
		ExtraContext: req.Context,
		Language:     req.Language,
	}

	ctx := c.Request().Context()
	var (
		res *summary.Result
		err error
	)
	if req.Transcript != nil {
		res, err = h.svc.SummarizeTranscript(ctx, *req.Transcript, opts)
	} else {
		res, err = h.svc.Summarize(ctx, req.Text, opts)
	}
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resp := presenter.ToSummarizeResponse(res)
	if req.Archive {
		data, err := summary.MarshalSummary(res.Summary)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInternal(err))
		}
		name := h.archive.ObjectName(archive.PrefixSummaries, "summary-"+uuid.NewString()[:8]+".json")
		if resp.ArchivedAs, err = h.archive.Store(ctx, name, "application/json", data); err != nil {
			return HandleError(h.logger, c, err)
		}
	}

	return HandleSuccess(h.logger, c, resp)
}

// Markdown handles POST /v1/summaries/markdown
// @Summary      Export a summary as Markdown
// @Tags         Summaries
// @Accept       json
// @Produce      text/markdown
// @Security     BearerAuth
// @Param        request  body      summary.MarkdownRequest  true  "Summary to render"
// @Success      200      {string}  string                   "Markdown document"
// @Failure      400      {object}  common.ErrorResponse     "Invalid summary"
// @Router       /summaries/markdown [post]
func (h *Summary) Markdown(c echo.Context) error {
	var req summaryDTO.MarkdownRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	req.Summary.Normalize()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="summary.md"`)
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(presenter.SummaryMarkdown(req.Summary)))
}

// FollowUp handles POST /v1/followups
// @Summary      Draft a follow-up e-mail
// @Description  Generates a follow-up e-mail from meeting minutes. Falls back to an e-mail assembled from the summary when generation fails
// @Tags         Summaries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      summary.FollowUpRequest   true  "Summary and sender information"
// @Success      200      {object}  summary.FollowUpResponse  "Follow-up e-mail"
// @Failure      400      {object}  common.ErrorResponse      "Invalid request"
// @Failure      503      {object}  common.ErrorResponse      "API key not configured"
// @Router       /followups [post]
func (h *Summary) FollowUp(c echo.Context) error {
	var req summaryDTO.FollowUpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	req.Summary.Normalize()

	email, err := h.followups.Generate(c.Request().Context(), req.Summary, followup.Meta{
		MeetingDate: req.MeetingDate,
		SenderName:  req.SenderName,
		CompanyName: req.CompanyName,
		Context:     req.Context,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, summaryDTO.FollowUpResponse{
		Email: email,
		Text:  followup.Text(email),
	})
}
