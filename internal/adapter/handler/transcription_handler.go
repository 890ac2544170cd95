package handler

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/errors"
	transcriptionDTO "github.com/johnquangdev/meeting-scribe/internal/adapter/dto/transcription"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/archive"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/transcription"
)

// TranscriptionService is the transcription use case
type TranscriptionService interface {
	TranscribeFile(ctx context.Context, path string, opts transcription.Options) (*transcription.Result, error)
}

// Transcription handles audio uploads
type Transcription struct {
	svc        TranscriptionService
	archive    *archive.Service
	uploadDir  string
	maxBytes   int64
	defaultFmt string
	defaultMdl string
	logger     *zap.Logger
}

// NewTranscription creates a new transcription handler. Uploads are kept
// under uploadDir only while they are being transcribed.
func NewTranscription(
	svc TranscriptionService,
	archiveSvc *archive.Service,
	uploadDir string,
	maxUploadMB int,
	defaultModel, defaultFormat string,
	logger *zap.Logger,
) *Transcription {
	return &Transcription{
		svc:        svc,
		archive:    archiveSvc,
		uploadDir:  uploadDir,
		maxBytes:   int64(maxUploadMB) << 20,
		defaultFmt: defaultFormat,
		defaultMdl: defaultModel,
		logger:     logger,
	}
}

// Transcribe handles POST /v1/transcriptions
// @Summary      Transcribe an audio file
// @Description  Uploads an audio file (mp3, wav, m4a, ogg, webm), validates it against the model and response format, and returns the normalized transcript
// @Tags         Transcriptions
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file      formData  file    true   "Audio file"
// @Param        model     formData  string  false  "Transcription model (e.g. gpt-4o-transcribe, whisper-1)"
// @Param        language  formData  string  false  "ISO 639-1 language code, defaults to the configured TRANSCRIBE_LANGUAGE"
// @Param        format    formData  string  false  "Response format: text, json, verbose_json, srt, vtt"
// @Param        prompt    formData  string  false  "Context hint (names, technical terms)"
// @Param        archive   formData  bool    false  "Store the transcript in the output archive"
// @Success      200  {object}  transcription.TranscribeResponse  "Normalized transcript"
// @Failure      400  {object}  common.ErrorResponse  "Invalid form or incompatible model/format"
// @Failure      415  {object}  common.ErrorResponse  "Unsupported audio format"
// @Failure      502  {object}  common.ErrorResponse  "Transcription API failed"
// @Router       /transcriptions [post]
func (h *Transcription) Transcribe(c echo.Context) error {
	var req transcriptionDTO.TranscribeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("missing audio file").
			WithHint("send the audio as the multipart field \"file\""))
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(
			fmt.Sprintf("audio file is larger than %d MB", h.maxBytes>>20)))
	}

	path, err := h.saveUpload(fh)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	defer os.Remove(path)

	opts := transcription.Options{
		Model:    req.Model,
		Language: req.Language,
		Format:   req.Format,
		Prompt:   req.Prompt,
	}
	res, err := h.svc.TranscribeFile(c.Request().Context(), path, opts)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	// uploads are stored under a random name; report the client's one
	res.Transcript.SourcePath = &fh.Filename

	model, format := req.Model, req.Format
	if model == "" {
		model = h.defaultMdl
	}
	if format == "" {
		format = h.defaultFmt
	}
	resp := presenter.ToTranscribeResponse(res, model, format)

	if req.Archive {
		name, err := h.archiveTranscript(c.Request().Context(), fh.Filename, res)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		resp.ArchivedAs = name
	}

	return HandleSuccess(h.logger, c, resp)
}

func (h *Transcription) saveUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", errors.ErrInvalidArgument("cannot read uploaded file")
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", errors.ErrStorageFailed("create upload directory", err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	path := filepath.Join(h.uploadDir, uuid.NewString()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", errors.ErrStorageFailed("create upload file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", errors.ErrStorageFailed("write upload file", err)
	}
	return path, nil
}

func (h *Transcription) archiveTranscript(ctx context.Context, filename string, res *transcription.Result) (string, error) {
	data, err := transcription.MarshalTranscript(res.Transcript)
	if err != nil {
		return "", errors.ErrInternal(err)
	}
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := h.archive.ObjectName(archive.PrefixTranscripts, base+"-"+uuid.NewString()[:8]+".json")
	return h.archive.Store(ctx, name, "application/json", data)
}
