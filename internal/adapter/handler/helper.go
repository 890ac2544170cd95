package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	httpmw "github.com/johnquangdev/meeting-scribe/internal/infrastructure/http/middleware"
	pkgvalidator "github.com/johnquangdev/meeting-scribe/pkg/validator"
)

// getRequestID returns the ID set by the request ID middleware, falling
// back to the X-Request-ID header
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := httpmw.GetRequestID(c); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := common.SuccessResponse{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Stringer("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		status := appErr.HTTPCode
		if status == 0 {
			status = http.StatusInternalServerError
		}

		return c.JSON(status, common.ErrorResponse{
			Code:    int(appErr.Code),
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		})
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) {
		code := errors.ErrorCode_INTERNAL
		switch httpErr.Code {
		case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
			code = errors.ErrorCode_INVALID_ARGUMENT
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			code = errors.ErrorCode_NOT_FOUND
		case http.StatusUnauthorized:
			code = errors.ErrorCode_UNAUTHENTICATED
		}
		return c.JSON(httpErr.Code, common.ErrorResponse{
			Code:    int(code),
			Message: http.StatusText(httpErr.Code),
			Info:    errorInfo(httpErr.Message),
		})
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Code:    int(errors.ErrorCode_INTERNAL),
		Message: "Internal server error",
		Info:    err.Error(),
	})
}

// HTTPErrorHandler renders errors returned by middleware and unmatched
// routes in the same shape as handler errors
func HTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if herr := HandleError(logger, c, err); herr != nil && logger != nil {
			logger.Error("failed to write error response", zap.Error(herr))
		}
	}
}

func errorInfo(msg interface{}) string {
	if s, ok := msg.(string); ok {
		return s
	}
	return ""
}

// bindAndValidate binds the request into req and runs the registered
// validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidArgument("invalid request body").WithDetail("cause", errorInfo(bindMessage(err)))
	}
	if err := c.Validate(req); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) errors.AppError {
	return errors.ErrInvalidArgument("validation failed").WithDetail("fields", pkgvalidator.Describe(err))
}

func bindMessage(err error) interface{} {
	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) {
		return httpErr.Message
	}
	return err.Error()
}

// historyFilter reads limit/offset query parameters
func historyFilter(c echo.Context) (entities.HistoryFilter, error) {
	var q common.PageQuery
	if err := bindAndValidate(c, &q); err != nil {
		return entities.HistoryFilter{}, err
	}
	return entities.HistoryFilter{Limit: q.Limit, Offset: q.Offset}, nil
}
