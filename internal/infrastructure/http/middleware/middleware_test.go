package middleware

import (
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-scribe/errors"
)

func run(mw echo.MiddlewareFunc, req *http.Request) (echo.Context, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})(c)
	return c, err
}

func TestTokenAuth(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		header string
		ok     bool
	}{
		{"disabled", "", "", true},
		{"valid", "s3cret", "Bearer s3cret", true},
		{"lowercase scheme", "s3cret", "bearer s3cret", true},
		{"missing", "s3cret", "", false},
		{"wrong", "s3cret", "Bearer nope", false},
		{"basic scheme", "s3cret", "Basic s3cret", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/history/summaries", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			_, err := run(TokenAuth(tt.token), req)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok {
				var appErr errors.AppError
				if !stdErrors.As(err, &appErr) || appErr.HTTPCode != http.StatusUnauthorized {
					t.Fatalf("expected 401 AppError, got %v", err)
				}
			}
		})
	}
}

func TestTokenAuth_Cookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "s3cret"})
	if _, err := run(TokenAuth("s3cret"), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequestID(t *testing.T) {
	c, err := run(RequestID(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	id := GetRequestID(c)
	if len(id) != 36 {
		t.Fatalf("request id = %q", id)
	}
	if got := c.Response().Header().Get(echo.HeaderXRequestID); got != id {
		t.Fatalf("header = %q, context = %q", got, id)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "client-id")
	c, _ = run(RequestID(), req)
	if GetRequestID(c) != "client-id" {
		t.Fatalf("client id not kept: %q", GetRequestID(c))
	}
}
