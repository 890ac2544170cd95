package handler

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed web/index.html
var indexHTML []byte

// UI serves the single-page web client
type UI struct{}

// NewUI creates the web UI handler
func NewUI() *UI {
	return &UI{}
}

// Index serves the upload page
func (h *UI) Index(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, indexHTML)
}
