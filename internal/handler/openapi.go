package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/deppfellow/grubdash/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StaticDir holds openapi.html and openapi.json.
const StaticDir = "static"

// OpenAPIHandler serves the API documentation UI.
//
// The UI is a static HTML page that loads its renderer from a CDN and reads
// /static/openapi.json.
type OpenAPIHandler struct {
	Handler
	dir string
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		dir:     StaticDir,
	}
}

// ServeOpenAPIUI serves static/openapi.html without caching.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := os.ReadFile(filepath.Join(h.dir, "openapi.html"))

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return errors.Wrap(err, "failed to read OpenAPI UI template")
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return errors.Wrap(err, "failed to write HTML response")
	}

	return nil
}
