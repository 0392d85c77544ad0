package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/deppfellow/grubdash/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAPIHandler_ServeOpenAPIUI(t *testing.T) {
	const page = "<!doctype html><title>GrubDash API</title>"

	tests := []struct {
		name    string
		write   bool
		wantErr bool
	}{
		{"serves the page", true, false},
		{"missing page", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewOpenAPIHandler(testutil.NewServer(t))
			h.dir = t.TempDir()
			if tt.write {
				require.NoError(t, os.WriteFile(filepath.Join(h.dir, "openapi.html"), []byte(page), 0o600))
			}

			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), rec)

			err := h.ServeOpenAPIUI(c)

			assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to read OpenAPI UI template")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, page, rec.Body.String())
			assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
		})
	}
}

func TestNewOpenAPIHandler_DefaultDir(t *testing.T) {
	assert.Equal(t, StaticDir, NewOpenAPIHandler(testutil.NewServer(t)).dir)
}
