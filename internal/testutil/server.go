// Package testutil builds application containers for tests.
package testutil

import (
	"testing"

	"github.com/deppfellow/grubdash/internal/config"
	"github.com/deppfellow/grubdash/internal/database"
	"github.com/deppfellow/grubdash/internal/lib/utils"
	"github.com/deppfellow/grubdash/internal/server"
	"github.com/rs/zerolog"
)

// NewServer returns a Server over an empty in-memory database.
//
// Ids are sequential ("1", "2", ...), rate limiting is off and logs are
// discarded. The database is closed when the test ends.
func NewServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Server.RateLimit = 0

	logger := zerolog.Nop()
	db := database.NewEmpty(&logger)
	t.Cleanup(func() { _ = db.Close() })

	return &server.Server{
		Config: cfg,
		Logger: &logger,
		DB:     db,
		NewID:  utils.SequentialIDs(),
	}
}
