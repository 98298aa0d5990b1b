package handler

import (
	"net/http"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/migrate"
	"github.com/RonnieLihanda/kipkaren-pos-flow/pkg/logger"
	"github.com/RonnieLihanda/kipkaren-pos-flow/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RunMigration copies everything in the local record store into the remote
// data store. It is a one-shot job with no idempotency guard: running it
// twice duplicates the data, so the caller is warned in the response.
func RunMigration(c echo.Context) error {
	log := logger.FromEcho(c)
	log.Info("Starting local-to-remote migration")

	start := time.Now()
	m := migrate.New(local, remote, log)
	if err := m.Run(c.Request().Context()); err != nil {
		prometheus.RecordMigrationRun("failure")
		log.Error("Migration failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Migration failed; records migrated before the failure were kept",
		})
	}

	prometheus.RecordMigrationRun("success")
	log.Info("Migration finished", zap.Duration("elapsed", time.Since(start)))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Migration complete",
		"warning": "running the migration again will duplicate all migrated records",
	})
}
