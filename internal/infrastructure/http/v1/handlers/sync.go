package handlers

import (
	"github.com/gin-gonic/gin"

	"printstock/internal/infrastructure/http/v1/dto"
	"printstock/internal/infrastructure/storage/postgres"
)

// SyncHandler exposes the import run history.
type SyncHandler struct {
	base    *BaseHandler
	syncLog *postgres.SyncLogRepo
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(base *BaseHandler, syncLog *postgres.SyncLogRepo) *SyncHandler {
	return &SyncHandler{base: base, syncLog: syncLog}
}

// ListRuns returns recent import runs, newest first.
// GET /sync/runs?limit=20
func (h *SyncHandler) ListRuns(c *gin.Context) {
	limit := h.base.ParseIntQuery(c, "limit", 20)
	if limit < 1 || limit > 200 {
		limit = 20
	}

	runs, err := h.syncLog.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.NewListResponse(runs))
}
