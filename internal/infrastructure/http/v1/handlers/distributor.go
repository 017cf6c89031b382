package handlers

import (
	"github.com/gin-gonic/gin"

	"printstock/internal/core/apperror"
	"printstock/internal/domain/catalogs/distributor"
	"printstock/internal/infrastructure/http/v1/dto"
	"printstock/internal/infrastructure/storage/postgres"
	"printstock/internal/inventory"
	"printstock/pkg/logger"
)

// DistributorHandler serves the distributor catalog and the favorite toggle.
type DistributorHandler struct {
	base    *BaseHandler
	service *distributor.Service
	store   *inventory.Store
	audit   *postgres.AuditService
}

// NewDistributorHandler creates a new distributor handler.
func NewDistributorHandler(
	base *BaseHandler,
	service *distributor.Service,
	store *inventory.Store,
	audit *postgres.AuditService,
) *DistributorHandler {
	return &DistributorHandler{base: base, service: service, store: store, audit: audit}
}

// List returns all distributors.
// GET /distributors
func (h *DistributorHandler) List(c *gin.Context) {
	distributors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.NewListResponse(distributors))
}

// Create creates a new distributor.
// POST /distributors
func (h *DistributorHandler) Create(c *gin.Context) {
	var req dto.CreateDistributorRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	d := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), d); err != nil {
		h.base.Error(c, err)
		return
	}

	h.logAudit(c, d, postgres.AuditActionCreate)
	h.refreshStore(c)
	h.base.Created(c, d.ID.String())
}

// Get returns one distributor by id.
// GET /distributors/:id
func (h *DistributorHandler) Get(c *gin.Context) {
	distributorID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	d, err := h.service.Get(c.Request.Context(), distributorID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, d)
}

// Update replaces a distributor's fields.
// PUT /distributors/:id
func (h *DistributorHandler) Update(c *gin.Context) {
	distributorID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateDistributorRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	d, err := h.service.Get(c.Request.Context(), distributorID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	req.ApplyTo(d)
	if err := h.service.Update(c.Request.Context(), d); err != nil {
		h.base.Error(c, err)
		return
	}

	h.logAudit(c, d, postgres.AuditActionUpdate)
	h.refreshStore(c)
	h.base.OK(c, d)
}

// ToggleFavorite flips the favorite flag through the inventory store, which
// writes through to the database and rolls back on failure.
// POST /distributors/:id/favorite
func (h *DistributorHandler) ToggleFavorite(c *gin.Context) {
	distributorID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	if h.store.Status() != inventory.StatusReady {
		h.base.Error(c, apperror.NewNotReady("inventory not loaded"))
		return
	}

	known := false
	for _, d := range h.store.Distributors() {
		if d.ID == distributorID {
			known = true
			break
		}
	}
	if !known {
		h.base.Error(c, apperror.NewNotFound("distributor", distributorID))
		return
	}

	if !h.store.ToggleDistributorFavorite(c.Request.Context(), distributorID) {
		h.base.Error(c, apperror.NewRemoteWrite("distributor", nil))
		return
	}

	for _, d := range h.store.Distributors() {
		if d.ID == distributorID {
			h.base.OK(c, d)
			return
		}
	}
	h.base.Success(c, "favorite toggled")
}

func (h *DistributorHandler) refreshStore(c *gin.Context) {
	_ = h.store.Initialize(c.Request.Context())
}

// logAudit records the mutation best-effort.
func (h *DistributorHandler) logAudit(c *gin.Context, d *distributor.Distributor, action postgres.AuditAction) {
	ctx := c.Request.Context()
	if err := h.audit.LogChange(ctx, "distributor", d.ID, action, postgres.StructToMap(d)); err != nil {
		logger.Warn(ctx, "audit log failed", "entity", "distributor", "id", d.ID, "error", err)
	}
}
