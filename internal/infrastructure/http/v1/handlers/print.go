package handlers

import (
	"github.com/gin-gonic/gin"

	"printstock/internal/domain/catalogs/artprint"
	"printstock/internal/domain/edition"
	"printstock/internal/infrastructure/http/v1/dto"
	"printstock/internal/infrastructure/storage/postgres"
	"printstock/internal/inventory"
	"printstock/pkg/logger"
)

// PrintHandler serves the print catalog and print-run registration.
type PrintHandler struct {
	base     *BaseHandler
	service  *artprint.Service
	editions *edition.Service
	store    *inventory.Store
	audit    *postgres.AuditService
}

// NewPrintHandler creates a new print handler.
func NewPrintHandler(
	base *BaseHandler,
	service *artprint.Service,
	editions *edition.Service,
	store *inventory.Store,
	audit *postgres.AuditService,
) *PrintHandler {
	return &PrintHandler{base: base, service: service, editions: editions, store: store, audit: audit}
}

// List returns all prints.
// GET /prints
func (h *PrintHandler) List(c *gin.Context) {
	prints, err := h.service.List(c.Request.Context())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.NewListResponse(prints))
}

// Create creates a new print.
// POST /prints
func (h *PrintHandler) Create(c *gin.Context) {
	var req dto.CreatePrintRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	p := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), p); err != nil {
		h.base.Error(c, err)
		return
	}

	h.logAudit(c, p, postgres.AuditActionCreate)
	h.refreshStore(c)
	h.base.Created(c, p.ID.String())
}

// Get returns one print by id.
// GET /prints/:id
func (h *PrintHandler) Get(c *gin.Context) {
	printID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), printID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, p)
}

// Update replaces a print's fields.
// PUT /prints/:id
func (h *PrintHandler) Update(c *gin.Context) {
	printID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdatePrintRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Get(c.Request.Context(), printID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	req.ApplyTo(p)
	if err := h.service.Update(c.Request.Context(), p); err != nil {
		h.base.Error(c, err)
		return
	}

	h.logAudit(c, p, postgres.AuditActionUpdate)
	h.refreshStore(c)
	h.base.OK(c, p)
}

// RegisterRun creates a numbered batch of editions for a print.
// POST /prints/:id/editions
func (h *PrintHandler) RegisterRun(c *gin.Context) {
	printID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	var req dto.RegisterRunRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	created, err := h.editions.RegisterRun(c.Request.Context(), printID, req.Count, req.RunSize())
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.refreshStore(c)
	h.base.OK(c, dto.NewListResponse(created))
}

// ListEditions returns all editions of a print.
// GET /prints/:id/editions
func (h *PrintHandler) ListEditions(c *gin.Context) {
	printID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	editions, err := h.editions.ListByPrint(c.Request.Context(), printID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.NewListResponse(editions))
}

// refreshStore reloads the inventory after a catalog mutation so the session
// view picks it up. The dataset is small enough to reload synchronously.
func (h *PrintHandler) refreshStore(c *gin.Context) {
	_ = h.store.Initialize(c.Request.Context())
}

// logAudit records the mutation best-effort.
func (h *PrintHandler) logAudit(c *gin.Context, p *artprint.Print, action postgres.AuditAction) {
	ctx := c.Request.Context()
	if err := h.audit.LogChange(ctx, "print", p.ID, action, postgres.StructToMap(p)); err != nil {
		logger.Warn(ctx, "audit log failed", "entity", "print", "id", p.ID, "error", err)
	}
}
