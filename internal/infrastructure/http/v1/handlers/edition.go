package handlers

import (
	"github.com/gin-gonic/gin"

	"printstock/internal/core/apperror"
	"printstock/internal/infrastructure/http/v1/dto"
	"printstock/internal/inventory"
)

// EditionHandler serves editions through the in-memory inventory store.
// Updates are optimistic: the store mutates first and writes through; a
// failed remote write rolls back and surfaces as 502.
type EditionHandler struct {
	base  *BaseHandler
	store *inventory.Store
}

// NewEditionHandler creates a new edition handler.
func NewEditionHandler(base *BaseHandler, store *inventory.Store) *EditionHandler {
	return &EditionHandler{base: base, store: store}
}

// List returns all editions joined with print and distributor, optionally
// filtered by a case-insensitive search over display name and print name.
// GET /editions?search=
func (h *EditionHandler) List(c *gin.Context) {
	if !h.requireReady(c) {
		return
	}
	h.base.OK(c, dto.NewListResponse(h.store.SearchEditions(c.Query("search"))))
}

// Get returns one joined edition by id.
// GET /editions/:id
func (h *EditionHandler) Get(c *gin.Context) {
	if !h.requireReady(c) {
		return
	}

	editionID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	e, found := h.store.Edition(editionID)
	if !found {
		h.base.Error(c, apperror.NewNotFound("edition", editionID))
		return
	}
	h.base.OK(c, e)
}

// Update applies a partial update to one edition.
// PATCH /editions/:id
func (h *EditionHandler) Update(c *gin.Context) {
	if !h.requireReady(c) {
		return
	}

	editionID, ok := h.base.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateEditionRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		h.base.Error(c, err)
		return
	}
	if patch.IsZero() {
		h.base.Error(c, apperror.NewValidation("no fields to update"))
		return
	}

	current, found := h.store.Edition(editionID)
	if !found {
		h.base.Error(c, apperror.NewNotFound("edition", editionID))
		return
	}

	// Reject patches that would break the sale lifecycle before the store
	// touches anything.
	next := current.Edition
	patch.Apply(&next)
	if err := next.Validate(c.Request.Context()); err != nil {
		h.base.Error(c, err)
		return
	}

	if !h.store.UpdateEdition(c.Request.Context(), editionID, patch) {
		h.base.Error(c, apperror.NewRemoteWrite("edition", nil))
		return
	}

	e, _ := h.store.Edition(editionID)
	h.base.OK(c, e)
}

// BatchUpdate applies one patch to many editions in a single remote write.
// Unknown ids are rejected up front so a partial batch never reaches the
// database.
// PATCH /editions
func (h *EditionHandler) BatchUpdate(c *gin.Context) {
	if !h.requireReady(c) {
		return
	}

	var req dto.BatchUpdateEditionsRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	ids, err := req.ParseIDs()
	if err != nil {
		h.base.Error(c, err)
		return
	}

	patch, err := req.Patch.ToPatch()
	if err != nil {
		h.base.Error(c, err)
		return
	}
	if patch.IsZero() {
		h.base.Error(c, apperror.NewValidation("no fields to update"))
		return
	}

	for _, editionID := range ids {
		current, found := h.store.Edition(editionID)
		if !found {
			h.base.Error(c, apperror.NewNotFound("edition", editionID))
			return
		}
		next := current.Edition
		patch.Apply(&next)
		if err := next.Validate(c.Request.Context()); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				err = appErr.WithDetail("editionId", editionID.String())
			}
			h.base.Error(c, err)
			return
		}
	}

	if !h.store.UpdateEditions(c.Request.Context(), ids, patch) {
		h.base.Error(c, apperror.NewRemoteWrite("edition", nil))
		return
	}

	updated := make([]inventory.EditionWithRelations, 0, len(ids))
	for _, editionID := range ids {
		if e, found := h.store.Edition(editionID); found {
			updated = append(updated, e)
		}
	}
	h.base.OK(c, dto.NewListResponse(updated))
}

func (h *EditionHandler) requireReady(c *gin.Context) bool {
	if h.store.Status() != inventory.StatusReady {
		h.base.Error(c, apperror.NewNotReady("inventory not loaded"))
		return false
	}
	return true
}
