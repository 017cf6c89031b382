package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"printstock/internal/core/apperror"
	"printstock/internal/domain/taxreport"
	"printstock/internal/inventory"
)

// ReportsHandler serves tax-year reports.
type ReportsHandler struct {
	base    *BaseHandler
	service *taxreport.Service
	store   *inventory.Store
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *taxreport.Service, store *inventory.Store) *ReportsHandler {
	return &ReportsHandler{base: base, service: service, store: store}
}

// TaxYear returns the report for one UK tax year as JSON. The year parameter
// is the starting calendar year; it defaults to the current tax year.
// GET /reports/tax-year?year=2024&includePrevious=true
func (h *ReportsHandler) TaxYear(c *gin.Context) {
	startYear, includePrevious, ok := h.reportParams(c)
	if !ok {
		return
	}
	h.base.OK(c, h.service.Report(c.Request.Context(), startYear, includePrevious))
}

// TaxYearCSV streams the same report as a CSV download.
// GET /reports/tax-year/export?year=2024&includePrevious=true
func (h *ReportsHandler) TaxYearCSV(c *gin.Context) {
	startYear, includePrevious, ok := h.reportParams(c)
	if !ok {
		return
	}

	report := h.service.Report(c.Request.Context(), startYear, includePrevious)

	filename := fmt.Sprintf("tax-report-%s.csv", report.TaxYear.Label())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := taxreport.WriteCSV(c.Writer, report); err != nil {
		// Headers are already out; nothing left to do but record it.
		_ = c.Error(apperror.NewInternal(err))
	}
}

func (h *ReportsHandler) reportParams(c *gin.Context) (int, bool, bool) {
	if h.store.Status() != inventory.StatusReady {
		h.base.Error(c, apperror.NewNotReady("inventory not loaded"))
		return 0, false, false
	}

	defaultYear := taxreport.ForDate(time.Now().UTC()).StartYear
	startYear := h.base.ParseIntQuery(c, "year", defaultYear)
	if startYear < 1900 || startYear > 2200 {
		h.base.Error(c, apperror.NewValidation("invalid year").WithDetail("year", startYear))
		return 0, false, false
	}

	includePrevious := h.base.ParseBoolQuery(c, "includePrevious", false)
	return startYear, includePrevious, true
}
