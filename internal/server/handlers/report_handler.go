package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/service/reporting"
)

// ReportHandler exposes the profit composition, dashboard and exports.
type ReportHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
	now    func() time.Time
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *reporting.Service, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, logger: orNop(logger), now: time.Now}
}

// ProfitComposition returns the product rows and the TOTAL row, limited to
// ?month=YYYY-MM when given.
func (h *ReportHandler) ProfitComposition(c *gin.Context) {
	composition, err := h.svc.ProfitComposition(c.Request.Context(), c.Query("month"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, composition)
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Export appends ?month=YYYY-MM, or the current month, to the spreadsheet.
func (h *ReportHandler) Export(c *gin.Context) {
	result, err := h.svc.ExportComposition(c.Request.Context(), c.Query("month"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Snapshot archives the current month on demand.
func (h *ReportHandler) Snapshot(c *gin.Context) {
	snapshot, err := h.svc.SaveMonthlySnapshot(c.Request.Context(), h.now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}
