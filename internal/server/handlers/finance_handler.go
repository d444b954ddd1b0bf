package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/service/finance"
)

type fixedCostRequest struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type variableExpenseRequest struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

type assetCategoryView struct {
	Category models.AssetCategory `json:"category"`
	models.DepreciationSchedule
}

// FinanceHandler exposes production parameters, fixed costs, assets and variable expenses.
type FinanceHandler struct {
	svc    *finance.Service
	logger *zap.Logger
}

// NewFinanceHandler constructs the HTTP handler adapter.
func NewFinanceHandler(svc *finance.Service, logger *zap.Logger) *FinanceHandler {
	return &FinanceHandler{svc: svc, logger: orNop(logger)}
}

func (h *FinanceHandler) GetConfig(c *gin.Context) {
	cfg, err := h.svc.ProductionConfig(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *FinanceHandler) UpdateConfig(c *gin.Context) {
	var req models.ProductionConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	cfg, err := h.svc.UpdateProductionConfig(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *FinanceHandler) Summary(c *gin.Context) {
	snapshot, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *FinanceHandler) ListFixedCosts(c *gin.Context) {
	costs, err := h.svc.ListFixedCosts(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, costs)
}

func (h *FinanceHandler) CreateFixedCost(c *gin.Context) {
	var req fixedCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	cost, err := h.svc.AddFixedCost(c.Request.Context(), req.Name, req.Value)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, cost)
}

func (h *FinanceHandler) DeleteFixedCost(c *gin.Context) {
	if err := h.svc.DeleteFixedCost(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FinanceHandler) ListAssets(c *gin.Context) {
	assets, err := h.svc.ListAssets(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

func (h *FinanceHandler) CreateAsset(c *gin.Context) {
	var req finance.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	asset, err := h.svc.AddAsset(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, asset)
}

func (h *FinanceHandler) DeleteAsset(c *gin.Context) {
	if err := h.svc.DeleteAsset(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AssetCategories lists the depreciation classes with their rate and useful life.
func (h *FinanceHandler) AssetCategories(c *gin.Context) {
	views := make([]assetCategoryView, 0, len(models.AssetCategories))
	for _, category := range models.AssetCategories {
		schedule, err := category.Schedule()
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		views = append(views, assetCategoryView{Category: category, DepreciationSchedule: schedule})
	}
	c.JSON(http.StatusOK, views)
}

func (h *FinanceHandler) ListVariableExpenses(c *gin.Context) {
	expenses, err := h.svc.ListVariableExpenses(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *FinanceHandler) CreateVariableExpense(c *gin.Context) {
	var req variableExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	expense, err := h.svc.AddVariableExpense(c.Request.Context(), req.Name, req.Percent)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *FinanceHandler) DeleteVariableExpense(c *gin.Context) {
	if err := h.svc.DeleteVariableExpense(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
