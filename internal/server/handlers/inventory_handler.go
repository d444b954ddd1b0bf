package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/service/inventory"
)

// InventoryHandler exposes the ingredient catalog.
type InventoryHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(svc *inventory.Service, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{svc: svc, logger: orNop(logger)}
}

func (h *InventoryHandler) List(c *gin.Context) {
	ingredients, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *InventoryHandler) LowStock(c *gin.Context) {
	ingredients, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	ingredient, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req models.Ingredient
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	ingredient, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	var req models.Ingredient
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	ingredient, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
