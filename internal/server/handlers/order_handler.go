package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/service/orders"
)

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderHandler exposes the order calendar.
type OrderHandler struct {
	svc    *orders.Service
	logger *zap.Logger
}

// NewOrderHandler constructs the HTTP handler adapter.
func NewOrderHandler(svc *orders.Service, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, logger: orNop(logger)}
}

func (h *OrderHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req models.Order
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	order, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Update(c *gin.Context) {
	var req models.Order
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	order, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateStatus changes only the status of an order.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	order, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
