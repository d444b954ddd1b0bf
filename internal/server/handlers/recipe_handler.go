package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/service/advisor"
	"github.com/mamadbah2/deliciarte/internal/service/inventory"
	"github.com/mamadbah2/deliciarte/internal/service/recipes"
)

// RecipeHandler exposes technical sheets, quotes and the advisor.
type RecipeHandler struct {
	svc       *recipes.Service
	inventory *inventory.Service
	advisor   *advisor.Service
	logger    *zap.Logger
}

// NewRecipeHandler constructs the HTTP handler adapter.
func NewRecipeHandler(svc *recipes.Service, inventorySvc *inventory.Service, advisorSvc *advisor.Service, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{svc: svc, inventory: inventorySvc, advisor: advisorSvc, logger: orNop(logger)}
}

func (h *RecipeHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *RecipeHandler) Get(c *gin.Context) {
	recipe, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Quote prices a draft without saving it.
func (h *RecipeHandler) Quote(c *gin.Context) {
	var draft recipes.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	quote, err := h.svc.Quote(c.Request.Context(), draft)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var draft recipes.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	recipe, quote, err := h.svc.Save(c.Request.Context(), draft)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe, "quote": quote})
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Advice asks the advisor for price tiers of a draft.
func (h *RecipeHandler) Advice(c *gin.Context) {
	var draft recipes.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	advice, err := h.svc.PricingAdvice(c.Request.Context(), draft)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"advice": advice})
}

// Suggestions proposes recipes built from the current inventory.
func (h *RecipeHandler) Suggestions(c *gin.Context) {
	names, err := h.inventory.Names(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": h.advisor.RecipeSuggestions(c.Request.Context(), names)})
}
