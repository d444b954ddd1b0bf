package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/repository/memory"
	"github.com/mamadbah2/deliciarte/internal/server/handlers"
	"github.com/mamadbah2/deliciarte/internal/service/advisor"
	"github.com/mamadbah2/deliciarte/internal/service/finance"
	"github.com/mamadbah2/deliciarte/internal/service/inventory"
	"github.com/mamadbah2/deliciarte/internal/service/orders"
	"github.com/mamadbah2/deliciarte/internal/service/recipes"
	"github.com/mamadbah2/deliciarte/internal/service/reporting"
)

func newEngine() *gin.Engine {
	store := memory.NewStore()
	inventorySvc := inventory.NewService(store, nil)
	financeSvc := finance.NewService(store, nil)
	advisorSvc := advisor.NewService(nil, nil)
	recipeSvc := recipes.NewService(store, store, financeSvc, advisorSvc, nil)
	orderSvc := orders.NewService(store, nil, nil)
	reportingSvc := reporting.NewService(reporting.Dependencies{
		Orders:      store,
		Recipes:     store,
		Ingredients: store,
		Snapshots:   store,
		Finance:     financeSvc,
	}, nil)

	return New(Handlers{
		Inventory: handlers.NewInventoryHandler(inventorySvc, nil),
		Recipes:   handlers.NewRecipeHandler(recipeSvc, inventorySvc, advisorSvc, nil),
		Orders:    handlers.NewOrderHandler(orderSvc, nil),
		Finance:   handlers.NewFinanceHandler(financeSvc, nil),
		Reports:   handlers.NewReportHandler(reportingSvc, nil),
	}, nil)
}

func do(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	rec := do(t, newEngine(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWebhookRoutesAbsentWhenDisabled(t *testing.T) {
	rec := do(t, newEngine(), http.MethodGet, "/webhook", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCostingFlow(t *testing.T) {
	engine := newEngine()

	rec := do(t, engine, http.MethodPost, "/api/ingredients", map[string]any{
		"name": "Chocolate", "unit": "g", "unit_price": 40, "package_weight": 1000, "quantity_on_hand": 1, "minimum_stock": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	chocolate := decode[models.Ingredient](t, rec)

	rec = do(t, engine, http.MethodPost, "/api/finance/fixed-costs", map[string]any{"name": "Aluguel", "value": 1600})
	require.Equal(t, http.StatusCreated, rec.Code)

	draft := map[string]any{
		"name": "Brigadeiro", "category": "Doces", "yield": 10, "prep_time_minutes": 60, "profit_margin_percent": 50,
		"lines": []map[string]any{{"ingredient_id": chocolate.ID, "quantity": 250}},
	}

	rec = do(t, engine, http.MethodPost, "/api/recipes/quote", draft)
	require.Equal(t, http.StatusOK, rec.Code)
	quote := decode[recipes.Quote](t, rec)
	// 10 raw + 20 labor + 10 fixed for one hour.
	assert.InDelta(t, 40, quote.Cost.BatchCost, 1e-9)
	assert.InDelta(t, 8, quote.Price.Value, 1e-9)

	rec = do(t, engine, http.MethodPost, "/api/recipes", draft)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, engine, http.MethodPost, "/api/orders", map[string]any{
		"customer": "Ana", "product": "Brigadeiro", "quantity": 2, "total_value": 100, "delivery_date": "2026-10-20",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decode[models.Order](t, rec)

	rec = do(t, engine, http.MethodPatch, "/api/orders/"+order.ID+"/status", map[string]any{"status": "Entregue"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.OrderDelivered, decode[models.Order](t, rec).Status)

	rec = do(t, engine, http.MethodGet, "/api/reports/profit-composition", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var composition struct {
		Rows  []models.ProductProfit `json:"rows"`
		Total models.ProductProfit   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &composition))
	require.Len(t, composition.Rows, 1)
	assert.InDelta(t, 80, composition.Rows[0].COGS, 1e-9)
	assert.Equal(t, models.TotalRowName, composition.Total.Product)

	rec = do(t, engine, http.MethodGet, "/api/reports/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dashboard := decode[reporting.Dashboard](t, rec)
	assert.Equal(t, 1, dashboard.LowStockCount)
	assert.InDelta(t, 100, dashboard.Revenue, 1e-9)

	rec = do(t, engine, http.MethodGet, "/api/ingredients/low-stock", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Ingredient](t, rec), 1)
}

func TestErrorMapping(t *testing.T) {
	engine := newEngine()

	rec := do(t, engine, http.MethodGet, "/api/ingredients/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")

	rec = do(t, engine, http.MethodPost, "/api/finance/assets", map[string]any{"name": "Casa", "purchase_value": 100, "category": "Imóveis"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, engine, http.MethodPatch, "/api/orders/missing/status", map[string]any{"status": "Voando"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, engine, http.MethodPost, "/api/orders", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, engine, http.MethodPost, "/api/reports/export", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, engine, http.MethodGet, "/api/reports/profit-composition?month=outubro", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, engine, http.MethodPost, "/api/recipes/quote", map[string]any{
		"name": "Bolo", "yield": 0, "lines": []map[string]any{{"ingredient_id": "x", "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssetCategoriesAndAdvice(t *testing.T) {
	engine := newEngine()

	rec := do(t, engine, http.MethodGet, "/api/finance/asset-categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	categories := decode[[]map[string]any](t, rec)
	require.Len(t, categories, 4)
	assert.Equal(t, "Eletrodomésticos", categories[0]["category"])
	assert.Equal(t, 10.0, categories[0]["useful_life_years"])

	rec = do(t, engine, http.MethodGet, "/api/recipes/suggestions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, advisor.SuggestionsFallback, decode[map[string]string](t, rec)["suggestions"])
}
