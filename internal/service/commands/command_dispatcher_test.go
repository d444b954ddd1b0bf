package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/deliciarte/internal/costing"
	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/service/reporting"
)

type stubReporting struct {
	dashboard reporting.Dashboard
}

func (s *stubReporting) WeeklySummary(context.Context) (string, error) {
	return "resumo", nil
}

func (s *stubReporting) Dashboard(context.Context) (reporting.Dashboard, error) {
	return s.dashboard, nil
}

func (s *stubReporting) Money(value float64) string {
	return reporting.FormatMoney("R$", value)
}

type stubOrders struct {
	days   int
	orders []models.Order
}

func (s *stubOrders) Upcoming(_ context.Context, days int) ([]models.Order, error) {
	s.days = days
	return s.orders, nil
}

type stubInventory struct {
	low   []models.Ingredient
	names []string
}

func (s *stubInventory) LowStock(context.Context) ([]models.Ingredient, error) { return s.low, nil }
func (s *stubInventory) Names(context.Context) ([]string, error)              { return s.names, nil }

type stubAdvisor struct {
	got []string
}

func (s *stubAdvisor) RecipeSuggestions(_ context.Context, ingredients []string) string {
	s.got = ingredients
	return "Pudim de leite"
}

type fixture struct {
	reporting *stubReporting
	orders    *stubOrders
	inventory *stubInventory
	advisor   *stubAdvisor
	svc       *Service
}

func newFixture() fixture {
	f := fixture{
		reporting: &stubReporting{},
		orders:    &stubOrders{},
		inventory: &stubInventory{},
		advisor:   &stubAdvisor{},
	}
	f.svc = NewService(f.reporting, f.orders, f.inventory, f.advisor, nil)
	return f
}

func TestHandleCommand_Report(t *testing.T) {
	f := newFixture()
	reply, err := f.svc.HandleCommand(context.Background(), models.ParseCommand("/relatorio"), "owner")
	require.NoError(t, err)
	assert.Equal(t, "resumo", reply)
}

func TestHandleCommand_Orders(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	reply, err := f.svc.HandleCommand(ctx, models.ParseCommand("/pedidos"), "owner")
	require.NoError(t, err)
	assert.Equal(t, 7, f.orders.days)
	assert.Equal(t, "Nenhuma entrega nos próximos 7 dia(s).", reply)

	f.orders.orders = []models.Order{{Customer: "Ana", Product: "Bolo", Quantity: 1, DeliveryDate: "2026-10-18", DeliveryTime: "15:00", Status: models.OrderConfirmed, TotalValue: 80}}
	reply, err = f.svc.HandleCommand(ctx, models.ParseCommand("/pedidos amanha"), "owner")
	require.NoError(t, err)
	assert.Equal(t, 2, f.orders.days)
	assert.Contains(t, reply, "- 2026-10-18 15:00: Bolo x1 para Ana (Confirmado) R$ 80,00")

	_, err = f.svc.HandleCommand(ctx, models.ParseCommand("/pedidos muitos"), "owner")
	assert.ErrorIs(t, err, ErrInvalidArguments)
}

func TestHandleCommand_Stock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	reply, err := f.svc.HandleCommand(ctx, models.ParseCommand("estoque"), "owner")
	require.NoError(t, err)
	assert.Contains(t, reply, "Nenhum ingrediente")

	f.inventory.low = []models.Ingredient{{Name: "Ovos", Unit: "un", QuantityOnHand: 4, MinimumStock: 12}}
	reply, err = f.svc.HandleCommand(ctx, models.ParseCommand("/stock"), "owner")
	require.NoError(t, err)
	assert.Contains(t, reply, "- Ovos: 4 un (mínimo 12)")
}

func TestHandleCommand_BreakEven(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	reply, err := f.svc.HandleCommand(ctx, models.ParseCommand("/equilibrio"), "owner")
	require.NoError(t, err)
	assert.Contains(t, reply, "indefinido")

	f.reporting.dashboard = reporting.Dashboard{
		Revenue:              1000,
		TotalFixedMonthly:    800,
		AverageMarginPercent: 40,
		BreakEven:            costing.BreakEvenPoint{Revenue: 2000, Defined: true},
		AchievementRatio:     0.5,
	}
	reply, err = f.svc.HandleCommand(ctx, models.ParseCommand("/breakeven"), "owner")
	require.NoError(t, err)
	assert.Contains(t, reply, "Ponto de equilíbrio: R$ 2000,00 por mês.")
	assert.Contains(t, reply, "(50% atingido)")
}

func TestHandleCommand_Suggestions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	reply, err := f.svc.HandleCommand(ctx, models.ParseCommand("/sugestoes"), "owner")
	require.NoError(t, err)
	assert.Contains(t, reply, "Nenhum ingrediente cadastrado")

	f.inventory.names = []string{"Leite", "Ovos"}
	reply, err = f.svc.HandleCommand(ctx, models.ParseCommand("/sugestoes"), "owner")
	require.NoError(t, err)
	assert.Equal(t, "Pudim de leite", reply)
	assert.Equal(t, []string{"Leite", "Ovos"}, f.advisor.got)
}

func TestHandleCommand_Unknown(t *testing.T) {
	_, err := newFixture().svc.HandleCommand(context.Background(), models.ParseCommand("oi"), "owner")
	assert.ErrorIs(t, err, ErrUnsupportedCommand)
}
