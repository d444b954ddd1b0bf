package reporting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/costing"
	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/repository"
	"github.com/mamadbah2/deliciarte/internal/repository/sheets"
	"github.com/mamadbah2/deliciarte/internal/service/finance"
)

const (
	monthLayout      = "2006-01"
	compositionRange = "Composicao!A:M"
	topProducts      = 3
)

var compositionHeader = []interface{}{
	"Mês", "Produto", "Qtd vendida", "Vendas", "% Vendas", "CMV", "Entrega", "Impostos",
	"Margem contrib.", "% Margem", "Custo fixo", "Lucro", "% Lucro",
}

// ErrExportDisabled is returned when no spreadsheet is configured.
var ErrExportDisabled = errors.New("spreadsheet export is not configured")

// FinanceSource provides the current finance records.
type FinanceSource interface {
	Summary(ctx context.Context) (finance.Snapshot, error)
}

// Dependencies groups the collaborators of the reporting service. Sheets may be nil.
type Dependencies struct {
	Orders         repository.OrderStore
	Recipes        repository.RecipeStore
	Ingredients    repository.IngredientStore
	Snapshots      repository.SnapshotStore
	Finance        FinanceSource
	Sheets         sheets.Repository
	CurrencySymbol string
	// Location decides which month "now" falls in. Nil means time.Local.
	Location *time.Location
}

// Dashboard is the headline view of the business.
type Dashboard struct {
	Revenue              float64                `json:"revenue"`
	OrderCount           int                    `json:"order_count"`
	AverageTicket        float64                `json:"average_ticket"`
	LowStockCount        int                    `json:"low_stock_count"`
	StockValue           float64                `json:"stock_value"`
	TotalFixedMonthly    float64                `json:"total_fixed_monthly"`
	BreakEven            costing.BreakEvenPoint `json:"break_even"`
	AverageMarginPercent float64                `json:"average_margin_percent"`
	AchievementRatio     float64                `json:"achievement_ratio"`
	// Profitable is true once revenue is above the break-even revenue.
	Profitable bool `json:"profitable"`
}

// ExportResult describes what an export run did.
type ExportResult struct {
	Month           string `json:"month"`
	Rows            int    `json:"rows"`
	AlreadyExported bool   `json:"already_exported"`
}

// Service computes the profit composition, dashboard and periodic summaries.
type Service struct {
	deps     Dependencies
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires a new reporting service instance.
func NewService(deps Dependencies, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.CurrencySymbol == "" {
		deps.CurrencySymbol = "R$"
	}
	location := deps.Location
	if location == nil {
		location = time.Local
	}
	return &Service{deps: deps, location: location, logger: logger, now: time.Now, newID: uuid.NewString}
}

// CurrentMonth is the YYYY-MM month of the current time in the configured location.
func (s *Service) CurrentMonth() string {
	return s.now().In(s.location).Format(monthLayout)
}

// ProfitComposition builds the per-product profit table. An empty month covers
// every order, otherwise only orders placed in that YYYY-MM month count.
func (s *Service) ProfitComposition(ctx context.Context, month string) (costing.ProfitComposition, error) {
	if err := validateMonth(month); err != nil {
		return costing.ProfitComposition{}, err
	}
	composition, _, err := s.compose(ctx, month)
	return composition, err
}

func validateMonth(month string) error {
	if month == "" {
		return nil
	}
	if _, err := time.Parse(monthLayout, month); err != nil {
		return fmt.Errorf("%w: month must be YYYY-MM, got %q", models.ErrInvalidInput, month)
	}
	return nil
}

// orderMonth is the month an order is booked in, by order date and then delivery date.
func orderMonth(order models.Order) string {
	for _, date := range []string{order.OrderDate, order.DeliveryDate} {
		if len(date) >= len(monthLayout) {
			return date[:len(monthLayout)]
		}
	}
	return ""
}

func (s *Service) compose(ctx context.Context, month string) (costing.ProfitComposition, finance.Snapshot, error) {
	orders, err := s.deps.Orders.ListOrders(ctx)
	if err != nil {
		return costing.ProfitComposition{}, finance.Snapshot{}, fmt.Errorf("list orders: %w", err)
	}
	if month != "" {
		inMonth := make([]models.Order, 0, len(orders))
		for _, order := range orders {
			if orderMonth(order) == month {
				inMonth = append(inMonth, order)
			}
		}
		orders = inMonth
	}
	recipes, err := s.deps.Recipes.ListRecipes(ctx)
	if err != nil {
		return costing.ProfitComposition{}, finance.Snapshot{}, fmt.Errorf("list recipes: %w", err)
	}
	snapshot, err := s.deps.Finance.Summary(ctx)
	if err != nil {
		return costing.ProfitComposition{}, finance.Snapshot{}, err
	}

	composition := costing.ComposeProfit(orders, recipes, snapshot.VariableExpenses, snapshot.Summary.TotalFixedMonthly)
	if len(composition.UnmatchedProducts) > 0 {
		s.logger.Warn("ordered products without a matching recipe are reported with zero cost of goods",
			zap.Strings("products", composition.UnmatchedProducts))
	}
	return composition, snapshot, nil
}

// Dashboard summarizes revenue, stock alerts and the break-even position.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	orders, err := s.deps.Orders.ListOrders(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list orders: %w", err)
	}
	recipes, err := s.deps.Recipes.ListRecipes(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list recipes: %w", err)
	}
	ingredients, err := s.deps.Ingredients.ListIngredients(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list ingredients: %w", err)
	}
	snapshot, err := s.deps.Finance.Summary(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	var dashboard Dashboard
	for _, order := range orders {
		if order.IsCancelled() {
			continue
		}
		dashboard.Revenue += order.TotalValue
		dashboard.OrderCount++
	}
	for _, ingredient := range ingredients {
		dashboard.StockValue += ingredient.StockValue()
		if ingredient.IsLowStock() {
			dashboard.LowStockCount++
		}
	}
	if dashboard.OrderCount > 0 {
		dashboard.AverageTicket = dashboard.Revenue / float64(dashboard.OrderCount)
	}

	ratio := costing.AverageContributionMarginRatio(recipes)
	dashboard.TotalFixedMonthly = snapshot.Summary.TotalFixedMonthly
	dashboard.AverageMarginPercent = ratio * 100
	dashboard.BreakEven = costing.BreakEven(snapshot.Summary.TotalFixedMonthly, ratio)
	dashboard.AchievementRatio = costing.AchievementRatio(dashboard.Revenue, dashboard.BreakEven.Revenue)
	dashboard.Profitable = dashboard.Revenue > dashboard.BreakEven.Revenue

	return dashboard, nil
}

// SaveMonthlySnapshot archives the profit picture of the orders placed in the
// month containing at.
func (s *Service) SaveMonthlySnapshot(ctx context.Context, at time.Time) (models.MonthlySnapshot, error) {
	month := at.In(s.location).Format(monthLayout)
	composition, finSnapshot, err := s.compose(ctx, month)
	if err != nil {
		return models.MonthlySnapshot{}, err
	}
	recipes, err := s.deps.Recipes.ListRecipes(ctx)
	if err != nil {
		return models.MonthlySnapshot{}, fmt.Errorf("list recipes: %w", err)
	}

	breakEven := costing.BreakEven(finSnapshot.Summary.TotalFixedMonthly, costing.AverageContributionMarginRatio(recipes))
	snapshot := models.MonthlySnapshot{
		ID:                s.newID(),
		Month:             month,
		Revenue:           composition.TotalRevenue,
		OrderCount:        composition.OrderCount,
		TotalFixedMonthly: finSnapshot.Summary.TotalFixedMonthly,
		ContributionValue: composition.Total.ContributionValue,
		Profit:            composition.Total.Profit,
		BreakEvenRevenue:  breakEven.Revenue,
		Products:          composition.Table(),
		CreatedAt:         s.now().UTC(),
	}

	if err := s.deps.Snapshots.SaveMonthlySnapshot(ctx, snapshot); err != nil {
		return models.MonthlySnapshot{}, fmt.Errorf("save monthly snapshot: %w", err)
	}

	s.logger.Info("monthly snapshot saved",
		zap.String("month", snapshot.Month),
		zap.Float64("revenue", snapshot.Revenue),
		zap.Float64("profit", snapshot.Profit))
	return snapshot, nil
}

// ExportComposition appends the profit table of the orders placed in month
// (YYYY-MM, empty for the current month) to the spreadsheet. A month already
// present in the sheet is not exported twice.
func (s *Service) ExportComposition(ctx context.Context, month string) (ExportResult, error) {
	if s.deps.Sheets == nil {
		return ExportResult{}, ErrExportDisabled
	}
	if month == "" {
		month = s.CurrentMonth()
	}
	if err := validateMonth(month); err != nil {
		return ExportResult{}, err
	}
	result := ExportResult{Month: month}

	existing, err := s.deps.Sheets.ReadRange(ctx, compositionRange)
	if err != nil {
		return ExportResult{}, fmt.Errorf("load exported rows: %w", err)
	}
	for _, row := range existing {
		if len(row) > 0 && strings.TrimPrefix(fmt.Sprint(row[0]), "'") == month {
			s.logger.Info("composition already exported", zap.String("month", month))
			result.AlreadyExported = true
			return result, nil
		}
	}

	composition, _, err := s.compose(ctx, month)
	if err != nil {
		return ExportResult{}, err
	}

	rows := make([][]interface{}, 0, len(composition.Rows)+2)
	if len(existing) == 0 {
		rows = append(rows, compositionHeader)
	}
	for _, line := range composition.Table() {
		rows = append(rows, []interface{}{
			// A leading apostrophe keeps Sheets from reading the month as a date.
			"'" + month,
			line.Product,
			decimal.NewFromFloat(line.QuantitySold).String(),
			fixed2(line.Sales),
			fixed2(line.SalesShare * 100),
			fixed2(line.COGS),
			fixed2(line.DeliveryExpense),
			fixed2(line.Taxes),
			fixed2(line.ContributionValue),
			fixed2(line.ContributionPct),
			fixed2(line.FixedAllocation),
			fixed2(line.Profit),
			fixed2(line.ProfitPct),
		})
	}

	if err := s.deps.Sheets.AppendRows(ctx, compositionRange, rows); err != nil {
		return ExportResult{}, fmt.Errorf("export composition: %w", err)
	}

	result.Rows = len(composition.Rows) + 1
	s.logger.Info("composition exported", zap.String("month", month), zap.Int("rows", result.Rows))
	return result, nil
}

// WeeklySummary renders the owner's periodic summary as a chat message.
func (s *Service) WeeklySummary(ctx context.Context) (string, error) {
	dashboard, err := s.Dashboard(ctx)
	if err != nil {
		return "", err
	}
	composition, _, err := s.compose(ctx, "")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Resumo Deliciarte (%s)\n", s.now().In(s.location).Format("02/01/2006"))
	fmt.Fprintf(&b, "Faturamento: %s em %d pedido(s)\n", s.Money(dashboard.Revenue), dashboard.OrderCount)
	fmt.Fprintf(&b, "Ticket médio: %s\n", s.Money(dashboard.AverageTicket))
	fmt.Fprintf(&b, "Lucro estimado: %s\n", s.Money(composition.Total.Profit))
	if dashboard.BreakEven.Defined {
		fmt.Fprintf(&b, "Ponto de equilíbrio: %s (%s%% atingido)\n",
			s.Money(dashboard.BreakEven.Revenue), fixed2(dashboard.AchievementRatio*100))
	}
	health := "Em recuperação"
	if dashboard.Profitable {
		health = "Lucrativa"
	}
	fmt.Fprintf(&b, "Saúde financeira: %s\n", health)
	fmt.Fprintf(&b, "Ingredientes com estoque baixo: %d\n", dashboard.LowStockCount)

	rows := append([]models.ProductProfit(nil), composition.Rows...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Sales > rows[j].Sales })
	if len(rows) > topProducts {
		rows = rows[:topProducts]
	}
	if len(rows) > 0 {
		b.WriteString("Mais vendidos:\n")
		for _, row := range rows {
			fmt.Fprintf(&b, "- %s: %s\n", row.Product, s.Money(row.Sales))
		}
	}
	if len(composition.UnmatchedProducts) > 0 {
		fmt.Fprintf(&b, "⚠️ Sem ficha técnica: %s\n", strings.Join(composition.UnmatchedProducts, ", "))
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// Money formats an amount with the configured currency symbol and two decimals.
func (s *Service) Money(value float64) string {
	return FormatMoney(s.deps.CurrencySymbol, value)
}

// FormatMoney renders value as "R$ 1234,50".
func FormatMoney(symbol string, value float64) string {
	return symbol + " " + strings.Replace(fixed2(value), ".", ",", 1)
}

func fixed2(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}
