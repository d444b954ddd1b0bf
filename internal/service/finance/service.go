package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/costing"
	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/repository"
)

// Snapshot is everything the costing engine needs from the finance records,
// read as separate non-atomic fetches.
type Snapshot struct {
	Config                 models.ProductionConfig   `json:"config"`
	FixedCosts             []models.FixedCost        `json:"fixed_costs"`
	Assets                 []models.DepreciableAsset `json:"assets"`
	VariableExpenses       []models.VariableExpense  `json:"variable_expenses"`
	Summary                costing.FixedCostSummary  `json:"summary"`
	VariableExpensePercent float64                   `json:"variable_expense_percent"`
}

// AssetRequest is the user input for registering a depreciable asset.
type AssetRequest struct {
	Name          string    `json:"name"`
	PurchaseValue float64   `json:"purchase_value"`
	Category      string    `json:"category"`
	PurchaseDate  time.Time `json:"purchase_date"`
}

// Service manages production parameters, fixed costs, assets and variable expenses.
type Service struct {
	store  repository.FinanceStore
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires a new finance service instance.
func NewService(store repository.FinanceStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now, newID: uuid.NewString}
}

// ProductionConfig returns the singleton configuration, creating it with defaults on first access.
func (s *Service) ProductionConfig(ctx context.Context) (models.ProductionConfig, error) {
	cfg, err := s.store.GetOrCreateProductionConfig(ctx, models.DefaultProductionConfig())
	if err != nil {
		return models.ProductionConfig{}, fmt.Errorf("load production config: %w", err)
	}
	return cfg, nil
}

// UpdateProductionConfig validates and overwrites the production parameters.
func (s *Service) UpdateProductionConfig(ctx context.Context, cfg models.ProductionConfig) (models.ProductionConfig, error) {
	if cfg.LaborHourlyRate < 0 || cfg.MonthlyProductionHours < 0 || cfg.MonthlyGasCost < 0 || cfg.MonthlyElectricityCost < 0 {
		return models.ProductionConfig{}, fmt.Errorf("%w: production parameters must not be negative", models.ErrInvalidInput)
	}

	cfg.ID = models.ProductionConfigID
	if err := s.store.SaveProductionConfig(ctx, cfg); err != nil {
		return models.ProductionConfig{}, fmt.Errorf("save production config: %w", err)
	}

	s.logger.Info("production config updated",
		zap.Float64("labor_hourly_rate", cfg.LaborHourlyRate),
		zap.Float64("monthly_hours", cfg.MonthlyProductionHours))
	return cfg, nil
}

// AddFixedCost appends a monthly fixed cost. The value must be positive.
func (s *Service) AddFixedCost(ctx context.Context, name string, value float64) (models.FixedCost, error) {
	name = strings.TrimSpace(name)
	if name == "" || value <= 0 {
		return models.FixedCost{}, fmt.Errorf("%w: fixed cost needs a name and a positive value", models.ErrInvalidInput)
	}

	cost := models.FixedCost{ID: s.newID(), Name: name, Value: value}
	if err := s.store.CreateFixedCost(ctx, cost); err != nil {
		return models.FixedCost{}, fmt.Errorf("create fixed cost: %w", err)
	}
	return cost, nil
}

// DeleteFixedCost removes a fixed cost.
func (s *Service) DeleteFixedCost(ctx context.Context, id string) error {
	if err := s.store.DeleteFixedCost(ctx, id); err != nil {
		return fmt.Errorf("delete fixed cost %s: %w", id, err)
	}
	return nil
}

// ListFixedCosts returns every fixed cost.
func (s *Service) ListFixedCosts(ctx context.Context) ([]models.FixedCost, error) {
	costs, err := s.store.ListFixedCosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fixed costs: %w", err)
	}
	return costs, nil
}

// AddAsset registers a depreciable asset. The category is validated here and
// its rate and useful life are copied onto the record.
func (s *Service) AddAsset(ctx context.Context, req AssetRequest) (models.DepreciableAsset, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.PurchaseValue <= 0 {
		return models.DepreciableAsset{}, fmt.Errorf("%w: asset needs a name and a positive purchase value", models.ErrInvalidInput)
	}

	category, err := models.ParseAssetCategory(req.Category)
	if err != nil {
		return models.DepreciableAsset{}, err
	}
	schedule, err := category.Schedule()
	if err != nil {
		return models.DepreciableAsset{}, err
	}

	purchaseDate := req.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = s.now().UTC()
	}

	asset := models.DepreciableAsset{
		ID:              s.newID(),
		Name:            name,
		PurchaseValue:   req.PurchaseValue,
		Category:        category,
		PurchaseDate:    purchaseDate,
		UsefulLifeYears: schedule.UsefulLifeYears,
		AnnualRate:      schedule.AnnualRate,
	}
	if err := s.store.CreateAsset(ctx, asset); err != nil {
		return models.DepreciableAsset{}, fmt.Errorf("create asset: %w", err)
	}
	return asset, nil
}

// DeleteAsset removes a depreciable asset.
func (s *Service) DeleteAsset(ctx context.Context, id string) error {
	if err := s.store.DeleteAsset(ctx, id); err != nil {
		return fmt.Errorf("delete asset %s: %w", id, err)
	}
	return nil
}

// ListAssets returns every depreciable asset.
func (s *Service) ListAssets(ctx context.Context) ([]models.DepreciableAsset, error) {
	assets, err := s.store.ListAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return assets, nil
}

// AddVariableExpense appends a percentage-of-price expense.
func (s *Service) AddVariableExpense(ctx context.Context, name string, percent float64) (models.VariableExpense, error) {
	name = strings.TrimSpace(name)
	if name == "" || percent < 0 {
		return models.VariableExpense{}, fmt.Errorf("%w: variable expense needs a name and a non-negative percentage", models.ErrInvalidInput)
	}

	expense := models.VariableExpense{ID: s.newID(), Name: name, Percent: percent}
	if err := s.store.CreateVariableExpense(ctx, expense); err != nil {
		return models.VariableExpense{}, fmt.Errorf("create variable expense: %w", err)
	}
	return expense, nil
}

// DeleteVariableExpense removes a variable expense.
func (s *Service) DeleteVariableExpense(ctx context.Context, id string) error {
	if err := s.store.DeleteVariableExpense(ctx, id); err != nil {
		return fmt.Errorf("delete variable expense %s: %w", id, err)
	}
	return nil
}

// ListVariableExpenses returns every variable expense.
func (s *Service) ListVariableExpenses(ctx context.Context) ([]models.VariableExpense, error) {
	expenses, err := s.store.ListVariableExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list variable expenses: %w", err)
	}
	return expenses, nil
}

// Summary fetches every finance record and derives the fixed-cost summary.
func (s *Service) Summary(ctx context.Context) (Snapshot, error) {
	cfg, err := s.ProductionConfig(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	fixed, err := s.ListFixedCosts(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	assets, err := s.ListAssets(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	expenses, err := s.ListVariableExpenses(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Config:                 cfg,
		FixedCosts:             fixed,
		Assets:                 assets,
		VariableExpenses:       expenses,
		Summary:                costing.AggregateFixedCosts(fixed, assets, cfg),
		VariableExpensePercent: costing.TotalVariableExpensePercent(expenses),
	}, nil
}
