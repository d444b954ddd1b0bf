package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/costing"
	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/repository"
	"github.com/mamadbah2/deliciarte/internal/service/advisor"
	"github.com/mamadbah2/deliciarte/internal/service/finance"
)

// FinanceSource provides the current finance records for costing.
type FinanceSource interface {
	Summary(ctx context.Context) (finance.Snapshot, error)
}

// LineRequest references a catalog ingredient and the quantity used in one batch.
type LineRequest struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

// Draft is a technical sheet being edited.
type Draft struct {
	Name                string        `json:"name"`
	Category            string        `json:"category"`
	Yield               float64       `json:"yield"`
	PrepTimeMinutes     float64       `json:"prep_time_minutes"`
	ProfitMarginPercent float64       `json:"profit_margin_percent"`
	Notes               string        `json:"notes"`
	Lines               []LineRequest `json:"lines"`
}

// Quote is the cost breakdown and suggested price of a draft.
type Quote struct {
	Lines                  []models.RecipeIngredientLine `json:"lines"`
	Cost                   costing.RecipeCost            `json:"cost"`
	Price                  costing.Price                 `json:"price"`
	VariableExpensePercent float64                       `json:"variable_expense_percent"`
	Warning                string                        `json:"warning,omitempty"`
}

// Service builds, prices and stores technical sheets.
type Service struct {
	ingredients repository.IngredientStore
	recipes     repository.RecipeStore
	finance     FinanceSource
	advisor     *advisor.Service
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
}

// NewService wires a new recipe service instance.
func NewService(ingredients repository.IngredientStore, recipes repository.RecipeStore, financeSource FinanceSource, adv *advisor.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ingredients: ingredients,
		recipes:     recipes,
		finance:     financeSource,
		advisor:     adv,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

func (d Draft) validate() error {
	switch {
	case d.Yield <= 0:
		return fmt.Errorf("%w: yield must be greater than zero", models.ErrInvalidInput)
	case d.PrepTimeMinutes < 0:
		return fmt.Errorf("%w: prep time must not be negative", models.ErrInvalidInput)
	case d.ProfitMarginPercent < 0 || d.ProfitMarginPercent > 100:
		return fmt.Errorf("%w: profit margin must be between 0 and 100", models.ErrInvalidInput)
	}
	return nil
}

// Quote costs the draft with the current catalog prices and finance data. Nothing is written.
func (s *Service) Quote(ctx context.Context, draft Draft) (Quote, error) {
	if err := draft.validate(); err != nil {
		return Quote{}, err
	}

	lines, err := s.freezeLines(ctx, draft.Lines)
	if err != nil {
		return Quote{}, err
	}

	snapshot, err := s.finance.Summary(ctx)
	if err != nil {
		return Quote{}, err
	}

	cost := costing.CostRecipe(costing.NewRecipeInput(lines, draft.PrepTimeMinutes, draft.Yield, snapshot.Config, snapshot.Summary))
	quote := Quote{
		Lines:                  lines,
		Cost:                   cost,
		VariableExpensePercent: snapshot.VariableExpensePercent,
	}

	price, err := costing.SuggestPrice(cost.UnitCost, draft.ProfitMarginPercent, snapshot.VariableExpensePercent)
	quote.Price = price
	if errors.Is(err, costing.ErrPriceUndefined) {
		quote.Warning = "Margem de lucro somada às despesas variáveis atinge 100% do preço; reduza a margem."
	}

	return quote, nil
}

// Save quotes the draft and stores it as a recipe with frozen costs.
// An undefined price is stored as 0.
func (s *Service) Save(ctx context.Context, draft Draft) (models.Recipe, Quote, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" || len(draft.Lines) == 0 {
		return models.Recipe{}, Quote{}, fmt.Errorf("%w: recipe needs a name and at least one ingredient", models.ErrInvalidInput)
	}

	quote, err := s.Quote(ctx, draft)
	if err != nil {
		return models.Recipe{}, Quote{}, err
	}

	recipe := models.Recipe{
		ID:                  s.newID(),
		Name:                name,
		Category:            draft.Category,
		Yield:               draft.Yield,
		PrepTimeMinutes:     draft.PrepTimeMinutes,
		ProductionCost:      quote.Cost.BatchCost,
		UnitCost:            quote.Cost.UnitCost,
		SalePrice:           quote.Price.Value,
		ProfitMarginPercent: draft.ProfitMarginPercent,
		CreatedAt:           s.now().UTC(),
		Notes:               draft.Notes,
		Ingredients:         quote.Lines,
	}
	if err := s.recipes.CreateRecipe(ctx, recipe); err != nil {
		return models.Recipe{}, Quote{}, fmt.Errorf("create recipe: %w", err)
	}

	s.logger.Info("recipe saved",
		zap.String("id", recipe.ID),
		zap.String("name", recipe.Name),
		zap.Float64("unit_cost", recipe.UnitCost),
		zap.Float64("sale_price", recipe.SalePrice),
		zap.Bool("price_defined", quote.Price.Defined))
	return recipe, quote, nil
}

// Get returns one recipe.
func (s *Service) Get(ctx context.Context, id string) (models.Recipe, error) {
	recipe, err := s.recipes.GetRecipe(ctx, id)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("get recipe %s: %w", id, err)
	}
	return recipe, nil
}

// List returns recipes whose name or category contains search, ignoring case.
func (s *Service) List(ctx context.Context, search string) ([]models.Recipe, error) {
	all, err := s.recipes.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return all, nil
	}

	matched := make([]models.Recipe, 0, len(all))
	for _, recipe := range all {
		if strings.Contains(strings.ToLower(recipe.Name), search) || strings.Contains(strings.ToLower(recipe.Category), search) {
			matched = append(matched, recipe)
		}
	}
	return matched, nil
}

// Delete removes a recipe.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.recipes.DeleteRecipe(ctx, id); err != nil {
		return fmt.Errorf("delete recipe %s: %w", id, err)
	}
	s.logger.Info("recipe deleted", zap.String("id", id))
	return nil
}

// PricingAdvice quotes the draft and asks the advisor for price tiers.
func (s *Service) PricingAdvice(ctx context.Context, draft Draft) (string, error) {
	quote, err := s.Quote(ctx, draft)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		names = append(names, line.Name)
	}

	return s.advisor.PricingAdvice(ctx, advisor.PricingRequest{
		UnitCost:    quote.Cost.UnitCost,
		Category:    draft.Category,
		Ingredients: names,
	}), nil
}

func (s *Service) freezeLines(ctx context.Context, requests []LineRequest) ([]models.RecipeIngredientLine, error) {
	lines := make([]models.RecipeIngredientLine, 0, len(requests))
	for _, req := range requests {
		if req.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity of %s must not be negative", models.ErrInvalidInput, req.IngredientID)
		}

		ingredient, err := s.ingredients.GetIngredient(ctx, req.IngredientID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown ingredient %s", models.ErrInvalidInput, req.IngredientID)
		}
		if err != nil {
			return nil, fmt.Errorf("load ingredient %s: %w", req.IngredientID, err)
		}

		lines = append(lines, costing.NewIngredientLine(ingredient, req.Quantity))
	}
	return lines, nil
}
