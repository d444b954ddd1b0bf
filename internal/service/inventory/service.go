package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/repository"
)

// Service manages the ingredient catalog.
type Service struct {
	store  repository.IngredientStore
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires a new inventory service instance.
func NewService(store repository.IngredientStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Create validates and registers a new ingredient.
func (s *Service) Create(ctx context.Context, ingredient models.Ingredient) (models.Ingredient, error) {
	if err := validate(ingredient); err != nil {
		return models.Ingredient{}, err
	}

	ingredient.ID = s.newID()
	ingredient.Name = strings.TrimSpace(ingredient.Name)
	ingredient.RegisteredAt = s.now().UTC()
	if ingredient.Category == "" {
		ingredient.Category = "Outros"
	}

	if err := s.store.CreateIngredient(ctx, ingredient); err != nil {
		return models.Ingredient{}, fmt.Errorf("create ingredient: %w", err)
	}

	s.logger.Info("ingredient registered", zap.String("id", ingredient.ID), zap.String("name", ingredient.Name))
	return ingredient, nil
}

// Update replaces the catalog entry. Recipes already saved keep their frozen line costs.
func (s *Service) Update(ctx context.Context, id string, ingredient models.Ingredient) (models.Ingredient, error) {
	if err := validate(ingredient); err != nil {
		return models.Ingredient{}, err
	}

	current, err := s.store.GetIngredient(ctx, id)
	if err != nil {
		return models.Ingredient{}, fmt.Errorf("load ingredient %s: %w", id, err)
	}

	ingredient.ID = current.ID
	ingredient.Name = strings.TrimSpace(ingredient.Name)
	ingredient.RegisteredAt = s.now().UTC()

	if err := s.store.UpdateIngredient(ctx, ingredient); err != nil {
		return models.Ingredient{}, fmt.Errorf("update ingredient %s: %w", id, err)
	}
	return ingredient, nil
}

// Delete removes an ingredient from the catalog.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteIngredient(ctx, id); err != nil {
		return fmt.Errorf("delete ingredient %s: %w", id, err)
	}
	return nil
}

// Get loads one ingredient.
func (s *Service) Get(ctx context.Context, id string) (models.Ingredient, error) {
	ingredient, err := s.store.GetIngredient(ctx, id)
	if err != nil {
		return models.Ingredient{}, fmt.Errorf("load ingredient %s: %w", id, err)
	}
	return ingredient, nil
}

// List returns the catalog, filtered by a case-insensitive name fragment when search is set.
func (s *Service) List(ctx context.Context, search string) ([]models.Ingredient, error) {
	all, err := s.store.ListIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return all, nil
	}

	filtered := make([]models.Ingredient, 0, len(all))
	for _, ingredient := range all {
		if strings.Contains(strings.ToLower(ingredient.Name), needle) {
			filtered = append(filtered, ingredient)
		}
	}
	return filtered, nil
}

// LowStock returns the ingredients at or below their minimum stock.
func (s *Service) LowStock(ctx context.Context) ([]models.Ingredient, error) {
	all, err := s.store.ListIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}

	low := make([]models.Ingredient, 0)
	for _, ingredient := range all {
		if ingredient.IsLowStock() {
			low = append(low, ingredient)
		}
	}
	return low, nil
}

// Names returns the names of every catalog ingredient.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	all, err := s.store.ListIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}

	names := make([]string, 0, len(all))
	for _, ingredient := range all {
		names = append(names, ingredient.Name)
	}
	return names, nil
}

func validate(ingredient models.Ingredient) error {
	switch {
	case strings.TrimSpace(ingredient.Name) == "":
		return fmt.Errorf("%w: ingredient name is required", models.ErrInvalidInput)
	case ingredient.UnitPrice < 0:
		return fmt.Errorf("%w: unit price must not be negative", models.ErrInvalidInput)
	case ingredient.PackageWeight < 0:
		return fmt.Errorf("%w: package weight must not be negative", models.ErrInvalidInput)
	case ingredient.QuantityOnHand < 0 || ingredient.MinimumStock < 0:
		return fmt.Errorf("%w: stock quantities must not be negative", models.ErrInvalidInput)
	}
	return nil
}
