// Package memory is an in-process implementation of the repository stores,
// used for local runs and tests. Collections keep insertion order.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/repository"
)

type collection[T any] struct {
	ids  []string
	docs map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{docs: make(map[string]T)}
}

func (c *collection[T]) insert(id string, doc T) {
	if _, exists := c.docs[id]; !exists {
		c.ids = append(c.ids, id)
	}
	c.docs[id] = doc
}

func (c *collection[T]) replace(id string, doc T) error {
	if _, exists := c.docs[id]; !exists {
		return repository.ErrNotFound
	}
	c.docs[id] = doc
	return nil
}

func (c *collection[T]) get(id string) (T, error) {
	doc, ok := c.docs[id]
	if !ok {
		var zero T
		return zero, repository.ErrNotFound
	}
	return doc, nil
}

func (c *collection[T]) delete(id string) error {
	if _, exists := c.docs[id]; !exists {
		return repository.ErrNotFound
	}
	delete(c.docs, id)
	for i, existing := range c.ids {
		if existing == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (c *collection[T]) list() []T {
	out := make([]T, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.docs[id])
	}
	return out
}

// Store holds every collection behind a single lock.
type Store struct {
	mu          sync.RWMutex
	ingredients *collection[models.Ingredient]
	recipes     *collection[models.Recipe]
	orders      *collection[models.Order]
	fixedCosts  *collection[models.FixedCost]
	assets      *collection[models.DepreciableAsset]
	expenses    *collection[models.VariableExpense]
	config      *models.ProductionConfig
	snapshots   []models.MonthlySnapshot
}

var (
	_ repository.IngredientStore = (*Store)(nil)
	_ repository.RecipeStore     = (*Store)(nil)
	_ repository.OrderStore      = (*Store)(nil)
	_ repository.FinanceStore    = (*Store)(nil)
	_ repository.SnapshotStore   = (*Store)(nil)
	_ repository.Store           = (*Store)(nil)
)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		ingredients: newCollection[models.Ingredient](),
		recipes:     newCollection[models.Recipe](),
		orders:      newCollection[models.Order](),
		fixedCosts:  newCollection[models.FixedCost](),
		assets:      newCollection[models.DepreciableAsset](),
		expenses:    newCollection[models.VariableExpense](),
	}
}

func (s *Store) CreateIngredient(_ context.Context, ingredient models.Ingredient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingredients.insert(ingredient.ID, ingredient)
	return nil
}

func (s *Store) UpdateIngredient(_ context.Context, ingredient models.Ingredient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ingredients.replace(ingredient.ID, ingredient)
}

func (s *Store) DeleteIngredient(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ingredients.delete(id)
}

func (s *Store) GetIngredient(_ context.Context, id string) (models.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ingredients.get(id)
}

// ListIngredients returns the catalog ordered by name, matching the MongoDB store.
func (s *Store) ListIngredients(_ context.Context) ([]models.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.ingredients.list()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateRecipe(_ context.Context, recipe models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes.insert(recipe.ID, recipe)
	return nil
}

func (s *Store) DeleteRecipe(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipes.delete(id)
}

func (s *Store) GetRecipe(_ context.Context, id string) (models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recipes.get(id)
}

func (s *Store) ListRecipes(_ context.Context) ([]models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recipes.list(), nil
}

func (s *Store) CreateOrder(_ context.Context, order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders.insert(order.ID, order)
	return nil
}

func (s *Store) UpdateOrder(_ context.Context, order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.replace(order.ID, order)
}

func (s *Store) UpdateOrderStatus(_ context.Context, id string, status models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, err := s.orders.get(id)
	if err != nil {
		return err
	}
	order.Status = status
	return s.orders.replace(id, order)
}

func (s *Store) DeleteOrder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.delete(id)
}

func (s *Store) GetOrder(_ context.Context, id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders.get(id)
}

func (s *Store) ListOrders(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders.list(), nil
}

func (s *Store) CreateFixedCost(_ context.Context, cost models.FixedCost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixedCosts.insert(cost.ID, cost)
	return nil
}

func (s *Store) DeleteFixedCost(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fixedCosts.delete(id)
}

func (s *Store) ListFixedCosts(_ context.Context) ([]models.FixedCost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fixedCosts.list(), nil
}

func (s *Store) CreateAsset(_ context.Context, asset models.DepreciableAsset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets.insert(asset.ID, asset)
	return nil
}

func (s *Store) DeleteAsset(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assets.delete(id)
}

func (s *Store) ListAssets(_ context.Context) ([]models.DepreciableAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assets.list(), nil
}

func (s *Store) CreateVariableExpense(_ context.Context, expense models.VariableExpense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses.insert(expense.ID, expense)
	return nil
}

func (s *Store) DeleteVariableExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expenses.delete(id)
}

func (s *Store) ListVariableExpenses(_ context.Context) ([]models.VariableExpense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expenses.list(), nil
}

func (s *Store) GetOrCreateProductionConfig(_ context.Context, defaults models.ProductionConfig) (models.ProductionConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config == nil {
		defaults.ID = models.ProductionConfigID
		s.config = &defaults
	}
	return *s.config, nil
}

func (s *Store) SaveProductionConfig(_ context.Context, cfg models.ProductionConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg.ID = models.ProductionConfigID
	s.config = &cfg
	return nil
}

func (s *Store) SaveMonthlySnapshot(_ context.Context, snapshot models.MonthlySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snapshot)
	return nil
}

// Snapshots returns the archived snapshots in save order.
func (s *Store) Snapshots() []models.MonthlySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MonthlySnapshot(nil), s.snapshots...)
}
