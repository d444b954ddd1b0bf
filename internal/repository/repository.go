// Package repository declares the persistence contracts used by the services.
// Implementations live in the sub-packages.
package repository

import (
	"context"
	"errors"

	"github.com/mamadbah2/deliciarte/internal/domain/models"
)

// ErrNotFound is returned when a record with the requested ID does not exist.
var ErrNotFound = errors.New("record not found")

// IngredientStore persists the inventory catalog.
type IngredientStore interface {
	CreateIngredient(ctx context.Context, ingredient models.Ingredient) error
	UpdateIngredient(ctx context.Context, ingredient models.Ingredient) error
	DeleteIngredient(ctx context.Context, id string) error
	GetIngredient(ctx context.Context, id string) (models.Ingredient, error)
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
}

// RecipeStore persists saved technical sheets.
type RecipeStore interface {
	CreateRecipe(ctx context.Context, recipe models.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
	GetRecipe(ctx context.Context, id string) (models.Recipe, error)
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
}

// OrderStore persists customer orders.
type OrderStore interface {
	CreateOrder(ctx context.Context, order models.Order) error
	UpdateOrder(ctx context.Context, order models.Order) error
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
	DeleteOrder(ctx context.Context, id string) error
	GetOrder(ctx context.Context, id string) (models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// FinanceStore persists fixed costs, assets, variable expenses and the
// production configuration singleton.
type FinanceStore interface {
	CreateFixedCost(ctx context.Context, cost models.FixedCost) error
	DeleteFixedCost(ctx context.Context, id string) error
	ListFixedCosts(ctx context.Context) ([]models.FixedCost, error)

	CreateAsset(ctx context.Context, asset models.DepreciableAsset) error
	DeleteAsset(ctx context.Context, id string) error
	ListAssets(ctx context.Context) ([]models.DepreciableAsset, error)

	CreateVariableExpense(ctx context.Context, expense models.VariableExpense) error
	DeleteVariableExpense(ctx context.Context, id string) error
	ListVariableExpenses(ctx context.Context) ([]models.VariableExpense, error)

	// GetOrCreateProductionConfig returns the singleton, inserting defaults when absent.
	GetOrCreateProductionConfig(ctx context.Context, defaults models.ProductionConfig) (models.ProductionConfig, error)
	SaveProductionConfig(ctx context.Context, cfg models.ProductionConfig) error
}

// SnapshotStore archives monthly report snapshots.
type SnapshotStore interface {
	SaveMonthlySnapshot(ctx context.Context, snapshot models.MonthlySnapshot) error
}

// Store is the full persistence surface implemented by every driver.
type Store interface {
	IngredientStore
	RecipeStore
	OrderStore
	FinanceStore
	SnapshotStore
}
