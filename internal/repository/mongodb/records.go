package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/deliciarte/internal/domain/models"
)

// CreateIngredient adds an ingredient to the catalog.
func (r *MongoDBRepository) CreateIngredient(ctx context.Context, ingredient models.Ingredient) error {
	return r.insert(ctx, ingredientsColl, ingredient)
}

// UpdateIngredient replaces a catalog entry. Saved recipes keep their frozen costs.
func (r *MongoDBRepository) UpdateIngredient(ctx context.Context, ingredient models.Ingredient) error {
	return r.replace(ctx, ingredientsColl, ingredient.ID, ingredient)
}

// DeleteIngredient removes a catalog entry.
func (r *MongoDBRepository) DeleteIngredient(ctx context.Context, id string) error {
	return r.delete(ctx, ingredientsColl, id)
}

// GetIngredient loads one catalog entry.
func (r *MongoDBRepository) GetIngredient(ctx context.Context, id string) (models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.findOne(ctx, ingredientsColl, id, &ingredient)
	return ingredient, err
}

// ListIngredients returns the catalog ordered by name.
func (r *MongoDBRepository) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	return findAll[models.Ingredient](ctx, r, ingredientsColl, bson.D{{Key: "name", Value: 1}})
}

// CreateRecipe appends a costed recipe snapshot.
func (r *MongoDBRepository) CreateRecipe(ctx context.Context, recipe models.Recipe) error {
	return r.insert(ctx, recipesColl, recipe)
}

// DeleteRecipe removes a recipe. Orders naming it are left untouched.
func (r *MongoDBRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.delete(ctx, recipesColl, id)
}

// GetRecipe loads one recipe.
func (r *MongoDBRepository) GetRecipe(ctx context.Context, id string) (models.Recipe, error) {
	var recipe models.Recipe
	err := r.findOne(ctx, recipesColl, id, &recipe)
	return recipe, err
}

// ListRecipes returns recipes in creation order.
func (r *MongoDBRepository) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	return findAll[models.Recipe](ctx, r, recipesColl, bson.D{{Key: "created_at", Value: 1}})
}

// CreateOrder adds an order to the calendar.
func (r *MongoDBRepository) CreateOrder(ctx context.Context, order models.Order) error {
	return r.insert(ctx, ordersColl, order)
}

// UpdateOrder replaces an order.
func (r *MongoDBRepository) UpdateOrder(ctx context.Context, order models.Order) error {
	return r.replace(ctx, ordersColl, order.ID, order)
}

// UpdateOrderStatus writes only the status field of an order.
func (r *MongoDBRepository) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	return r.set(ctx, ordersColl, id, bson.M{"status": status})
}

// DeleteOrder removes an order.
func (r *MongoDBRepository) DeleteOrder(ctx context.Context, id string) error {
	return r.delete(ctx, ordersColl, id)
}

// GetOrder loads one order.
func (r *MongoDBRepository) GetOrder(ctx context.Context, id string) (models.Order, error) {
	var order models.Order
	err := r.findOne(ctx, ordersColl, id, &order)
	return order, err
}

// ListOrders returns orders in insertion order.
func (r *MongoDBRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	return findAll[models.Order](ctx, r, ordersColl, nil)
}

// CreateFixedCost appends a monthly fixed cost.
func (r *MongoDBRepository) CreateFixedCost(ctx context.Context, cost models.FixedCost) error {
	return r.insert(ctx, fixedCostsColl, cost)
}

// DeleteFixedCost removes a monthly fixed cost.
func (r *MongoDBRepository) DeleteFixedCost(ctx context.Context, id string) error {
	return r.delete(ctx, fixedCostsColl, id)
}

// ListFixedCosts returns every monthly fixed cost.
func (r *MongoDBRepository) ListFixedCosts(ctx context.Context) ([]models.FixedCost, error) {
	return findAll[models.FixedCost](ctx, r, fixedCostsColl, nil)
}

// CreateAsset appends a depreciable asset.
func (r *MongoDBRepository) CreateAsset(ctx context.Context, asset models.DepreciableAsset) error {
	return r.insert(ctx, assetsColl, asset)
}

// DeleteAsset removes a depreciable asset.
func (r *MongoDBRepository) DeleteAsset(ctx context.Context, id string) error {
	return r.delete(ctx, assetsColl, id)
}

// ListAssets returns every depreciable asset.
func (r *MongoDBRepository) ListAssets(ctx context.Context) ([]models.DepreciableAsset, error) {
	return findAll[models.DepreciableAsset](ctx, r, assetsColl, nil)
}

// CreateVariableExpense appends a variable expense percentage.
func (r *MongoDBRepository) CreateVariableExpense(ctx context.Context, expense models.VariableExpense) error {
	return r.insert(ctx, variableExpensesColl, expense)
}

// DeleteVariableExpense removes a variable expense.
func (r *MongoDBRepository) DeleteVariableExpense(ctx context.Context, id string) error {
	return r.delete(ctx, variableExpensesColl, id)
}

// ListVariableExpenses returns every variable expense.
func (r *MongoDBRepository) ListVariableExpenses(ctx context.Context) ([]models.VariableExpense, error) {
	return findAll[models.VariableExpense](ctx, r, variableExpensesColl, nil)
}

// GetOrCreateProductionConfig returns the configuration singleton. The upsert
// only writes the defaults when no document exists yet.
func (r *MongoDBRepository) GetOrCreateProductionConfig(ctx context.Context, defaults models.ProductionConfig) (models.ProductionConfig, error) {
	defaults.ID = models.ProductionConfigID

	var cfg models.ProductionConfig
	err := r.db.Collection(configColl).FindOneAndUpdate(
		ctx,
		bson.M{"_id": models.ProductionConfigID},
		bson.M{"$setOnInsert": bson.M{
			"labor_hourly_rate":        defaults.LaborHourlyRate,
			"monthly_production_hours": defaults.MonthlyProductionHours,
			"monthly_gas_cost":         defaults.MonthlyGasCost,
			"monthly_electricity_cost": defaults.MonthlyElectricityCost,
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return defaults, nil
	}
	if err != nil {
		return models.ProductionConfig{}, fmt.Errorf("get or create production config: %w", err)
	}
	return cfg, nil
}

// SaveProductionConfig overwrites the configuration singleton.
func (r *MongoDBRepository) SaveProductionConfig(ctx context.Context, cfg models.ProductionConfig) error {
	cfg.ID = models.ProductionConfigID
	_, err := r.db.Collection(configColl).ReplaceOne(
		ctx,
		bson.M{"_id": models.ProductionConfigID},
		cfg,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save production config: %w", err)
	}
	return nil
}

// SaveMonthlySnapshot saves a monthly report snapshot to the database.
func (r *MongoDBRepository) SaveMonthlySnapshot(ctx context.Context, snapshot models.MonthlySnapshot) error {
	return r.insert(ctx, snapshotsColl, snapshot)
}
