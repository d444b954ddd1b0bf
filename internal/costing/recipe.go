package costing

import "github.com/mamadbah2/deliciarte/internal/domain/models"

const minutesPerHour = 60

// LineCost is the cost of consuming quantity units of weight of the ingredient.
func LineCost(ingredient models.Ingredient, quantity float64) float64 {
	return quantity * ingredient.CostPerUnitWeight()
}

// NewIngredientLine freezes the current catalog price of the ingredient into a recipe line.
func NewIngredientLine(ingredient models.Ingredient, quantity float64) models.RecipeIngredientLine {
	return models.RecipeIngredientLine{
		IngredientID: ingredient.ID,
		Name:         ingredient.Name,
		Quantity:     quantity,
		Unit:         ingredient.Unit,
		Cost:         LineCost(ingredient, quantity),
	}
}

// RecipeInput carries everything needed to cost one batch of a recipe.
type RecipeInput struct {
	Lines             []models.RecipeIngredientLine
	PrepTimeMinutes   float64
	LaborHourlyRate   float64
	HourlyFixedRate   float64
	HourlyUtilityRate float64
	Yield             float64
}

// RecipeCost breaks the batch cost into its components.
type RecipeCost struct {
	RawMaterial      float64 `json:"raw_material"`
	Labor            float64 `json:"labor"`
	AllocatedFixed   float64 `json:"allocated_fixed"`
	AllocatedUtility float64 `json:"allocated_utility"`
	BatchCost        float64 `json:"batch_cost"`
	UnitCost         float64 `json:"unit_cost"`
}

// CostRecipe computes raw material, labor, fixed and utility costs of a batch
// and the cost of a single unit of its yield.
func CostRecipe(in RecipeInput) RecipeCost {
	var cost RecipeCost
	for _, line := range in.Lines {
		cost.RawMaterial += line.Cost
	}

	hours := in.PrepTimeMinutes / minutesPerHour
	cost.Labor = hours * in.LaborHourlyRate
	cost.AllocatedFixed = hours * in.HourlyFixedRate
	cost.AllocatedUtility = hours * in.HourlyUtilityRate

	cost.BatchCost = cost.RawMaterial + cost.Labor + cost.AllocatedFixed + cost.AllocatedUtility
	cost.UnitCost = safeDiv(cost.BatchCost, in.Yield)

	return cost
}

// NewRecipeInput builds the costing input from recipe lines, the production
// configuration and the fixed-cost summary.
func NewRecipeInput(lines []models.RecipeIngredientLine, prepTimeMinutes, yield float64, cfg models.ProductionConfig, summary FixedCostSummary) RecipeInput {
	return RecipeInput{
		Lines:             lines,
		PrepTimeMinutes:   prepTimeMinutes,
		LaborHourlyRate:   cfg.LaborHourlyRate,
		HourlyFixedRate:   summary.HourlyFixedRate,
		HourlyUtilityRate: summary.HourlyUtilityRate,
		Yield:             yield,
	}
}
