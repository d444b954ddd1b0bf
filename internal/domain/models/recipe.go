package models

import "time"

// RecipeIngredientLine is an ingredient consumed by a recipe. Cost is frozen at
// the moment the line is added and never follows later catalog price changes.
type RecipeIngredientLine struct {
	IngredientID string  `bson:"ingredient_id" json:"ingredient_id"`
	Name         string  `bson:"name" json:"name"`
	Quantity     float64 `bson:"quantity" json:"quantity"`
	Unit         string  `bson:"unit" json:"unit"`
	Cost         float64 `bson:"cost" json:"cost"`
}

// Recipe is a saved technical sheet (ficha técnica). ProductionCost, UnitCost
// and SalePrice are snapshots taken at save time.
type Recipe struct {
	ID                  string                 `bson:"_id" json:"id"`
	Name                string                 `bson:"name" json:"name"`
	Category            string                 `bson:"category" json:"category"`
	Yield               float64                `bson:"yield" json:"yield"`
	PrepTimeMinutes     float64                `bson:"prep_time_minutes" json:"prep_time_minutes"`
	ProductionCost      float64                `bson:"production_cost" json:"production_cost"`
	UnitCost            float64                `bson:"unit_cost" json:"unit_cost"`
	SalePrice           float64                `bson:"sale_price" json:"sale_price"`
	ProfitMarginPercent float64                `bson:"profit_margin_percent" json:"profit_margin_percent"`
	CreatedAt           time.Time              `bson:"created_at" json:"created_at"`
	Notes               string                 `bson:"notes" json:"notes"`
	Ingredients         []RecipeIngredientLine `bson:"ingredients" json:"ingredients"`
}

// IngredientNames returns the names of the recipe's ingredient lines in order.
func (r Recipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for _, line := range r.Ingredients {
		names = append(names, line.Name)
	}
	return names
}

// RecipeCategories lists the categories offered on the technical sheet.
var RecipeCategories = []string{"Bolos", "Tortas", "Doces", "Salgados", "Sobremesas"}
