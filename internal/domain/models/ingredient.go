package models

import "time"

// Ingredient is a raw material in the inventory catalog (insumo).
// UnitPrice is the price of one package; PackageWeight is the weight or volume
// of that package expressed in Unit.
type Ingredient struct {
	ID             string    `bson:"_id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Category       string    `bson:"category" json:"category"`
	Unit           string    `bson:"unit" json:"unit"`
	QuantityOnHand float64   `bson:"quantity_on_hand" json:"quantity_on_hand"`
	MinimumStock   float64   `bson:"minimum_stock" json:"minimum_stock"`
	UnitPrice      float64   `bson:"unit_price" json:"unit_price"`
	PackageWeight  float64   `bson:"package_weight" json:"package_weight"`
	Supplier       string    `bson:"supplier" json:"supplier"`
	RegisteredAt   time.Time `bson:"registered_at" json:"registered_at"`
}

// CostPerUnitWeight returns the price of a single gram (or unit) of the ingredient.
func (i Ingredient) CostPerUnitWeight() float64 {
	if i.PackageWeight <= 0 {
		return 0
	}
	return i.UnitPrice / i.PackageWeight
}

// StockValue is the purchase value of the packages currently on hand.
func (i Ingredient) StockValue() float64 {
	return i.QuantityOnHand * i.UnitPrice
}

// IsLowStock reports whether the stock is at or below the configured minimum.
func (i Ingredient) IsLowStock() bool {
	return i.QuantityOnHand <= i.MinimumStock
}

// IngredientCategories lists the catalog categories offered when registering an ingredient.
var IngredientCategories = []string{
	"Farinha", "Açúcar", "Laticínios", "Ovos", "Gorduras", "Frutas", "Chocolate", "Decoração", "Outros",
}
