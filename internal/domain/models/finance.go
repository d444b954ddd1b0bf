package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownAssetCategory is returned when an asset category has no depreciation schedule.
var ErrUnknownAssetCategory = errors.New("unknown asset category")

// FixedCost is a recurring monthly expense (rent, internet, accountant...).
type FixedCost struct {
	ID    string  `bson:"_id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	Value float64 `bson:"value" json:"value"`
}

// VariableExpense is a percentage of the sale price (taxes, card fees...).
type VariableExpense struct {
	ID      string  `bson:"_id" json:"id"`
	Name    string  `bson:"name" json:"name"`
	Percent float64 `bson:"percent" json:"percent"`
}

// AssetCategory is a closed set of depreciation classes.
type AssetCategory string

const (
	AssetAppliances  AssetCategory = "Eletrodomésticos"
	AssetElectronics AssetCategory = "Eletrônicos"
	AssetFurniture   AssetCategory = "Móveis/Utensílios"
	AssetVehicles    AssetCategory = "Veículos"
)

// DepreciationSchedule is the annual rate and useful life attached to a category.
type DepreciationSchedule struct {
	AnnualRate      float64 `json:"annual_rate"`
	UsefulLifeYears float64 `json:"useful_life_years"`
}

var depreciationSchedules = map[AssetCategory]DepreciationSchedule{
	AssetAppliances:  {AnnualRate: 10, UsefulLifeYears: 10},
	AssetElectronics: {AnnualRate: 20, UsefulLifeYears: 5},
	AssetFurniture:   {AnnualRate: 10, UsefulLifeYears: 10},
	AssetVehicles:    {AnnualRate: 20, UsefulLifeYears: 5},
}

// AssetCategories lists the supported categories in display order.
var AssetCategories = []AssetCategory{AssetAppliances, AssetElectronics, AssetFurniture, AssetVehicles}

// Schedule returns the depreciation schedule of the category.
func (c AssetCategory) Schedule() (DepreciationSchedule, error) {
	schedule, ok := depreciationSchedules[c]
	if !ok {
		return DepreciationSchedule{}, fmt.Errorf("%w: %q", ErrUnknownAssetCategory, string(c))
	}
	return schedule, nil
}

// ParseAssetCategory validates a free-text category selected by the user.
func ParseAssetCategory(value string) (AssetCategory, error) {
	normalized := strings.TrimSpace(value)
	for _, category := range AssetCategories {
		if strings.EqualFold(normalized, string(category)) {
			return category, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAssetCategory, value)
}

// DepreciableAsset is equipment whose purchase value is spread over its useful life.
type DepreciableAsset struct {
	ID              string        `bson:"_id" json:"id"`
	Name            string        `bson:"name" json:"name"`
	PurchaseValue   float64       `bson:"purchase_value" json:"purchase_value"`
	Category        AssetCategory `bson:"category" json:"category"`
	PurchaseDate    time.Time     `bson:"purchase_date" json:"purchase_date"`
	UsefulLifeYears float64       `bson:"useful_life_years" json:"useful_life_years"`
	AnnualRate      float64       `bson:"annual_rate" json:"annual_rate"`
}

// ProductionConfigID is the fixed key of the production configuration singleton.
const ProductionConfigID = "1"

// ProductionConfig holds the shop-wide production parameters. Exactly one exists.
type ProductionConfig struct {
	ID                     string  `bson:"_id" json:"id"`
	LaborHourlyRate        float64 `bson:"labor_hourly_rate" json:"labor_hourly_rate"`
	MonthlyProductionHours float64 `bson:"monthly_production_hours" json:"monthly_production_hours"`
	MonthlyGasCost         float64 `bson:"monthly_gas_cost" json:"monthly_gas_cost"`
	MonthlyElectricityCost float64 `bson:"monthly_electricity_cost" json:"monthly_electricity_cost"`
}

// DefaultProductionConfig is stored on first access when no configuration exists.
func DefaultProductionConfig() ProductionConfig {
	return ProductionConfig{
		ID:                     ProductionConfigID,
		LaborHourlyRate:        20,
		MonthlyProductionHours: 160,
	}
}
