// Package costing turns ingredient prices, production parameters, fixed costs
// and orders into unit costs, suggested prices and profit reports.
//
// Every function in the package is pure. Divisions by a quantity that may
// legitimately be zero degrade to 0 or to an explicit "undefined" result, so
// callers never see NaN or infinities.
package costing

import "github.com/mamadbah2/deliciarte/internal/domain/models"

const monthsPerYear = 12

// MonthlyDepreciation spreads the purchase value linearly over the useful life.
// A non-positive useful life means the asset does not depreciate.
func MonthlyDepreciation(purchaseValue, usefulLifeYears float64) float64 {
	if usefulLifeYears <= 0 {
		return 0
	}
	return purchaseValue / (usefulLifeYears * monthsPerYear)
}

// FixedCostSummary is the monthly fixed-cost pool and the hourly rates derived from it.
type FixedCostSummary struct {
	FixedMonthly        float64 `json:"fixed_monthly"`
	DepreciationMonthly float64 `json:"depreciation_monthly"`
	TotalFixedMonthly   float64 `json:"total_fixed_monthly"`
	HourlyFixedRate     float64 `json:"hourly_fixed_rate"`
	HourlyUtilityRate   float64 `json:"hourly_utility_rate"`
}

// AggregateFixedCosts sums fixed costs and asset depreciation and divides the
// pool, and the monthly utility bill, by the monthly production hours.
func AggregateFixedCosts(fixed []models.FixedCost, assets []models.DepreciableAsset, cfg models.ProductionConfig) FixedCostSummary {
	var summary FixedCostSummary

	for _, cost := range fixed {
		summary.FixedMonthly += cost.Value
	}
	for _, asset := range assets {
		summary.DepreciationMonthly += MonthlyDepreciation(asset.PurchaseValue, asset.UsefulLifeYears)
	}
	summary.TotalFixedMonthly = summary.FixedMonthly + summary.DepreciationMonthly

	hours := cfg.MonthlyProductionHours
	summary.HourlyFixedRate = safeDiv(summary.TotalFixedMonthly, hours)
	summary.HourlyUtilityRate = safeDiv(cfg.MonthlyGasCost+cfg.MonthlyElectricityCost, hours)

	return summary
}

// TotalVariableExpensePercent sums the percentage of every variable expense.
func TotalVariableExpensePercent(expenses []models.VariableExpense) float64 {
	var total float64
	for _, expense := range expenses {
		total += expense.Percent
	}
	return total
}

// safeDiv returns 0 when the denominator is not strictly positive.
func safeDiv(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}
