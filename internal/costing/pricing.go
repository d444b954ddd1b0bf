package costing

import (
	"errors"

	"github.com/mamadbah2/deliciarte/internal/domain/models"
)

// ErrPriceUndefined is returned when profit and variable expenses reach 100% of the
// price or the unit cost is negative.
var ErrPriceUndefined = errors.New("price cannot be computed from the given cost and percentages")

// DefaultContributionMarginRatio is assumed when no recipe has been saved yet.
const DefaultContributionMarginRatio = 0.40

// Price is the outcome of markup-divisor pricing.
type Price struct {
	MarkupDivisor float64 `json:"markup_divisor"`
	Value         float64 `json:"value"`
	Defined       bool    `json:"defined"`
}

// SuggestPrice applies the markup divisor: price = cost / (1 - (expenses% + profit%)).
// Both percentages are therefore shares of the final sale price. When they add up
// to 100% or more, or the cost is negative, the price is undefined and
// ErrPriceUndefined is returned.
func SuggestPrice(unitCost, targetProfitPercent, variableExpensePercent float64) (Price, error) {
	divisor := 1 - ((variableExpensePercent + targetProfitPercent) / 100)
	if divisor <= 0 || unitCost < 0 {
		return Price{MarkupDivisor: divisor}, ErrPriceUndefined
	}
	return Price{MarkupDivisor: divisor, Value: unitCost / divisor, Defined: true}, nil
}

// ContributionMarginRatio is (price - unit cost) / price for a saved recipe.
// The second return value is false when the recipe has no positive price.
func ContributionMarginRatio(recipe models.Recipe) (float64, bool) {
	if recipe.SalePrice <= 0 {
		return 0, false
	}
	return (recipe.SalePrice - recipe.UnitCost) / recipe.SalePrice, true
}

// AverageContributionMarginRatio averages the margin ratio of recipes with a
// positive price, falling back to DefaultContributionMarginRatio.
func AverageContributionMarginRatio(recipes []models.Recipe) float64 {
	var sum float64
	var counted int
	for _, recipe := range recipes {
		ratio, ok := ContributionMarginRatio(recipe)
		if !ok {
			continue
		}
		sum += ratio
		counted++
	}
	if counted == 0 {
		return DefaultContributionMarginRatio
	}
	return sum / float64(counted)
}

// BreakEvenPoint is the revenue at which contribution margin covers fixed costs.
type BreakEvenPoint struct {
	Revenue float64 `json:"revenue"`
	Defined bool    `json:"defined"`
}

// BreakEven divides the monthly fixed costs by the contribution margin ratio.
// A non-positive ratio never reaches break-even; the result is then undefined.
func BreakEven(totalFixedMonthly, marginRatio float64) BreakEvenPoint {
	if marginRatio <= 0 {
		return BreakEvenPoint{}
	}
	return BreakEvenPoint{Revenue: totalFixedMonthly / marginRatio, Defined: true}
}

// AchievementRatio is actual revenue over break-even revenue, 0 when the latter is 0.
func AchievementRatio(actualRevenue, breakEvenRevenue float64) float64 {
	return safeDiv(actualRevenue, breakEvenRevenue)
}
