package costing

import "github.com/mamadbah2/deliciarte/internal/domain/models"

// ProfitComposition is the per-product profit and loss table plus its totals row.
type ProfitComposition struct {
	Rows              []models.ProductProfit `json:"rows"`
	Total             models.ProductProfit   `json:"total"`
	UnmatchedProducts []string               `json:"unmatched_products"`
	TotalRevenue      float64                `json:"total_revenue"`
	OrderCount        int                    `json:"order_count"`
}

// Table returns the product rows followed by the TOTAL row.
func (p ProfitComposition) Table() []models.ProductProfit {
	table := make([]models.ProductProfit, 0, len(p.Rows)+1)
	table = append(table, p.Rows...)
	return append(table, p.Total)
}

type productAccumulator struct {
	sales    float64
	quantity float64
	delivery float64
}

// ComposeProfit aggregates non-cancelled orders by product name, prices the
// cost of goods sold with the matching recipe and pro-rates the fixed costs
// by each product's share of revenue.
//
// Products are matched to recipes by exact name. A product without a recipe
// reports zero cost of goods and is listed in UnmatchedProducts.
func ComposeProfit(orders []models.Order, recipes []models.Recipe, expenses []models.VariableExpense, totalFixedMonthly float64) ProfitComposition {
	recipesByName := make(map[string]models.Recipe, len(recipes))
	for _, recipe := range recipes {
		if _, seen := recipesByName[recipe.Name]; !seen {
			recipesByName[recipe.Name] = recipe
		}
	}

	taxRate := TotalVariableExpensePercent(expenses) / 100

	var composition ProfitComposition
	var order []string
	byProduct := make(map[string]*productAccumulator)

	for _, o := range orders {
		if o.IsCancelled() {
			continue
		}
		composition.OrderCount++
		composition.TotalRevenue += o.TotalValue

		acc, ok := byProduct[o.Product]
		if !ok {
			acc = &productAccumulator{}
			byProduct[o.Product] = acc
			order = append(order, o.Product)
		}
		acc.sales += o.TotalValue
		acc.quantity += o.Quantity
		acc.delivery += o.DeliveryExpense
	}

	total := models.ProductProfit{Product: models.TotalRowName}
	composition.Rows = make([]models.ProductProfit, 0, len(order))

	for _, name := range order {
		acc := byProduct[name]
		row := models.ProductProfit{
			Product:         name,
			QuantitySold:    acc.quantity,
			Sales:           acc.sales,
			DeliveryExpense: acc.delivery,
			Taxes:           acc.sales * taxRate,
		}

		if recipe, ok := recipesByName[name]; ok {
			row.COGS = recipe.ProductionCost * acc.quantity
		} else {
			row.RecipeMissing = true
			composition.UnmatchedProducts = append(composition.UnmatchedProducts, name)
		}

		row.ContributionValue = row.Sales - row.COGS - row.DeliveryExpense - row.Taxes
		row.ContributionPct = percentOf(row.ContributionValue, row.Sales)
		row.SalesShare = safeDiv(row.Sales, composition.TotalRevenue)
		row.FixedAllocation = totalFixedMonthly * row.SalesShare
		row.Profit = row.ContributionValue - row.FixedAllocation
		row.ProfitPct = percentOf(row.Profit, row.Sales)

		total.QuantitySold += row.QuantitySold
		total.COGS += row.COGS
		total.DeliveryExpense += row.DeliveryExpense
		total.Taxes += row.Taxes
		total.ContributionValue += row.ContributionValue

		composition.Rows = append(composition.Rows, row)
	}

	// Percentages on the totals row come from the summed absolute values.
	total.Sales = composition.TotalRevenue
	total.SalesShare = safeDiv(total.Sales, composition.TotalRevenue)
	total.ContributionPct = percentOf(total.ContributionValue, total.Sales)
	total.FixedAllocation = totalFixedMonthly
	total.Profit = total.ContributionValue - total.FixedAllocation
	total.ProfitPct = percentOf(total.Profit, total.Sales)
	total.RecipeMissing = len(composition.UnmatchedProducts) > 0
	composition.Total = total

	return composition
}

func percentOf(value, base float64) float64 {
	return safeDiv(value, base) * 100
}
