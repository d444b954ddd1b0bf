package models

import "time"

// MonthlySnapshot is the archived profit picture of a month, stored in MongoDB.
type MonthlySnapshot struct {
	ID                string          `bson:"_id" json:"id"`
	Month             string          `bson:"month" json:"month"`
	Revenue           float64         `bson:"revenue" json:"revenue"`
	OrderCount        int             `bson:"order_count" json:"order_count"`
	TotalFixedMonthly float64         `bson:"total_fixed_monthly" json:"total_fixed_monthly"`
	ContributionValue float64         `bson:"contribution_value" json:"contribution_value"`
	Profit            float64         `bson:"profit" json:"profit"`
	BreakEvenRevenue  float64         `bson:"break_even_revenue" json:"break_even_revenue"`
	Products          []ProductProfit `bson:"products" json:"products"`
	CreatedAt         time.Time       `bson:"created_at" json:"created_at"`
}

// ProductProfit is one column of the profit composition table.
type ProductProfit struct {
	Product           string  `bson:"product" json:"product"`
	QuantitySold      float64 `bson:"quantity_sold" json:"quantity_sold"`
	Sales             float64 `bson:"sales" json:"sales"`
	SalesShare        float64 `bson:"sales_share" json:"sales_share"`
	COGS              float64 `bson:"cogs" json:"cogs"`
	DeliveryExpense   float64 `bson:"delivery_expense" json:"delivery_expense"`
	Taxes             float64 `bson:"taxes" json:"taxes"`
	ContributionValue float64 `bson:"contribution_value" json:"contribution_value"`
	ContributionPct   float64 `bson:"contribution_pct" json:"contribution_pct"`
	FixedAllocation   float64 `bson:"fixed_allocation" json:"fixed_allocation"`
	Profit            float64 `bson:"profit" json:"profit"`
	ProfitPct         float64 `bson:"profit_pct" json:"profit_pct"`
	RecipeMissing     bool    `bson:"recipe_missing" json:"recipe_missing"`
}

// TotalRowName labels the synthetic totals row of a profit composition.
const TotalRowName = "TOTAL"
