package optimize

import (
	"github.com/liquiverde/liquiverde-backend/internal/catalog"
	"github.com/liquiverde/liquiverde-backend/internal/engine/score"
	"github.com/liquiverde/liquiverde-backend/pkg/enums"
)

// Item is one entry on a shopping list, before any product is chosen for it.
type Item struct {
	ProductName string   `json:"product_name"`
	Category    string   `json:"category,omitempty"`
	Quantity    int      `json:"quantity"`
	Priority    int      `json:"priority"`
	Preferences []string `json:"preferences,omitempty"`
	MaxPrice    *int64   `json:"max_price,omitempty"`
}

// ShoppingList is the optimizer input: the desired items, an optional budget
// in minor currency units, and the objective to optimize for.
type ShoppingList struct {
	Items  []Item                  `json:"items"`
	Budget *int64                  `json:"budget,omitempty"`
	Focus  enums.OptimizationFocus `json:"focus"`
}

// Selection binds a shopping list item to the concrete product chosen for it.
type Selection struct {
	Item          Item              `json:"item"`
	Product       catalog.Product   `json:"product"`
	Score         score.Score       `json:"score"`
	Alternatives  []catalog.Product `json:"alternatives,omitempty"`
	Reason        string            `json:"reason"`
	Savings       int64             `json:"savings"`
	Impact        enums.ImpactLevel `json:"impact"`
	CrossCategory bool              `json:"cross_category,omitempty"`

	// pool keeps every candidate considered for the item so budget fitting
	// can reach variants beyond the reported alternatives.
	pool []catalog.Product
}

// Cost returns the line total for the selection.
func (s Selection) Cost() int64 {
	return s.Product.Price * int64(s.Item.Quantity)
}

// Result is the full optimizer output for one shopping list.
type Result struct {
	Selections            []Selection `json:"selections"`
	TotalCost             int64       `json:"total_cost"`
	EstimatedSavings      int64       `json:"estimated_savings"`
	BudgetUsedPercentage  float64     `json:"budget_used_percentage"`
	OverallSustainability score.Score `json:"overall_sustainability"`
	TotalCarbonFootprint  float64     `json:"total_carbon_footprint"`
	TotalWaterUsage       float64     `json:"total_water_usage"`
	RecyclablePercentage  float64     `json:"recyclable_percentage"`
	RecommendedStores     []string    `json:"recommended_stores,omitempty"`
	Warnings              []string    `json:"warnings,omitempty"`
	ItemsNotFound         []string    `json:"items_not_found,omitempty"`
	ConstraintsMet        bool        `json:"constraints_met"`
	Algorithm             string      `json:"algorithm"`
	EstimatedShoppingTime int         `json:"estimated_shopping_time"`
}

// normalized returns a copy of the item with quantity and priority forced
// into their valid ranges. Quantity defaults to 1, priority to 3 (neutral).
func (i Item) normalized() Item {
	if i.Quantity < 1 {
		i.Quantity = 1
	}
	switch {
	case i.Priority < 1:
		i.Priority = 3
	case i.Priority > 5:
		i.Priority = 5
	}
	return i
}
