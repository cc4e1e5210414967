package controllers

import (
	"net/http"
	"time"

	"github.com/liquiverde/liquiverde-backend/api/responses"
	"github.com/liquiverde/liquiverde-backend/api/validators"
	"github.com/liquiverde/liquiverde-backend/internal/catalog"
	"github.com/liquiverde/liquiverde-backend/internal/engine/optimize"
	"github.com/liquiverde/liquiverde-backend/pkg/enums"
	pkgerrors "github.com/liquiverde/liquiverde-backend/pkg/errors"
	"github.com/liquiverde/liquiverde-backend/pkg/logger"
	"github.com/liquiverde/liquiverde-backend/pkg/metrics"
)

// OptimizeItemRequest is one line of the shopping list payload.
type OptimizeItemRequest struct {
	ProductName string   `json:"product_name" validate:"required"`
	Category    string   `json:"category"`
	Quantity    int      `json:"quantity" validate:"omitempty,min=1"`
	Priority    int      `json:"priority" validate:"omitempty,min=1,max=5"`
	Preferences []string `json:"preferences"`
	MaxPrice    *int64   `json:"max_price" validate:"omitempty,gt=0"`
}

// OptimizeRequest is the shopping list optimization payload.
type OptimizeRequest struct {
	// A non-positive budget is accepted: the optimizer answers with every
	// item excluded and a warning apiece rather than an error.
	Items  []OptimizeItemRequest `json:"items" validate:"required,min=1,dive"`
	Budget *int64                `json:"budget"`
	Focus  string                `json:"focus" validate:"omitempty,oneof=price sustainability health balanced"`
}

// OptimizeShoppingList resolves a shopping list against the current catalog
// snapshot and returns the optimized selection.
func OptimizeShoppingList(svc catalog.Service, opt *optimize.Optimizer, m *metrics.OptimizerMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req OptimizeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		focus := enums.OptimizationFocusBalanced
		if req.Focus != "" {
			parsed, err := enums.ParseOptimizationFocus(req.Focus)
			if err != nil {
				responses.WriteError(ctx, logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "invalid optimization focus"))
				return
			}
			focus = parsed
		}
		if logg != nil {
			ctx = logg.WithFocus(ctx, focus.String())
		}

		items := make([]optimize.Item, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, optimize.Item{
				ProductName: item.ProductName,
				Category:    item.Category,
				Quantity:    item.Quantity,
				Priority:    item.Priority,
				Preferences: item.Preferences,
				MaxPrice:    item.MaxPrice,
			})
		}
		list := optimize.ShoppingList{Items: items, Budget: req.Budget, Focus: focus}

		snapshot, err := svc.Snapshot(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		start := time.Now()
		result, err := opt.Optimize(list, snapshot)
		if err != nil {
			m.IncFailure(focus.String(), "")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		m.ObserveDuration(focus.String(), result.Algorithm, time.Since(start))
		m.IncSuccess(focus.String(), result.Algorithm)
		m.AddExcluded(focus.String(), len(result.ItemsNotFound))

		if logg != nil {
			ctx = logg.WithFields(ctx, map[string]any{
				"total_cost":      result.TotalCost,
				"selections":      len(result.Selections),
				"items_not_found": len(result.ItemsNotFound),
			})
			logg.Info(ctx, "optimization.complete")
		}
		responses.WriteSuccess(w, result)
	}
}
