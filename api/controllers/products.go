package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/liquiverde/liquiverde-backend/api/responses"
	"github.com/liquiverde/liquiverde-backend/api/validators"
	"github.com/liquiverde/liquiverde-backend/internal/catalog"
	"github.com/liquiverde/liquiverde-backend/internal/engine/score"
	"github.com/liquiverde/liquiverde-backend/internal/engine/substitute"
	pkgerrors "github.com/liquiverde/liquiverde-backend/pkg/errors"
	"github.com/liquiverde/liquiverde-backend/pkg/logger"
	"github.com/liquiverde/liquiverde-backend/pkg/pagination"
)

// ProductList serves a paginated product listing with optional category and
// name filters.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		cursor, err := pagination.ParseCursor(r.URL.Query().Get("cursor"))
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor"))
			return
		}

		products, nextCursor, err := svc.ListProducts(ctx, catalog.ListParams{
			Category:    strings.TrimSpace(r.URL.Query().Get("category")),
			Search:      strings.TrimSpace(r.URL.Query().Get("search")),
			InStockOnly: r.URL.Query().Get("in_stock") == "true",
			Limit:       limit,
			Cursor:      cursor,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteList(w, products, nextCursor)
	}
}

// ProductDetail serves a single product by id.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		product, err := svc.GetProduct(ctx, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductByBarcode serves a single product looked up by barcode.
func ProductByBarcode(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		product, err := svc.GetProductByBarcode(ctx, chi.URLParam(r, "barcode"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductScore serves the sustainability evaluation for one product.
func ProductScore(svc catalog.Service, scorer *score.Scorer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		product, err := svc.GetProduct(ctx, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"product": product,
			"score":   scorer.Score(*product),
		})
	}
}

// CompareRequest names the two products to evaluate side by side.
type CompareRequest struct {
	FirstID  string `json:"first_id" validate:"required"`
	SecondID string `json:"second_id" validate:"required"`
}

// ProductCompare scores two products and reports the per-dimension deltas.
func ProductCompare(svc catalog.Service, scorer *score.Scorer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req CompareRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		first, err := svc.GetProduct(ctx, req.FirstID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		second, err := svc.GetProduct(ctx, req.SecondID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, scorer.Compare(*first, *second))
	}
}

// ProductSubstitutes serves ranked replacement suggestions for one product.
func ProductSubstitutes(svc catalog.Service, engine *substitute.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		product, err := svc.GetProduct(ctx, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		focus, err := validators.ParseQueryFocus(r, "focus")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", substitute.DefaultMaxSuggestions, 1, substitute.DefaultMaxSuggestions)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		snapshot, err := svc.Snapshot(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		candidates := make([]catalog.Product, 0, snapshot.Size())
		for _, group := range snapshot {
			candidates = append(candidates, group...)
		}

		suggestions, err := engine.FindSubstitutes(substitute.Request{
			Original:       *product,
			Candidates:     candidates,
			Focus:          focus,
			Preferences:    splitPreferences(r.URL.Query().Get("preferences")),
			MaxSuggestions: limit,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"product":     product,
			"suggestions": suggestions,
		})
	}
}

func splitPreferences(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	prefs := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			prefs = append(prefs, trimmed)
		}
	}
	return prefs
}
