package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/liquiverde/liquiverde-backend/pkg/enums"
	pkgerrors "github.com/liquiverde/liquiverde-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseQueryFocus reads an optimization focus from the query string, falling
// back to balanced when absent.
func ParseQueryFocus(r *http.Request, key string) (enums.OptimizationFocus, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return enums.OptimizationFocusBalanced, nil
	}
	focus, err := enums.ParseOptimizationFocus(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid optimization focus").WithDetails(map[string]any{"field": key})
	}
	return focus, nil
}
