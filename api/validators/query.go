package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/Leo-Marbehan/arrivage-data-visualization/pkg/errors"
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

// ParseQueryEnum returns the query value when it is one of the allowed
// values, or the default when absent.
func ParseQueryEnum(r *http.Request, key, defaultVal string, allowed ...string) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	for _, candidate := range allowed {
		if raw == candidate {
			return raw, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "query parameter has an unknown value").WithDetails(map[string]any{"field": key, "allowed": allowed})
}
