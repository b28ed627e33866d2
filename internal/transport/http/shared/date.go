package shared

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"paystub/internal/domain/apperr"
)

const dateLayout = "2006-01-02"

// WeekEndParam reads the {weekEnd} route parameter and checks it is a YYYY-MM-DD date.
func WeekEndParam(r *http.Request) (string, error) {
	value := strings.TrimSpace(chi.URLParam(r, "weekEnd"))
	if value == "" {
		return "", apperr.Validation("weekEnd", "is required")
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return "", apperr.Validation("weekEnd", "must be a valid date in YYYY-MM-DD format")
	}
	return value, nil
}
