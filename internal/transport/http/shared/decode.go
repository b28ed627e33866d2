package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"paystub/internal/domain/apperr"
)

// DecodeJSON reads one JSON value from the request body into dst. Unknown
// fields are rejected so that typos in rule or entry keys surface.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperr.Validation("body", fmt.Sprintf("must not exceed %d bytes", maxErr.Limit))
		case errors.Is(err, io.EOF):
			return apperr.Validation("body", "is required")
		}
		return apperr.Parse("body", "request payload", err)
	}
	if dec.More() {
		return apperr.Validation("body", "must contain a single JSON value")
	}
	return nil
}
