package api

import (
	"errors"
	"fmt"
	"net/http"

	"paystub/internal/domain/apperr"
	"paystub/internal/requestctx"
)

// FieldIssue names the input field a failure is about.
type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// FailError writes the envelope matching a domain error. Anything that is not
// an apperr type is logged and reported as an internal error without detail.
func FailError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := requestctx.GetRequestID(r.Context())

	var vErr *apperr.ValidationError
	var nfErr *apperr.NotFoundError
	var pErr *apperr.ParseError
	switch {
	case errors.As(err, &vErr):
		FailWithDetails(w, http.StatusBadRequest, "validation_error", vErr.Error(),
			FieldIssue{Field: vErr.Field, Reason: vErr.Reason}, requestID)
	case errors.As(err, &pErr):
		FailWithDetails(w, http.StatusBadRequest, "parse_error", pErr.Error(),
			FieldIssue{Field: pErr.Field, Reason: fmt.Sprintf("cannot parse %q", pErr.Value)}, requestID)
	case errors.As(err, &nfErr):
		Fail(w, http.StatusNotFound, "not_found", nfErr.Error(), requestID)
	default:
		requestctx.Logger(r.Context()).Error("request failed", "err", err)
		Fail(w, http.StatusInternalServerError, "internal_error", "internal error", requestID)
	}
}
