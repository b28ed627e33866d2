package employeehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"paystub/internal/domain/apperr"
	"paystub/internal/domain/employee"
	"paystub/internal/transport/http/api"
	"paystub/internal/transport/http/middleware"
	"paystub/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employee", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Put("/", h.handleSave)
		r.Post("/rules/{set}", h.handleAddRule)
		r.Delete("/rules/{set}/{ruleID}", h.handleRemoveRule)
	})
}

type employeeResponse struct {
	Employee employee.Employee `json:"employee"`
	// Saved is false while the defaults are being shown.
	Saved bool `json:"saved"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, saved, err := h.Service.Get(r.Context())
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	api.Success(w, employeeResponse{Employee: emp, Saved: saved}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var payload employee.Update
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(w, r, err)
		return
	}
	emp, err := h.Service.Save(r.Context(), payload)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	api.Success(w, employeeResponse{Employee: emp, Saved: true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddRule(w http.ResponseWriter, r *http.Request) {
	set, err := ruleSetParam(r)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	var rule employee.Rule
	if err := shared.DecodeJSON(r, &rule); err != nil {
		api.FailError(w, r, err)
		return
	}
	emp, err := h.Service.AddRule(r.Context(), set, rule)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	api.Created(w, employeeResponse{Employee: emp, Saved: true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRemoveRule(w http.ResponseWriter, r *http.Request) {
	set, err := ruleSetParam(r)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	emp, err := h.Service.RemoveRule(r.Context(), set, chi.URLParam(r, "ruleID"))
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	api.Success(w, employeeResponse{Employee: emp, Saved: true}, middleware.GetRequestID(r.Context()))
}

func ruleSetParam(r *http.Request) (employee.RuleSet, error) {
	set, ok := employee.ParseRuleSet(chi.URLParam(r, "set"))
	if !ok {
		return "", apperr.Validation("set", "must be one of union-additions union-deductions special payroll")
	}
	return set, nil
}
