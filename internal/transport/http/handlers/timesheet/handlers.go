package timesheethandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"paystub/internal/domain/timesheet"
	"paystub/internal/transport/http/api"
	"paystub/internal/transport/http/middleware"
	"paystub/internal/transport/http/shared"
)

type Handler struct {
	Service *timesheet.Service
}

func NewHandler(service *timesheet.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/timesheets", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Put("/", h.handleSave)
		r.Post("/preview", h.handlePreview)
		r.Get("/{weekEnd}", h.handleGet)
		r.Delete("/{weekEnd}", h.handleDelete)
	})
}

type savedTimesheet struct {
	Timesheet timesheet.Timesheet `json:"timesheet"`
	Hours     timesheet.Breakdown `json:"hours"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	sheets, err := h.Service.List(r.Context())
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	page := shared.ParsePagination(r, 52, 520)
	api.Success(w, shared.Page(w, sheets, page), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var payload timesheet.Timesheet
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(w, r, err)
		return
	}
	payload.WeekEnd = strings.TrimSpace(payload.WeekEnd)
	if err := h.Service.Save(r.Context(), payload); err != nil {
		api.FailError(w, r, err)
		return
	}
	hours, err := h.Service.Preview(payload)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	api.Success(w, savedTimesheet{Timesheet: payload, Hours: hours}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	var payload timesheet.Timesheet
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(w, r, err)
		return
	}
	if err := h.Service.Validate(payload); err != nil {
		api.FailError(w, r, err)
		return
	}
	hours, err := h.Service.Preview(payload)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	api.Success(w, hours, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	weekEnd, err := shared.WeekEndParam(r)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	ts, err := h.Service.Get(r.Context(), weekEnd)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	api.Success(w, ts, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	weekEnd, err := shared.WeekEndParam(r)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), weekEnd); err != nil {
		api.FailError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"deleted": weekEnd}, middleware.GetRequestID(r.Context()))
}
