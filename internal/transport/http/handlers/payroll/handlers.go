package payrollhandler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"paystub/internal/domain/payroll"
	"paystub/internal/domain/timesheet"
	"paystub/internal/transport/http/api"
	"paystub/internal/transport/http/middleware"
	"paystub/internal/transport/http/shared"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Service    *payroll.Service
	PaystubDir string
	Sealer     payroll.Sealer
}

func NewHandler(service *payroll.Service, paystubDir string, sealer payroll.Sealer) *Handler {
	return &Handler{Service: service, PaystubDir: paystubDir, Sealer: sealer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/paystubs", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleGenerate)
		r.Get("/export/register.csv", h.handleExportRegisterCSV)
		r.Get("/export/register.xlsx", h.handleExportRegisterXLSX)
		r.Route("/{weekEnd}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Post("/", h.handleGenerateForWeek)
			r.Delete("/", h.handleDelete)
			r.Get("/pdf", h.handleDownloadPDF)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	stubs, err := h.Service.List(r.Context())
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	page := shared.ParsePagination(r, 52, 520)
	api.Success(w, shared.Page(w, stubs, page), middleware.GetRequestID(r.Context()))
}

// handleGenerate builds a paystub from a timesheet in the body without
// storing the timesheet itself.
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var payload timesheet.Timesheet
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(w, r, err)
		return
	}
	stub, err := h.Service.Generate(r.Context(), payload)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	api.Created(w, stub, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGenerateForWeek(w http.ResponseWriter, r *http.Request) {
	weekEnd, err := shared.WeekEndParam(r)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	stub, err := h.Service.GenerateForWeek(r.Context(), weekEnd)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	api.Created(w, stub, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	weekEnd, err := shared.WeekEndParam(r)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	stub, err := h.Service.Get(r.Context(), weekEnd)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	api.Success(w, stub, middleware.GetRequestID(r.Context()))
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

func (h *Handler) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	weekEnd, err := shared.WeekEndParam(r)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	data, _, err := h.Service.ExportPDF(r.Context(), weekEnd, h.PaystubDir, h.Sealer)
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	writeFile(w, "application/pdf", fmt.Sprintf("paystub_%s.pdf", weekEnd), data)
}

func (h *Handler) handleExportRegisterCSV(w http.ResponseWriter, r *http.Request) {
	stubs, err := h.Service.List(r.Context())
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := payroll.WriteRegisterCSV(&buf, stubs); err != nil {
		api.FailError(w, r, err)
		return
	}
	writeFile(w, "text/csv", "paystub-register.csv", buf.Bytes())
}

func (h *Handler) handleExportRegisterXLSX(w http.ResponseWriter, r *http.Request) {
	stubs, err := h.Service.List(r.Context())
	if err != nil {
		api.FailError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := payroll.WriteRegisterXLSX(&buf, stubs); err != nil {
		api.FailError(w, r, err)
		return
	}
	writeFile(w, xlsxContentType, "paystub-register.xlsx", buf.Bytes())
}

func writeFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
