package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/domain/salary"
	"github.com/aurora-group/payroll-backend-go/internal/handler/http/response"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	CreateComponent(w http.ResponseWriter, r *http.Request)
	ListComponents(w http.ResponseWriter, r *http.Request)
	AssignStructure(w http.ResponseWriter, r *http.Request)
	ListStructures(w http.ResponseWriter, r *http.Request)
	ResolveForDate(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.Service
}

func NewSalaryHandler(salaryService salary.Service) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

func (h *salaryHandlerImpl) CreateComponent(w http.ResponseWriter, r *http.Request) {
	var req salary.CreateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.salaryService.CreateComponent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary component created successfully", result)
}

func (h *salaryHandlerImpl) ListComponents(w http.ResponseWriter, r *http.Request) {
	results, err := h.salaryService.ListComponents(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *salaryHandlerImpl) AssignStructure(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	var req salary.CreateStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.salaryService.AssignStructure(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary structure assigned successfully", result)
}

func (h *salaryHandlerImpl) ListStructures(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	results, err := h.salaryService.ListStructures(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *salaryHandlerImpl) ResolveForDate(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := validator.ParseDate(raw)
		if err != nil {
			response.BadRequest(w, "date must be YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}

	results, err := h.salaryService.ResolveForDate(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
