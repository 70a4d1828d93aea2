package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/domain/leave"
	"github.com/aurora-group/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreatePolicy(w http.ResponseWriter, r *http.Request)
	ListPolicies(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	ListBalances(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.Service
}

func NewLeaveHandler(leaveService leave.Service) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

func (h *leaveHandlerImpl) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req leave.CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.CreatePolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave policy created successfully", result)
}

func (h *leaveHandlerImpl) ListPolicies(w http.ResponseWriter, r *http.Request) {
	collegeID := r.URL.Query().Get("college_id")

	results, err := h.leaveService.ListPolicies(r.Context(), collegeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *leaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year := yearOrCurrent(r.URL.Query().Get("year"))

	result, err := h.leaveService.GetBalance(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) ListBalances(w http.ResponseWriter, r *http.Request) {
	collegeID := r.URL.Query().Get("college_id")
	year := yearOrCurrent(r.URL.Query().Get("year"))

	results, err := h.leaveService.ListBalances(r.Context(), collegeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func yearOrCurrent(raw string) int {
	if raw == "" {
		return time.Now().Year()
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return time.Now().Year()
	}
	return year
}
