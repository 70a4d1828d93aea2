package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	domainReport "github.com/aurora-group/payroll-backend-go/internal/domain/report"
	"github.com/aurora-group/payroll-backend-go/internal/handler/http/response"
	"github.com/aurora-group/payroll-backend-go/internal/service/report"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func (h *reportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req domainReport.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.reportService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report generated successfully", result)
}

func (h *reportHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.reportService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	collegeID := r.URL.Query().Get("college_id")
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	results, err := h.reportService.List(r.Context(), collegeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *reportHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.reportService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.reportService.OpenFile(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Name+".xlsx"))
	if _, err := io.Copy(w, file); err != nil {
		slog.Error("Failed to stream report", "report_id", id, "error", err)
	}
}
