package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aurora-group/payroll-backend-go/internal/handler/http/response"
	"github.com/aurora-group/payroll-backend-go/internal/service/payslip"
	"github.com/go-chi/chi/v5"
)

type PayslipHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	GetForEntry(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
	DownloadArchive(w http.ResponseWriter, r *http.Request)
}

type payslipHandlerImpl struct {
	payslipService payslip.PayslipService
}

func NewPayslipHandler(payslipService payslip.PayslipService) PayslipHandler {
	return &payslipHandlerImpl{payslipService: payslipService}
}

func (h *payslipHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	cycleID := chi.URLParam(r, "id")

	results, err := h.payslipService.GenerateForCycle(r.Context(), cycleID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslips generated successfully", results)
}

func (h *payslipHandlerImpl) GetForEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")

	result, err := h.payslipService.GetForEntry(r.Context(), entryID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payslipHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")

	file, err := h.payslipService.OpenFile(r.Context(), entryID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "payslip-"+entryID+".pdf"))
	if _, err := io.Copy(w, file); err != nil {
		slog.Error("Failed to stream payslip", "entry_id", entryID, "error", err)
	}
}

func (h *payslipHandlerImpl) DownloadArchive(w http.ResponseWriter, r *http.Request) {
	cycleID := chi.URLParam(r, "id")

	file, err := h.payslipService.ZipForCycle(r.Context(), cycleID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "payslips-"+cycleID+".zip"))
	if _, err := io.Copy(w, file); err != nil {
		slog.Error("Failed to stream payslip archive", "cycle_id", cycleID, "error", err)
	}
}
