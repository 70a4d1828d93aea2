package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aurora-group/payroll-backend-go/internal/domain/attendance"
	"github.com/aurora-group/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	GetUpload(w http.ResponseWriter, r *http.Request)
	ListUploads(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
	maxUploadMB       int64
}

func NewAttendanceHandler(attendanceService attendance.Service, maxUploadMB int64) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		maxUploadMB:       maxUploadMB,
	}
}

func (h *attendanceHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadMB << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	year, _ := strconv.Atoi(r.FormValue("year"))
	month, _ := strconv.Atoi(r.FormValue("month"))
	req := attendance.UploadRequest{
		CollegeID: r.FormValue("college_id"),
		Year:      year,
		Month:     month,
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Attendance sheet file is required", nil)
		return
	}
	defer file.Close()
	req.FileName = fileHeader.Filename

	result, err := h.attendanceService.Upload(r.Context(), req, file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance sheet uploaded successfully", result)
}

func (h *attendanceHandlerImpl) GetUpload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.attendanceService.GetUpload(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) ListUploads(w http.ResponseWriter, r *http.Request) {
	collegeID := r.URL.Query().Get("college_id")

	results, err := h.attendanceService.ListUploads(r.Context(), collegeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	collegeID := r.URL.Query().Get("college_id")
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	results, err := h.attendanceService.Summary(r.Context(), collegeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
