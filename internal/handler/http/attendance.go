package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/aburakt/staffy/internal/domain/attendance"
	"github.com/aburakt/staffy/internal/domain/report"
	"github.com/aburakt/staffy/internal/handler/http/middleware"
	"github.com/aburakt/staffy/internal/handler/http/response"
	"github.com/aburakt/staffy/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)

	Get(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	ListByStaff(w http.ResponseWriter, r *http.Request)
	ListByDate(w http.ResponseWriter, r *http.Request)
	ListByRange(w http.ResponseWriter, r *http.Request)
	PendingApprovals(w http.ResponseWriter, r *http.Request)

	Update(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	MonthlyReport(w http.ResponseWriter, r *http.Request)
	ExportMonthlyReport(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	reportService     report.ReportService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, reportService report.ReportService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		reportService:     reportService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeClockEvent(w, r)
	if !ok {
		return
	}

	record, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in successfully", attendance.NewAttendanceResponse(record))
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeClockEvent(w, r)
	if !ok {
		return
	}

	record, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out successfully", attendance.NewAttendanceResponse(record))
}

// StartBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.StartBreak(r.Context(), chi.URLParam(r, "staffId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Break started", attendance.NewAttendanceResponse(record))
}

// EndBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.EndBreak(r.Context(), chi.URLParam(r, "staffId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Break ended", attendance.NewAttendanceResponse(record))
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, attendance.NewAttendanceResponse(record))
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.GetToday(r.Context(), chi.URLParam(r, "staffId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, attendance.NewAttendanceResponse(record))
}

// ListByStaff implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByStaff(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.ListByStaff(r.Context(), chi.URLParam(r, "staffId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, attendance.NewAttendanceResponses(records))
}

// ListByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	date, err := validator.ParseDateIn(chi.URLParam(r, "date"), time.Local)
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	records, err := h.attendanceService.ListByDate(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, attendance.NewAttendanceResponses(records))
}

// ListByRange implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByRange(w http.ResponseWriter, r *http.Request) {
	start, err := validator.ParseDateIn(r.URL.Query().Get("start_date"), time.Local)
	if err != nil {
		response.BadRequest(w, "start_date must be in YYYY-MM-DD format", nil)
		return
	}
	end, err := validator.ParseDateIn(r.URL.Query().Get("end_date"), time.Local)
	if err != nil {
		response.BadRequest(w, "end_date must be in YYYY-MM-DD format", nil)
		return
	}

	records, err := h.attendanceService.ListByRange(r.Context(), chi.URLParam(r, "staffId"), start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, attendance.NewAttendanceResponses(records))
}

// PendingApprovals implements AttendanceHandler.
func (h *attendanceHandlerImpl) PendingApprovals(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.PendingApprovals(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, attendance.NewAttendanceResponses(records), &response.Meta{TotalItems: int64(len(records))})
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.UpdateFields(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance updated successfully", attendance.NewAttendanceResponse(record))
}

// Approve implements AttendanceHandler.
func (h *attendanceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	approver := middleware.ClaimString(r, "email")

	record, err := h.attendanceService.Approve(r.Context(), chi.URLParam(r, "id"), approver)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance approved successfully", attendance.NewAttendanceResponse(record))
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance deleted successfully", nil)
}

// MonthlyReport implements AttendanceHandler.
func (h *attendanceHandlerImpl) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseYearMonth(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.MonthlyReport(r.Context(), chi.URLParam(r, "staffId"), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, attendance.NewMonthlyReportResponse(result))
}

// ExportMonthlyReport implements AttendanceHandler.
func (h *attendanceHandlerImpl) ExportMonthlyReport(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parseYearMonth(w, r)
	if !ok {
		return
	}

	wb, err := h.reportService.MonthlyAttendanceWorkbook(r.Context(), chi.URLParam(r, "staffId"), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, report.ContentTypeXLSX, wb.FileName, wb.Content)
}

// decodeClockEvent reads an optional JSON body and fills the staff id and
// origin address from the request.
func decodeClockEvent(w http.ResponseWriter, r *http.Request) (attendance.ClockEventRequest, bool) {
	var req attendance.ClockEventRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("ClockEvent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}
	req.StaffID = chi.URLParam(r, "staffId")
	req.Origin = clientAddress(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return req, false
	}
	return req, true
}

// clientAddress is the caller's IP after chi's RealIP has rewritten RemoteAddr.
func clientAddress(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func parseYearMonth(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return 0, 0, false
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return 0, 0, false
	}
	return year, month, true
}
