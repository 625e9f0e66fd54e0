package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aburakt/staffy/internal/domain/leave"
	"github.com/aburakt/staffy/internal/domain/report"
	"github.com/aburakt/staffy/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ListRequests(w http.ResponseWriter, r *http.Request)
	ListByStatus(w http.ResponseWriter, r *http.Request)
	ListByStaff(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	DeleteRequest(w http.ResponseWriter, r *http.Request)
	ExportByStaff(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService  leave.LeaveService
	reportService report.ReportService
}

func NewLeaveHandler(leaveService leave.LeaveService, reportService report.ReportService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService:  leaveService,
		reportService: reportService,
	}
}

// ListRequests implements LeaveHandler. An optional ?status= narrows the list.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("status"); status != "" {
		l.listByStatus(w, r, status)
		return
	}

	requests, err := l.leaveService.ListLeaveRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, leave.NewLeaveRequestResponses(requests), &response.Meta{TotalItems: int64(len(requests))})
}

// ListByStatus implements LeaveHandler.
func (l *LeaveHandlerImpl) ListByStatus(w http.ResponseWriter, r *http.Request) {
	l.listByStatus(w, r, chi.URLParam(r, "status"))
}

func (l *LeaveHandlerImpl) listByStatus(w http.ResponseWriter, r *http.Request, status string) {
	requests, err := l.leaveService.ListByStatus(r.Context(), leave.Status(strings.ToUpper(status)))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, leave.NewLeaveRequestResponses(requests), &response.Meta{TotalItems: int64(len(requests))})
}

// ListByStaff implements LeaveHandler.
func (l *LeaveHandlerImpl) ListByStaff(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.ListByStaff(r.Context(), chi.URLParam(r, "staffId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leave.NewLeaveRequestResponses(requests))
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	request, err := l.leaveService.GetLeaveRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leave.NewLeaveRequestResponse(request))
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLeaveRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.StaffID = chi.URLParam(r, "staffId")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := l.leaveService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request created successfully", leave.NewLeaveRequestResponse(created))
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	approved, err := l.leaveService.ApproveLeaveRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request approved successfully", leave.NewLeaveRequestResponse(approved))
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.RejectLeaveRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectLeaveRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	rejected, err := l.leaveService.RejectLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request rejected successfully", leave.NewLeaveRequestResponse(rejected))
}

// DeleteRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	if err := l.leaveService.DeleteLeaveRequest(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request deleted successfully", nil)
}

// ExportByStaff implements LeaveHandler.
func (l *LeaveHandlerImpl) ExportByStaff(w http.ResponseWriter, r *http.Request) {
	wb, err := l.reportService.LeaveRequestsWorkbook(r.Context(), chi.URLParam(r, "staffId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, report.ContentTypeXLSX, wb.FileName, wb.Content)
}
