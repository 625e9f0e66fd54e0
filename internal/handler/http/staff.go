package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aburakt/staffy/internal/domain/report"
	"github.com/aburakt/staffy/internal/domain/staff"
	"github.com/aburakt/staffy/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type StaffHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetByEmail(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	GetLeaveBalance(w http.ResponseWriter, r *http.Request)
	ProcessCarryover(w http.ResponseWriter, r *http.Request)
	ExportLeaveBalances(w http.ResponseWriter, r *http.Request)
}

type StaffHandlerImpl struct {
	staffService  staff.StaffService
	reportService report.ReportService
}

func NewStaffHandler(staffService staff.StaffService, reportService report.ReportService) StaffHandler {
	return &StaffHandlerImpl{
		staffService:  staffService,
		reportService: reportService,
	}
}

// Create implements StaffHandler.
func (h *StaffHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req staff.CreateStaffRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateStaff decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.staffService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Staff created successfully", staff.NewStaffResponse(created))
}

// List implements StaffHandler.
//
// Query: active=true limits to active staff, department filters exactly.
func (h *StaffHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter staff.StaffFilter

	if v := r.URL.Query().Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(w, "invalid active parameter", nil)
			return
		}
		filter.ActiveOnly = active
	}
	if dept := r.URL.Query().Get("department"); dept != "" {
		filter.Department = &dept
	}

	members, err := h.staffService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]staff.StaffResponse, 0, len(members))
	for _, m := range members {
		out = append(out, staff.NewStaffResponse(m))
	}
	response.SuccessWithMeta(w, out, &response.Meta{TotalItems: int64(len(out))})
}

// Get implements StaffHandler.
func (h *StaffHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	member, err := h.staffService.Get(r.Context(), chi.URLParam(r, "staffId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, staff.NewStaffResponse(member))
}

// GetByEmail implements StaffHandler.
func (h *StaffHandlerImpl) GetByEmail(w http.ResponseWriter, r *http.Request) {
	member, err := h.staffService.GetByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, staff.NewStaffResponse(member))
}

// Update implements StaffHandler.
func (h *StaffHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req staff.UpdateStaffRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateStaff decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "staffId")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.staffService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Staff updated successfully", staff.NewStaffResponse(updated))
}

// Deactivate implements StaffHandler.
func (h *StaffHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	member, err := h.staffService.Deactivate(r.Context(), chi.URLParam(r, "staffId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Staff deactivated successfully", staff.NewStaffResponse(member))
}

// Delete implements StaffHandler.
func (h *StaffHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.staffService.Delete(r.Context(), chi.URLParam(r, "staffId")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Staff deleted successfully", nil)
}

// GetLeaveBalance implements StaffHandler.
func (h *StaffHandlerImpl) GetLeaveBalance(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffId")
	balance, err := h.staffService.GetLeaveBalance(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, staff.NewLeaveBalanceResponse(staffID, balance))
}

// ProcessCarryover implements StaffHandler.
func (h *StaffHandlerImpl) ProcessCarryover(w http.ResponseWriter, r *http.Request) {
	result, err := h.staffService.ProcessYearEndCarryoverForAllStaff(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Year-end carryover processed", result)
}

// ExportLeaveBalances implements StaffHandler.
func (h *StaffHandlerImpl) ExportLeaveBalances(w http.ResponseWriter, r *http.Request) {
	wb, err := h.reportService.LeaveBalancesWorkbook(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, report.ContentTypeXLSX, wb.FileName, wb.Content)
}
