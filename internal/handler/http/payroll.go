package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/banrai-ops/farm-backend-go/internal/domain/payroll"
	"github.com/banrai-ops/farm-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// Preview implements PayrollHandler.
func (h *PayrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userID, err := strconv.ParseInt(q.Get("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user_id", nil)
		return
	}

	summary, err := h.payrollService.Preview(r.Context(), payroll.PreviewRequest{
		UserID: userID,
		Month:  q.Get("month"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToSummaryResponse(summary))
}

// Create implements PayrollHandler.
func (h *PayrollHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	createdBy, err := currentUserID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.CreateSlipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create slip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	slip, created, err := h.payrollService.Create(r.Context(), req, createdBy)
	if err != nil {
		slog.Error("Create slip service error", "user_id", req.UserID, "month", req.Month, "error", err)
		response.HandleError(w, err)
		return
	}

	// Duplicate create: point the caller at the slip that already exists.
	if !created {
		details := map[string]string{
			"slip_id": strconv.FormatInt(slip.ID, 10),
		}
		if slip.SlipNo != nil {
			details["slip_no"] = *slip.SlipNo
		}
		response.ConflictWithDetails(w, "Payroll slip already exists for this employee and month", details)
		return
	}

	response.Created(w, "Payroll slip created successfully", payroll.ToSlipResponse(slip))
}

// Get implements PayrollHandler.
func (h *PayrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	slipID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid slip id", nil)
		return
	}

	slip, err := h.payrollService.Get(r.Context(), slipID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToSlipResponse(slip))
}

// List implements PayrollHandler.
func (h *PayrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter payroll.SlipFilter

	if v := q.Get("user_id"); v != "" {
		userID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid user_id", nil)
			return
		}
		filter.UserID = &userID
	}
	if v := q.Get("month"); v != "" {
		filter.Month = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}

	slips, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToSlipResponses(slips))
}

// UpdateStatus implements PayrollHandler.
func (h *PayrollHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	slipID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid slip id", nil)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Error("Update slip status decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if body.Status != string(payroll.SlipStatusPaid) && body.Status != string(payroll.SlipStatusUnpaid) {
		response.BadRequest(w, "Status must be 'Paid' or 'Unpaid'", nil)
		return
	}

	slip, err := h.payrollService.SetPaidStatus(r.Context(), slipID, body.Status == string(payroll.SlipStatusPaid))
	if err != nil {
		slog.Error("Update slip status service error", "slip_id", slipID, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Slip status updated", "slip_id", slipID, "status", slip.Status)
	response.Success(w, payroll.ToSlipResponse(slip))
}

// Delete implements PayrollHandler.
func (h *PayrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	slipID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid slip id", nil)
		return
	}

	if err := h.payrollService.Delete(r.Context(), slipID); err != nil {
		slog.Error("Delete slip service error", "slip_id", slipID, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Slip deleted", "slip_id", slipID)
	response.SuccessWithMessage(w, "Payroll slip deleted successfully", nil)
}
