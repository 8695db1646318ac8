package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/banrai-ops/farm-backend-go/internal/domain/user"
	"github.com/banrai-ops/farm-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetPayConfig(w http.ResponseWriter, r *http.Request)
	UpdatePayConfig(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService user.EmployeeService
}

func NewEmployeeHandler(employeeService user.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var role *string
	if v := r.URL.Query().Get("role"); v != "" {
		role = &v
	}

	users, err := h.employeeService.List(r.Context(), role)
	if err != nil {
		slog.Error("List users service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.ToUserResponses(users))
}

// GetPayConfig implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetPayConfig(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	cfg, err := h.employeeService.GetPayConfig(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.ToPayConfigResponse(cfg))
}

// UpdatePayConfig implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpdatePayConfig(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	var req user.UpdatePayConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePayConfig decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	cfg, err := h.employeeService.UpdatePayConfig(r.Context(), req)
	if err != nil {
		slog.Error("UpdatePayConfig service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Pay config updated", "user_id", userID)
	response.Success(w, user.ToPayConfigResponse(cfg))
}
