package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/banrai-ops/farm-backend-go/internal/domain/expense"
	"github.com/banrai-ops/farm-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ExpenseHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type ExpenseHandlerImpl struct {
	expenseService expense.ExpenseService
}

func NewExpenseHandler(expenseService expense.ExpenseService) ExpenseHandler {
	return &ExpenseHandlerImpl{expenseService: expenseService}
}

// Create implements ExpenseHandler.
func (h *ExpenseHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	createdBy, err := currentUserID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req expense.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create expense decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.expenseService.Create(r.Context(), req, createdBy)
	if err != nil {
		slog.Error("Create expense service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Expense created", "expense_id", created.ID, "type", created.Type)
	response.Created(w, "Expense created successfully", expense.ToExpenseResponse(created))
}

// Get implements ExpenseHandler.
func (h *ExpenseHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	expenseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid expense id", nil)
		return
	}

	e, err := h.expenseService.Get(r.Context(), expenseID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, expense.ToExpenseResponse(e))
}

// List implements ExpenseHandler.
func (h *ExpenseHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter expense.ExpenseFilter

	if v := q.Get("work_date"); v != "" {
		filter.WorkDate = &v
	}
	if v := q.Get("type"); v != "" {
		filter.Type = &v
	}

	expenses, err := h.expenseService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, expense.ToExpenseResponses(expenses))
}

// Update implements ExpenseHandler.
func (h *ExpenseHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	expenseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid expense id", nil)
		return
	}

	var req expense.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update expense decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = expenseID

	updated, err := h.expenseService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update expense service error", "expense_id", expenseID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, expense.ToExpenseResponse(updated))
}

// Delete implements ExpenseHandler.
func (h *ExpenseHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	expenseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid expense id", nil)
		return
	}

	if err := h.expenseService.Delete(r.Context(), expenseID); err != nil {
		slog.Error("Delete expense service error", "expense_id", expenseID, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Expense deleted", "expense_id", expenseID)
	response.SuccessWithMessage(w, "Expense deleted successfully", nil)
}
