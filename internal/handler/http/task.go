package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/banrai-ops/farm-backend-go/internal/domain/task"
	"github.com/banrai-ops/farm-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TaskHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	CreatePayment(w http.ResponseWriter, r *http.Request)
	ListPayments(w http.ResponseWriter, r *http.Request)
	DeletePayment(w http.ResponseWriter, r *http.Request)
}

type TaskHandlerImpl struct {
	taskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) TaskHandler {
	return &TaskHandlerImpl{taskService: taskService}
}

// Create implements TaskHandler.
func (h *TaskHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req task.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create task decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.taskService.Create(r.Context(), req, userID)
	if err != nil {
		slog.Error("Create task service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Task created", "task_id", created.ID, "title", created.Title)
	response.Created(w, "Task created successfully", task.ToTaskResponse(created))
}

// Get implements TaskHandler.
func (h *TaskHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid task id", nil)
		return
	}

	t, err := h.taskService.Get(r.Context(), taskID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, task.ToTaskResponse(t))
}

// List implements TaskHandler.
func (h *TaskHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := taskFilterFromQuery(r)

	tasks, err := h.taskService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, task.ToTaskResponses(tasks))
}

// Update implements TaskHandler.
func (h *TaskHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid task id", nil)
		return
	}

	var req task.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update task decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = taskID

	updated, err := h.taskService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update task service error", "task_id", taskID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, task.ToTaskResponse(updated))
}

// Delete implements TaskHandler.
func (h *TaskHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid task id", nil)
		return
	}

	if err := h.taskService.Delete(r.Context(), taskID); err != nil {
		slog.Error("Delete task service error", "task_id", taskID, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Task deleted", "task_id", taskID)
	response.SuccessWithMessage(w, "Task deleted successfully", nil)
}

// CreatePayment implements TaskHandler.
func (h *TaskHandlerImpl) CreatePayment(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid task id", nil)
		return
	}

	var req task.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create payment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.TaskID = taskID

	entry, err := h.taskService.CreatePayment(r.Context(), req)
	if err != nil {
		slog.Error("Create payment service error", "task_id", taskID, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Task payment recorded", "task_id", taskID, "payment_id", entry.ID, "amount", entry.Amount)
	response.Created(w, "Payment recorded successfully", task.ToPaymentResponse(entry))
}

// ListPayments implements TaskHandler.
func (h *TaskHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid task id", nil)
		return
	}

	payments, err := h.taskService.ListPayments(r.Context(), taskID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, task.ToPaymentResponses(payments))
}

// DeletePayment implements TaskHandler.
func (h *TaskHandlerImpl) DeletePayment(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid task id", nil)
		return
	}
	paymentID, err := strconv.ParseInt(chi.URLParam(r, "paymentID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment id", nil)
		return
	}

	if err := h.taskService.DeletePayment(r.Context(), taskID, paymentID); err != nil {
		slog.Error("Delete payment service error", "task_id", taskID, "payment_id", paymentID, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Task payment removed", "task_id", taskID, "payment_id", paymentID)
	response.SuccessWithMessage(w, "Payment deleted successfully", nil)
}

// taskFilterFromQuery reads list filters. status and title accept
// comma-separated values; "All" disables status filtering.
func taskFilterFromQuery(r *http.Request) task.TaskFilter {
	q := r.URL.Query()
	var filter task.TaskFilter

	if v := q.Get("from"); v != "" {
		filter.From = &v
	}
	if v := q.Get("to"); v != "" {
		filter.To = &v
	}
	if v := q.Get("status"); v != "" && v != "All" {
		filter.Statuses = splitCSV(v)
	}
	if v := q.Get("title"); v != "" {
		filter.TitlePatterns = splitCSV(v)
	}

	return filter
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
