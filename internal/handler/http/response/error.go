package response

import (
	"errors"
	"net/http"

	"github.com/banrai-ops/farm-backend-go/internal/domain/expense"
	"github.com/banrai-ops/farm-backend-go/internal/domain/payroll"
	"github.com/banrai-ops/farm-backend-go/internal/domain/task"
	"github.com/banrai-ops/farm-backend-go/internal/domain/user"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrBossAccessRequired):
		Forbidden(w, "Boss or admin access required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already exists")

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrPaymentNotFound):
		NotFound(w, "Payment entry not found")
	case errors.Is(err, task.ErrInvalidStatus):
		BadRequest(w, "Invalid task status", nil)
	case errors.Is(err, task.ErrInvalidJobType):
		BadRequest(w, "Invalid job type", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSlipNotFound):
		NotFound(w, "Payroll slip not found")
	case errors.Is(err, payroll.ErrSlipExists):
		Conflict(w, "Payroll slip already exists for this employee and month")
	case errors.Is(err, payroll.ErrInvalidMonth):
		BadRequest(w, "Month must be in YYYY-MM format", nil)

	// Expense domain errors
	case errors.Is(err, expense.ErrExpenseNotFound):
		NotFound(w, "Expense not found")
	case errors.Is(err, expense.ErrInvalidType):
		BadRequest(w, "Invalid expense type", nil)
	case errors.Is(err, expense.ErrPayrollManaged):
		Conflict(w, "Expense is managed by payroll and cannot be modified directly")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
