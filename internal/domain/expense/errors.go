package expense

import "errors"

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidType     = errors.New("invalid expense type")
	ErrPayrollManaged  = errors.New("expense is managed by payroll and cannot be modified directly")
)
