package expense

import "context"

type ExpenseService interface {
	Create(ctx context.Context, req CreateExpenseRequest, createdBy int64) (Expense, error)
	Get(ctx context.Context, id int64) (Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
	Update(ctx context.Context, req UpdateExpenseRequest) (Expense, error)
	Delete(ctx context.Context, id int64) error
}
