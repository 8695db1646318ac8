package expense

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// ExpenseRepository defines data access for expense ledger entries.
// UpsertForSlipTx and DeleteForSlipTx are the only paths that touch
// payroll-linked rows; they run inside the payroll transaction.
type ExpenseRepository interface {
	Create(ctx context.Context, e Expense) (Expense, error)
	GetByID(ctx context.Context, id int64) (Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
	Update(ctx context.Context, req UpdateExpenseRequest) (Expense, error)
	Delete(ctx context.Context, id int64) error

	// UpsertForSlipTx inserts or updates the single row keyed by
	// e.PayrollSlipID. The unique constraint on payroll_slip_id guarantees
	// at most one ledger entry per slip.
	UpsertForSlipTx(ctx context.Context, tx pgx.Tx, e Expense) error
	DeleteForSlipTx(ctx context.Context, tx pgx.Tx, slipID int64) error
}
