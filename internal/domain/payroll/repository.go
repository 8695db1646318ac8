package payroll

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// PayrollRepository defines data access for payroll slips and the monthly
// work-line query feeding the aggregator. Methods suffixed Tx run inside a
// caller-owned transaction so slip creation and status changes stay atomic.
type PayrollRepository interface {
	// ListWorkLines returns the employee's work records whose start date
	// falls in [monthStart, monthEnd) and whose end date, when set, falls in
	// the same window. Ordered by start date, then task id.
	ListWorkLines(ctx context.Context, userID int64, monthStart, monthEnd time.Time) ([]WorkLine, error)

	InsertSlipTx(ctx context.Context, tx pgx.Tx, slip Slip) (Slip, error)
	// AssignSlipNoTx derives the slip number from the month and the slip's
	// own row id and stores it. Must run in the same transaction as the
	// insert so a numbering failure rolls the whole creation back.
	AssignSlipNoTx(ctx context.Context, tx pgx.Tx, slipID int64, month string) (string, error)

	GetSlipByID(ctx context.Context, id int64) (Slip, error)
	GetSlipByUserMonth(ctx context.Context, userID int64, month string) (Slip, error)
	ListSlips(ctx context.Context, filter SlipFilter) ([]Slip, error)

	SetStatusTx(ctx context.Context, tx pgx.Tx, id int64, status SlipStatus, paidAt *time.Time) (Slip, error)
	DeleteSlipTx(ctx context.Context, tx pgx.Tx, id int64) error
}
