package task

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// TaskRepository defines data access for tasks, their assignees and manual
// payment entries. Methods suffixed Tx run inside a caller-owned
// transaction; the others run against the pool.
type TaskRepository interface {
	Create(ctx context.Context, tx pgx.Tx, t Task) (Task, error)
	GetByID(ctx context.Context, id int64) (Task, error)
	List(ctx context.Context, filter TaskFilter) ([]Task, error)
	Update(ctx context.Context, tx pgx.Tx, req UpdateTaskRequest) (Task, error)
	DeleteTx(ctx context.Context, tx pgx.Tx, id int64) error

	// Assignees. ReplaceAssigneesTx clears the task's assignment rows first;
	// UpsertAssigneesTx relies on the (task_id, user_id) uniqueness
	// constraint for conflict handling.
	UpsertAssigneesTx(ctx context.Context, tx pgx.Tx, taskID int64, configs []AssigneeConfig) error
	ReplaceAssigneesTx(ctx context.Context, tx pgx.Tx, taskID int64, configs []AssigneeConfig) error
	ListAssignees(ctx context.Context, taskID int64) ([]Assignee, error)

	// Payment entries
	CreatePaymentTx(ctx context.Context, tx pgx.Tx, p PaymentEntry) (PaymentEntry, error)
	GetPayment(ctx context.Context, taskID, paymentID int64) (PaymentEntry, error)
	ListPayments(ctx context.Context, taskID int64) ([]PaymentEntry, error)
	DeletePaymentTx(ctx context.Context, tx pgx.Tx, paymentID int64) error
	AdjustPaidAmountTx(ctx context.Context, tx pgx.Tx, taskID int64, delta int64) error

	// MarkStartedUntil flips Pending tasks whose start date has arrived to
	// InProgress. Used by the daily scheduler job.
	MarkStartedUntil(ctx context.Context, day time.Time) (int64, error)
}
