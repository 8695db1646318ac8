package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/banrai-ops/farm-backend-go/internal/domain/task"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type taskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `
	id, title, job_type, start_date, end_date, area, trucks,
	total_amount, paid_amount, note, status, created_by, created_at, updated_at
`

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.JobType, &t.StartDate, &t.EndDate, &t.Area, &t.Trucks,
		&t.TotalAmount, &t.PaidAmount, &t.Note, &t.Status, &t.CreatedBy,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *taskRepository) Create(ctx context.Context, tx pgx.Tx, t task.Task) (task.Task, error) {
	query := `
		INSERT INTO tasks (
			title, job_type, start_date, end_date, area, trucks,
			total_amount, paid_amount, note, status, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + taskColumns

	created, err := scanTask(tx.QueryRow(ctx, query,
		t.Title, t.JobType, t.StartDate, t.EndDate, t.Area, t.Trucks,
		t.TotalAmount, t.PaidAmount, t.Note, t.Status, t.CreatedBy,
	))
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return created, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	assignees, err := r.ListAssignees(ctx, id)
	if err != nil {
		return task.Task{}, err
	}
	t.Assignees = assignees

	return t, nil
}

func (r *taskRepository) List(ctx context.Context, filter task.TaskFilter) ([]task.Task, error) {
	patterns := make([]string, 0, len(filter.TitlePatterns))
	for _, p := range filter.TitlePatterns {
		patterns = append(patterns, "%"+escapeLike(p)+"%")
	}

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE ($1::date IS NULL OR start_date >= $1::date)
		  AND ($2::date IS NULL OR start_date <= $2::date)
		  AND ($3::boolean IS FALSE OR status = ANY($4::text[]))
		  AND ($5::boolean IS FALSE OR title ILIKE ANY($6::text[]))
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query,
		filter.From, filter.To,
		len(filter.Statuses) > 0, filter.Statuses,
		len(patterns) > 0, patterns,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.JobType, &t.StartDate, &t.EndDate, &t.Area, &t.Trucks,
			&t.TotalAmount, &t.PaidAmount, &t.Note, &t.Status, &t.CreatedBy,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tasks {
		assignees, err := r.ListAssignees(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Assignees = assignees
	}

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, tx pgx.Tx, req task.UpdateTaskRequest) (task.Task, error) {
	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	argIdx := 2

	addSet := func(col string, val interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}

	if req.Title != nil {
		addSet("title", *req.Title)
	}
	if req.JobType != nil {
		addSet("job_type", *req.JobType)
	}
	if req.StartDate != nil {
		addSet("start_date", *req.StartDate)
	}
	if req.EndDate != nil {
		addSet("end_date", *req.EndDate)
	}
	if req.Area != nil {
		addSet("area", *req.Area)
	}
	if req.Trucks != nil {
		addSet("trucks", *req.Trucks)
	}
	if req.TotalAmount != nil {
		addSet("total_amount", *req.TotalAmount)
	}
	if req.PaidAmount != nil {
		addSet("paid_amount", *req.PaidAmount)
	}
	if req.Note != nil {
		addSet("note", *req.Note)
	}
	if req.Status != nil {
		addSet("status", *req.Status)
	}

	query := fmt.Sprintf(`
		UPDATE tasks
		SET %s
		WHERE id = $1
		RETURNING %s
	`, strings.Join(setParts, ", "), taskColumns)

	updated, err := scanTask(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

func (r *taskRepository) DeleteTx(ctx context.Context, tx pgx.Tx, id int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM task_payments WHERE task_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete task payments: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM task_assignees WHERE task_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete task assignees: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

// ========== ASSIGNEES ==========

func (r *taskRepository) UpsertAssigneesTx(ctx context.Context, tx pgx.Tx, taskID int64, configs []task.AssigneeConfig) error {
	var defaults []int64
	var explicits []task.AssigneeConfig

	for _, cfg := range configs {
		// use_default unless explicitly set to false
		if cfg.UseDefault == nil || *cfg.UseDefault {
			defaults = append(defaults, cfg.UserID)
		} else {
			explicits = append(explicits, cfg)
		}
	}

	if len(defaults) > 0 {
		// Materialize the employees' current default rates into the
		// assignment rows so later default changes do not rewrite history.
		query := `
			INSERT INTO task_assignees (
				task_id, user_id, use_default, rate_per_rai, repair_rate, daily_rate
			)
			SELECT $1::bigint, u.id, TRUE,
				   u.default_rate_per_rai, u.default_repair_rate, u.default_daily_rate
			FROM users u
			WHERE u.id = ANY($2::bigint[])
			ON CONFLICT (task_id, user_id) DO UPDATE SET
				use_default  = EXCLUDED.use_default,
				rate_per_rai = EXCLUDED.rate_per_rai,
				repair_rate  = EXCLUDED.repair_rate,
				daily_rate   = EXCLUDED.daily_rate
		`
		if _, err := tx.Exec(ctx, query, taskID, defaults); err != nil {
			return fmt.Errorf("failed to upsert default-rate assignees: %w", err)
		}
	}

	for _, a := range explicits {
		query := `
			INSERT INTO task_assignees (
				task_id, user_id, use_default, rate_per_rai, repair_rate, daily_rate
			) VALUES ($1, $2, FALSE, $3, $4, $5)
			ON CONFLICT (task_id, user_id) DO UPDATE SET
				use_default  = EXCLUDED.use_default,
				rate_per_rai = EXCLUDED.rate_per_rai,
				repair_rate  = EXCLUDED.repair_rate,
				daily_rate   = EXCLUDED.daily_rate
		`
		if _, err := tx.Exec(ctx, query, taskID, a.UserID, a.RatePerRai, a.RepairRate, a.DailyRate); err != nil {
			return fmt.Errorf("failed to upsert assignee %d: %w", a.UserID, err)
		}
	}

	return nil
}

func (r *taskRepository) ReplaceAssigneesTx(ctx context.Context, tx pgx.Tx, taskID int64, configs []task.AssigneeConfig) error {
	if _, err := tx.Exec(ctx, `DELETE FROM task_assignees WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("failed to clear task assignees: %w", err)
	}
	return r.UpsertAssigneesTx(ctx, tx, taskID, configs)
}

func (r *taskRepository) ListAssignees(ctx context.Context, taskID int64) ([]task.Assignee, error) {
	query := `
		SELECT ta.user_id, u.username, u.pay_type, ta.use_default,
			   ta.rate_per_rai, ta.repair_rate, ta.daily_rate
		FROM task_assignees ta
		JOIN users u ON u.id = ta.user_id
		WHERE ta.task_id = $1
		ORDER BY u.username
	`

	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task assignees: %w", err)
	}
	defer rows.Close()

	var assignees []task.Assignee
	for rows.Next() {
		var a task.Assignee
		if err := rows.Scan(
			&a.UserID, &a.Username, &a.PayType, &a.UseDefault,
			&a.RatePerRai, &a.RepairRate, &a.DailyRate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task assignee: %w", err)
		}
		assignees = append(assignees, a)
	}

	return assignees, rows.Err()
}

// ========== PAYMENT ENTRIES ==========

func (r *taskRepository) CreatePaymentTx(ctx context.Context, tx pgx.Tx, p task.PaymentEntry) (task.PaymentEntry, error) {
	query := `
		INSERT INTO task_payments (task_id, amount, note)
		VALUES ($1, $2, $3)
		RETURNING id, task_id, amount, note, created_at
	`

	var created task.PaymentEntry
	err := tx.QueryRow(ctx, query, p.TaskID, p.Amount, p.Note).Scan(
		&created.ID, &created.TaskID, &created.Amount, &created.Note, &created.CreatedAt,
	)
	if err != nil {
		return task.PaymentEntry{}, fmt.Errorf("failed to create payment entry: %w", err)
	}

	return created, nil
}

func (r *taskRepository) GetPayment(ctx context.Context, taskID, paymentID int64) (task.PaymentEntry, error) {
	query := `
		SELECT id, task_id, amount, note, created_at
		FROM task_payments
		WHERE id = $1 AND task_id = $2
	`

	var p task.PaymentEntry
	err := r.db.QueryRow(ctx, query, paymentID, taskID).Scan(
		&p.ID, &p.TaskID, &p.Amount, &p.Note, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.PaymentEntry{}, task.ErrPaymentNotFound
		}
		return task.PaymentEntry{}, fmt.Errorf("failed to get payment entry: %w", err)
	}

	return p, nil
}

func (r *taskRepository) ListPayments(ctx context.Context, taskID int64) ([]task.PaymentEntry, error) {
	query := `
		SELECT id, task_id, amount, note, created_at
		FROM task_payments
		WHERE task_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment entries: %w", err)
	}
	defer rows.Close()

	var payments []task.PaymentEntry
	for rows.Next() {
		var p task.PaymentEntry
		if err := rows.Scan(&p.ID, &p.TaskID, &p.Amount, &p.Note, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment entry: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (r *taskRepository) DeletePaymentTx(ctx context.Context, tx pgx.Tx, paymentID int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM task_payments WHERE id = $1`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrPaymentNotFound
	}

	return nil
}

func (r *taskRepository) AdjustPaidAmountTx(ctx context.Context, tx pgx.Tx, taskID int64, delta int64) error {
	// paid_amount never drops below zero, matching the payment-reversal rule
	query := `
		UPDATE tasks
		SET paid_amount = GREATEST(0, paid_amount + $2::numeric), updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, taskID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust paid amount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) MarkStartedUntil(ctx context.Context, day time.Time) (int64, error) {
	query := `
		UPDATE tasks
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND start_date <= $3::date
	`

	tag, err := r.db.Exec(ctx, query, task.StatusInProgress, task.StatusPending, day)
	if err != nil {
		return 0, fmt.Errorf("failed to mark started tasks: %w", err)
	}

	return tag.RowsAffected(), nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
