package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/banrai-ops/farm-backend-go/internal/domain/expense"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type expenseRepository struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = `
	id, title, type, amount, job_note, qty_note, work_date,
	payroll_slip_id, created_by, created_at, updated_at
`

func scanExpense(row pgx.Row) (expense.Expense, error) {
	var e expense.Expense
	err := row.Scan(
		&e.ID, &e.Title, &e.Type, &e.Amount, &e.JobNote, &e.QtyNote, &e.WorkDate,
		&e.PayrollSlipID, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *expenseRepository) Create(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	query := `
		INSERT INTO expenses (title, type, amount, job_note, qty_note, work_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + expenseColumns

	created, err := scanExpense(r.db.QueryRow(ctx, query,
		e.Title, e.Type, e.Amount, e.JobNote, e.QtyNote, e.WorkDate, e.CreatedBy,
	))
	if err != nil {
		return expense.Expense{}, fmt.Errorf("failed to create expense: %w", err)
	}

	return created, nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id int64) (expense.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

	e, err := scanExpense(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to get expense: %w", err)
	}

	return e, nil
}

func (r *expenseRepository) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.Expense, error) {
	query := `
		SELECT
			e.id, e.title, e.type, e.amount, e.job_note, e.qty_note, e.work_date,
			e.payroll_slip_id, e.created_by, e.created_at, e.updated_at,
			u.username AS created_by_username
		FROM expenses e
		JOIN users u ON u.id = e.created_by
		WHERE ($1::date IS NULL OR e.work_date = $1::date)
		  AND ($2::text IS NULL OR e.type = $2::text)
		ORDER BY e.created_at ASC
	`

	rows, err := r.db.Query(ctx, query, filter.WorkDate, filter.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []expense.Expense
	for rows.Next() {
		var e expense.Expense
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Type, &e.Amount, &e.JobNote, &e.QtyNote, &e.WorkDate,
			&e.PayrollSlipID, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
			&e.CreatedByUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (r *expenseRepository) Update(ctx context.Context, req expense.UpdateExpenseRequest) (expense.Expense, error) {
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
	if req.Type != nil {
		addSet("type", *req.Type)
	}
	if req.Amount != nil {
		addSet("amount", *req.Amount)
	}
	if req.JobNote != nil {
		addSet("job_note", *req.JobNote)
	}
	if req.QtyNote != nil {
		addSet("qty_note", *req.QtyNote)
	}
	if req.WorkDate != nil {
		addSet("work_date", *req.WorkDate)
	}

	query := fmt.Sprintf(`
		UPDATE expenses
		SET %s
		WHERE id = $1
		RETURNING %s
	`, strings.Join(setParts, ", "), expenseColumns)

	updated, err := scanExpense(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to update expense: %w", err)
	}

	return updated, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}

	return nil
}

func (r *expenseRepository) UpsertForSlipTx(ctx context.Context, tx pgx.Tx, e expense.Expense) error {
	// payroll_slip_id is unique, so repeated Paid transitions update the
	// same ledger row instead of inserting a second one.
	query := `
		INSERT INTO expenses (title, type, amount, work_date, payroll_slip_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (payroll_slip_id) DO UPDATE SET
			title      = EXCLUDED.title,
			amount     = EXCLUDED.amount,
			work_date  = EXCLUDED.work_date,
			updated_at = NOW()
	`

	if _, err := tx.Exec(ctx, query,
		e.Title, e.Type, e.Amount, e.WorkDate, e.PayrollSlipID, e.CreatedBy,
	); err != nil {
		return fmt.Errorf("failed to upsert payroll expense: %w", err)
	}

	return nil
}

func (r *expenseRepository) DeleteForSlipTx(ctx context.Context, tx pgx.Tx, slipID int64) error {
	// no-op when the slip never had a ledger entry
	if _, err := tx.Exec(ctx, `DELETE FROM expenses WHERE payroll_slip_id = $1`, slipID); err != nil {
		return fmt.Errorf("failed to delete payroll expense: %w", err)
	}

	return nil
}
