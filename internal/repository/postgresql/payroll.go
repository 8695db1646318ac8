package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/banrai-ops/farm-backend-go/internal/domain/payroll"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ListWorkLines selects the tasks that count toward one employee's month:
// started inside the window and, when closed, also ended inside it. Open
// tasks that started in-month qualify regardless of when they close.
func (r *payrollRepository) ListWorkLines(ctx context.Context, userID int64, monthStart, monthEnd time.Time) ([]payroll.WorkLine, error) {
	query := `
		SELECT
			t.id, t.title, t.job_type, t.start_date, t.end_date, t.area,
			ta.rate_per_rai, ta.repair_rate, ta.daily_rate,
			u.pay_type
		FROM tasks t
		JOIN task_assignees ta ON ta.task_id = t.id AND ta.user_id = $1
		JOIN users u ON u.id = ta.user_id
		WHERE t.start_date >= $2 AND t.start_date < $3
		  AND (t.end_date IS NULL OR (t.end_date >= $2 AND t.end_date < $3))
		ORDER BY t.start_date ASC, t.id ASC
	`

	rows, err := r.db.Query(ctx, query, userID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list work lines: %w", err)
	}
	defer rows.Close()

	var lines []payroll.WorkLine
	for rows.Next() {
		var l payroll.WorkLine
		if err := rows.Scan(
			&l.TaskID, &l.Title, &l.JobType, &l.StartDate, &l.EndDate, &l.Area,
			&l.RatePerRai, &l.RepairRate, &l.DailyRate,
			&l.PayType,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work line: %w", err)
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

const slipColumns = `
	id, user_id, month,
	rai_qty, rai_amount, repair_days, repair_amount, daily_amount,
	gross_amount, deduction, net_amount,
	details, note, status, paid_at, slip_no,
	created_by, created_at, updated_at
`

const slipColumnsQualified = `
	p.id, p.user_id, p.month,
	p.rai_qty, p.rai_amount, p.repair_days, p.repair_amount, p.daily_amount,
	p.gross_amount, p.deduction, p.net_amount,
	p.details, p.note, p.status, p.paid_at, p.slip_no,
	p.created_by, p.created_at, p.updated_at
`

func scanSlip(row pgx.Row) (payroll.Slip, error) {
	var s payroll.Slip
	var details []byte
	err := row.Scan(
		&s.ID, &s.UserID, &s.Month,
		&s.RaiQty, &s.RaiAmount, &s.RepairDays, &s.RepairAmount, &s.DailyAmount,
		&s.GrossAmount, &s.Deduction, &s.NetAmount,
		&details, &s.Note, &s.Status, &s.PaidAt, &s.SlipNo,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.Slip{}, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &s.Details); err != nil {
			return payroll.Slip{}, fmt.Errorf("failed to decode slip details: %w", err)
		}
	}
	return s, nil
}

func scanSlipWithUsernames(row pgx.Row) (payroll.Slip, error) {
	var s payroll.Slip
	var details []byte
	err := row.Scan(
		&s.ID, &s.UserID, &s.Month,
		&s.RaiQty, &s.RaiAmount, &s.RepairDays, &s.RepairAmount, &s.DailyAmount,
		&s.GrossAmount, &s.Deduction, &s.NetAmount,
		&details, &s.Note, &s.Status, &s.PaidAt, &s.SlipNo,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeUsername, &s.CreatedByUsername,
	)
	if err != nil {
		return payroll.Slip{}, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &s.Details); err != nil {
			return payroll.Slip{}, fmt.Errorf("failed to decode slip details: %w", err)
		}
	}
	return s, nil
}

func (r *payrollRepository) InsertSlipTx(ctx context.Context, tx pgx.Tx, slip payroll.Slip) (payroll.Slip, error) {
	details, err := json.Marshal(slip.Details)
	if err != nil {
		return payroll.Slip{}, fmt.Errorf("failed to encode slip details: %w", err)
	}

	query := `
		INSERT INTO payroll_slips (
			user_id, month,
			rai_qty, rai_amount, repair_days, repair_amount, daily_amount,
			gross_amount, deduction, net_amount,
			details, note, status, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + slipColumns

	created, err := scanSlip(tx.QueryRow(ctx, query,
		slip.UserID, slip.Month,
		slip.RaiQty, slip.RaiAmount, slip.RepairDays, slip.RepairAmount, slip.DailyAmount,
		slip.GrossAmount, slip.Deduction, slip.NetAmount,
		details, slip.Note, slip.Status, slip.CreatedBy,
	))
	if err != nil {
		if IsUniqueViolation(err, "") {
			return payroll.Slip{}, payroll.ErrSlipExists
		}
		return payroll.Slip{}, fmt.Errorf("failed to insert payroll slip: %w", err)
	}

	return created, nil
}

// AssignSlipNoTx derives the slip number from the month and the row's own
// id, e.g. PR-202508-000042. Using the id avoids a separate sequence while
// staying collision-free.
func (r *payrollRepository) AssignSlipNoTx(ctx context.Context, tx pgx.Tx, slipID int64, month string) (string, error) {
	slipNo := fmt.Sprintf("PR-%s-%06d", strings.ReplaceAll(month, "-", ""), slipID)

	query := `
		UPDATE payroll_slips
		SET slip_no = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING slip_no
	`

	var assigned string
	if err := tx.QueryRow(ctx, query, slipID, slipNo).Scan(&assigned); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", payroll.ErrSlipNotFound
		}
		return "", fmt.Errorf("failed to assign slip number: %w", err)
	}

	return assigned, nil
}

func (r *payrollRepository) GetSlipByID(ctx context.Context, id int64) (payroll.Slip, error) {
	query := `
		SELECT ` + slipColumnsQualified + `,
			u.username AS employee_username,
			c.username AS created_by_username
		FROM payroll_slips p
		JOIN users u ON u.id = p.user_id
		JOIN users c ON c.id = p.created_by
		WHERE p.id = $1
	`

	s, err := scanSlipWithUsernames(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Slip{}, payroll.ErrSlipNotFound
		}
		return payroll.Slip{}, fmt.Errorf("failed to get payroll slip: %w", err)
	}

	return s, nil
}

func (r *payrollRepository) GetSlipByUserMonth(ctx context.Context, userID int64, month string) (payroll.Slip, error) {
	query := `
		SELECT ` + slipColumnsQualified + `,
			u.username AS employee_username,
			c.username AS created_by_username
		FROM payroll_slips p
		JOIN users u ON u.id = p.user_id
		JOIN users c ON c.id = p.created_by
		WHERE p.user_id = $1 AND p.month = $2
	`

	s, err := scanSlipWithUsernames(r.db.QueryRow(ctx, query, userID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Slip{}, payroll.ErrSlipNotFound
		}
		return payroll.Slip{}, fmt.Errorf("failed to get payroll slip by month: %w", err)
	}

	return s, nil
}

func (r *payrollRepository) ListSlips(ctx context.Context, filter payroll.SlipFilter) ([]payroll.Slip, error) {
	query := `
		SELECT ` + slipColumnsQualified + `,
			u.username AS employee_username,
			c.username AS created_by_username
		FROM payroll_slips p
		JOIN users u ON u.id = p.user_id
		JOIN users c ON c.id = p.created_by
		WHERE ($1::bigint IS NULL OR p.user_id = $1::bigint)
		  AND ($2::text IS NULL OR p.month = $2::text)
		  AND ($3::text IS NULL OR p.status = $3::text)
		ORDER BY p.month DESC, p.id DESC
	`

	rows, err := r.db.Query(ctx, query, filter.UserID, filter.Month, filter.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll slips: %w", err)
	}
	defer rows.Close()

	var slips []payroll.Slip
	for rows.Next() {
		s, err := scanSlipWithUsernames(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll slip: %w", err)
		}
		slips = append(slips, s)
	}

	return slips, rows.Err()
}

func (r *payrollRepository) SetStatusTx(ctx context.Context, tx pgx.Tx, id int64, status payroll.SlipStatus, paidAt *time.Time) (payroll.Slip, error) {
	query := `
		UPDATE payroll_slips
		SET status = $2, paid_at = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + slipColumns

	s, err := scanSlip(tx.QueryRow(ctx, query, id, status, paidAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Slip{}, payroll.ErrSlipNotFound
		}
		return payroll.Slip{}, fmt.Errorf("failed to update slip status: %w", err)
	}

	return s, nil
}

func (r *payrollRepository) DeleteSlipTx(ctx context.Context, tx pgx.Tx, id int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM payroll_slips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll slip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrSlipNotFound
	}

	return nil
}
