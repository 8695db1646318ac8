package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/banrai-ops/farm-backend-go/internal/domain/expense"
	"github.com/banrai-ops/farm-backend-go/internal/domain/payroll"
	"github.com/banrai-ops/farm-backend-go/internal/domain/user"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/database"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/validator"
	"github.com/banrai-ops/farm-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db          *database.DB
	payrollRepo payroll.PayrollRepository
	userRepo    user.UserRepository
	expenseRepo expense.ExpenseRepository

	// runTx wraps the slip-mutation sequences in a database transaction.
	// Held as a field so tests can run the sequences without a pool.
	runTx func(ctx context.Context, fn func(tx pgx.Tx) error) error
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	userRepo user.UserRepository,
	expenseRepo expense.ExpenseRepository,
) payroll.PayrollService {
	s := &PayrollServiceImpl{
		db:          db,
		payrollRepo: payrollRepo,
		userRepo:    userRepo,
		expenseRepo: expenseRepo,
	}
	s.runTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return postgresql.WithTransaction(ctx, s.db, fn)
	}
	return s
}

func (s *PayrollServiceImpl) Preview(ctx context.Context, req payroll.PreviewRequest) (payroll.Summary, error) {
	if err := req.Validate(); err != nil {
		return payroll.Summary{}, err
	}

	monthStart, monthEnd, ok := validator.MonthBounds(req.Month)
	if !ok {
		return payroll.Summary{}, payroll.ErrInvalidMonth
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return payroll.Summary{}, err
	}

	lines, err := s.payrollRepo.ListWorkLines(ctx, req.UserID, monthStart, monthEnd)
	if err != nil {
		return payroll.Summary{}, err
	}

	return BuildSummary(req.UserID, req.Month, lines), nil
}

func (s *PayrollServiceImpl) Create(ctx context.Context, req payroll.CreateSlipRequest, createdBy int64) (payroll.Slip, bool, error) {
	if err := req.Validate(); err != nil {
		return payroll.Slip{}, false, err
	}

	monthStart, monthEnd, ok := validator.MonthBounds(req.Month)
	if !ok {
		return payroll.Slip{}, false, payroll.ErrInvalidMonth
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return payroll.Slip{}, false, err
	}

	// Fast path: the slip may already exist for this employee and month.
	existing, err := s.payrollRepo.GetSlipByUserMonth(ctx, req.UserID, req.Month)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, payroll.ErrSlipNotFound) {
		return payroll.Slip{}, false, err
	}

	lines, err := s.payrollRepo.ListWorkLines(ctx, req.UserID, monthStart, monthEnd)
	if err != nil {
		return payroll.Slip{}, false, err
	}

	slip := newSlip(req, BuildSummary(req.UserID, req.Month, lines), createdBy)

	var slipID int64
	err = s.runTx(ctx, func(tx pgx.Tx) error {
		inserted, err := s.payrollRepo.InsertSlipTx(ctx, tx, slip)
		if err != nil {
			return err
		}
		if _, err := s.payrollRepo.AssignSlipNoTx(ctx, tx, inserted.ID, req.Month); err != nil {
			return err
		}
		slipID = inserted.ID
		return nil
	})
	if err != nil {
		// Lost a race with a concurrent create: surface the winner.
		if errors.Is(err, payroll.ErrSlipExists) {
			existing, getErr := s.payrollRepo.GetSlipByUserMonth(ctx, req.UserID, req.Month)
			if getErr != nil {
				return payroll.Slip{}, false, getErr
			}
			return existing, false, nil
		}
		slog.Error("Payroll slip creation failed", "user_id", req.UserID, "month", req.Month, "error", err)
		return payroll.Slip{}, false, err
	}

	created, err := s.payrollRepo.GetSlipByID(ctx, slipID)
	if err != nil {
		return payroll.Slip{}, false, err
	}

	slog.Info("Payroll slip created",
		"slip_id", created.ID, "user_id", req.UserID, "month", req.Month,
		"gross", created.GrossAmount, "net", created.NetAmount)

	return created, true, nil
}

func (s *PayrollServiceImpl) Get(ctx context.Context, id int64) (payroll.Slip, error) {
	return s.payrollRepo.GetSlipByID(ctx, id)
}

func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.SlipFilter) ([]payroll.Slip, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.payrollRepo.ListSlips(ctx, filter)
}

// SetPaidStatus transitions a slip between Unpaid and Paid. The paired
// labor expense is written or removed inside the same transaction so the
// ledger can never disagree with the slip status. Repeating the current
// status is a no-op.
func (s *PayrollServiceImpl) SetPaidStatus(ctx context.Context, id int64, paid bool) (payroll.Slip, error) {
	slip, err := s.payrollRepo.GetSlipByID(ctx, id)
	if err != nil {
		return payroll.Slip{}, err
	}

	if paid == (slip.Status == payroll.SlipStatusPaid) {
		return slip, nil
	}

	if paid {
		paidAt := time.Now().UTC()
		err = s.runTx(ctx, func(tx pgx.Tx) error {
			if _, err := s.payrollRepo.SetStatusTx(ctx, tx, id, payroll.SlipStatusPaid, &paidAt); err != nil {
				return err
			}
			return s.expenseRepo.UpsertForSlipTx(ctx, tx, laborExpense(slip, paidAt))
		})
	} else {
		err = s.runTx(ctx, func(tx pgx.Tx) error {
			if _, err := s.payrollRepo.SetStatusTx(ctx, tx, id, payroll.SlipStatusUnpaid, nil); err != nil {
				return err
			}
			return s.expenseRepo.DeleteForSlipTx(ctx, tx, id)
		})
	}
	if err != nil {
		slog.Error("Payroll slip status change failed", "slip_id", id, "paid", paid, "error", err)
		return payroll.Slip{}, err
	}

	return s.payrollRepo.GetSlipByID(ctx, id)
}

func (s *PayrollServiceImpl) Delete(ctx context.Context, id int64) error {
	slip, err := s.payrollRepo.GetSlipByID(ctx, id)
	if err != nil {
		return err
	}

	return s.runTx(ctx, func(tx pgx.Tx) error {
		if slip.Status == payroll.SlipStatusPaid {
			if err := s.expenseRepo.DeleteForSlipTx(ctx, tx, id); err != nil {
				return err
			}
		}
		return s.payrollRepo.DeleteSlipTx(ctx, tx, id)
	})
}

// newSlip assembles an Unpaid slip from a computed summary. The net
// amount is floored at zero so a deduction larger than the month's gross
// never produces a negative payout.
func newSlip(req payroll.CreateSlipRequest, summary payroll.Summary, createdBy int64) payroll.Slip {
	net := summary.GrossAmount.Sub(req.Deduction)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return payroll.Slip{
		UserID:       req.UserID,
		Month:        req.Month,
		RaiQty:       summary.RaiQty,
		RaiAmount:    summary.RaiAmount,
		RepairDays:   summary.RepairDays,
		RepairAmount: summary.RepairAmount,
		DailyAmount:  summary.DailyAmount,
		GrossAmount:  summary.GrossAmount,
		Deduction:    req.Deduction,
		NetAmount:    net.Round(2),
		Details:      summary.Details,
		Note:         req.Note,
		Status:       payroll.SlipStatusUnpaid,
		CreatedBy:    createdBy,
	}
}

// laborExpense builds the ledger entry mirrored from a paid slip.
func laborExpense(slip payroll.Slip, paidAt time.Time) expense.Expense {
	username := ""
	if slip.EmployeeUsername != nil {
		username = *slip.EmployeeUsername
	}
	slipNo := ""
	if slip.SlipNo != nil {
		slipNo = *slip.SlipNo
	}

	slipID := slip.ID
	workDate := time.Date(paidAt.Year(), paidAt.Month(), paidAt.Day(), 0, 0, 0, 0, time.UTC)

	return expense.Expense{
		Title:         fmt.Sprintf("Labor %s - %s (%s)", slip.Month, username, slipNo),
		Type:          expense.TypeLabor,
		Amount:        slip.NetAmount,
		WorkDate:      workDate,
		PayrollSlipID: &slipID,
		CreatedBy:     slip.CreatedBy,
	}
}
