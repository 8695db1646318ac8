package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/banrai-ops/farm-backend-go/internal/domain/expense"
	"github.com/banrai-ops/farm-backend-go/internal/domain/payroll"
	"github.com/banrai-ops/farm-backend-go/internal/domain/user"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fakes embed the domain interfaces so only the methods a test path
// touches need implementing.

type fakeUserRepo struct {
	user.UserRepository
	users map[int64]user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type fakePayrollRepo struct {
	payroll.PayrollRepository
	lines         []payroll.WorkLine
	slipsByID     map[int64]payroll.Slip
	slipsByMonth  map[string]payroll.Slip
	listWorkCalls int
}

func (f *fakePayrollRepo) ListWorkLines(ctx context.Context, userID int64, monthStart, monthEnd time.Time) ([]payroll.WorkLine, error) {
	f.listWorkCalls++
	var out []payroll.WorkLine
	for _, l := range f.lines {
		if l.StartDate.Before(monthStart) || !l.StartDate.Before(monthEnd) {
			continue
		}
		// Closed jobs must also end inside the window, mirroring the
		// repository's month query.
		if l.EndDate != nil && (l.EndDate.Before(monthStart) || !l.EndDate.Before(monthEnd)) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakePayrollRepo) SetStatusTx(ctx context.Context, tx pgx.Tx, id int64, status payroll.SlipStatus, paidAt *time.Time) (payroll.Slip, error) {
	s, ok := f.slipsByID[id]
	if !ok {
		return payroll.Slip{}, payroll.ErrSlipNotFound
	}
	s.Status = status
	s.PaidAt = paidAt
	f.slipsByID[id] = s
	return s, nil
}

type fakeExpenseRepo struct {
	expense.ExpenseRepository
	upserts []expense.Expense
	deletes []int64
}

func (f *fakeExpenseRepo) UpsertForSlipTx(ctx context.Context, tx pgx.Tx, e expense.Expense) error {
	f.upserts = append(f.upserts, e)
	return nil
}

func (f *fakeExpenseRepo) DeleteForSlipTx(ctx context.Context, tx pgx.Tx, slipID int64) error {
	f.deletes = append(f.deletes, slipID)
	return nil
}

// newFakeService wires the fakes in with a pass-through transaction
// runner so the transactional sequences run without a database pool.
func newFakeService(payrollRepo *fakePayrollRepo, userRepo *fakeUserRepo, expenseRepo *fakeExpenseRepo) *PayrollServiceImpl {
	svc := NewPayrollService(nil, payrollRepo, userRepo, expenseRepo).(*PayrollServiceImpl)
	svc.runTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return fn(nil)
	}
	return svc
}

func (f *fakePayrollRepo) GetSlipByID(ctx context.Context, id int64) (payroll.Slip, error) {
	s, ok := f.slipsByID[id]
	if !ok {
		return payroll.Slip{}, payroll.ErrSlipNotFound
	}
	return s, nil
}

func (f *fakePayrollRepo) GetSlipByUserMonth(ctx context.Context, userID int64, month string) (payroll.Slip, error) {
	s, ok := f.slipsByMonth[month]
	if !ok || s.UserID != userID {
		return payroll.Slip{}, payroll.ErrSlipNotFound
	}
	return s, nil
}

func testWorker(id int64) user.User {
	return user.User{ID: id, Username: "somchai", Role: user.RoleUser, PayType: user.PayTypePerRai}
}

func TestPayrollService_Preview(t *testing.T) {
	ctx := context.Background()

	payrollRepo := &fakePayrollRepo{
		lines: []payroll.WorkLine{
			fieldLine(dec("5"), dec("60"), user.PayTypePerRai),
			// September work must stay out of an August preview.
			{
				TaskID: 9, Title: "Plow south field", JobType: "field_area",
				StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
				Area:      dec("10"), RatePerRai: dec("60"),
				PayType: user.PayTypePerRai,
			},
		},
	}
	userRepo := &fakeUserRepo{users: map[int64]user.User{7: testWorker(7)}}
	svc := NewPayrollService(nil, payrollRepo, userRepo, nil)

	summary, err := svc.Preview(ctx, payroll.PreviewRequest{UserID: 7, Month: "2025-08"})
	require.NoError(t, err)

	assert.True(t, summary.GrossAmount.Equal(decimal.RequireFromString("300")))
	assert.Len(t, summary.Details, 1)
}

func TestPayrollService_Preview_ExcludesJobEndingAfterMonth(t *testing.T) {
	// Started in August but closed on September 1st: out of the window.
	end := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	line := fieldLine(dec("5"), dec("60"), user.PayTypePerRai)
	line.EndDate = &end

	payrollRepo := &fakePayrollRepo{lines: []payroll.WorkLine{line}}
	userRepo := &fakeUserRepo{users: map[int64]user.User{7: testWorker(7)}}
	svc := NewPayrollService(nil, payrollRepo, userRepo, nil)

	summary, err := svc.Preview(context.Background(), payroll.PreviewRequest{UserID: 7, Month: "2025-08"})
	require.NoError(t, err)

	assert.True(t, summary.GrossAmount.IsZero())
	assert.Empty(t, summary.Details)
}

func TestPayrollService_Preview_UnknownUser(t *testing.T) {
	svc := NewPayrollService(nil, &fakePayrollRepo{}, &fakeUserRepo{users: map[int64]user.User{}}, nil)

	_, err := svc.Preview(context.Background(), payroll.PreviewRequest{UserID: 99, Month: "2025-08"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestPayrollService_Preview_InvalidMonth(t *testing.T) {
	svc := NewPayrollService(nil, &fakePayrollRepo{}, &fakeUserRepo{}, nil)

	_, err := svc.Preview(context.Background(), payroll.PreviewRequest{UserID: 7, Month: "2025-13"})

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestPayrollService_Create_ReturnsExistingSlip(t *testing.T) {
	slipNo := "PR-202508-000042"
	existing := payroll.Slip{ID: 42, UserID: 7, Month: "2025-08", SlipNo: &slipNo, Status: payroll.SlipStatusUnpaid}

	payrollRepo := &fakePayrollRepo{slipsByMonth: map[string]payroll.Slip{"2025-08": existing}}
	userRepo := &fakeUserRepo{users: map[int64]user.User{7: testWorker(7)}}
	svc := NewPayrollService(nil, payrollRepo, userRepo, nil)

	slip, created, err := svc.Create(context.Background(), payroll.CreateSlipRequest{UserID: 7, Month: "2025-08"}, 1)
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, int64(42), slip.ID)
	// The duplicate path must not recompute the month.
	assert.Equal(t, 0, payrollRepo.listWorkCalls)
}

func TestPayrollService_SetPaidStatus_PaidWritesExpense(t *testing.T) {
	username := "somchai"
	slipNo := "PR-202508-000005"
	unpaid := payroll.Slip{
		ID: 5, UserID: 7, Month: "2025-08",
		NetAmount:        decimal.RequireFromString("399.50"),
		Status:           payroll.SlipStatusUnpaid,
		SlipNo:           &slipNo,
		EmployeeUsername: &username,
		CreatedBy:        1,
	}

	payrollRepo := &fakePayrollRepo{slipsByID: map[int64]payroll.Slip{5: unpaid}}
	expenseRepo := &fakeExpenseRepo{}
	svc := newFakeService(payrollRepo, nil, expenseRepo)

	slip, err := svc.SetPaidStatus(context.Background(), 5, true)
	require.NoError(t, err)

	assert.Equal(t, payroll.SlipStatusPaid, slip.Status)
	require.NotNil(t, slip.PaidAt)

	require.Len(t, expenseRepo.upserts, 1)
	e := expenseRepo.upserts[0]
	assert.Equal(t, "Labor 2025-08 - somchai (PR-202508-000005)", e.Title)
	assert.True(t, e.Amount.Equal(unpaid.NetAmount))
	require.NotNil(t, e.PayrollSlipID)
	assert.Equal(t, int64(5), *e.PayrollSlipID)
	assert.Empty(t, expenseRepo.deletes)
}

func TestPayrollService_SetPaidStatus_UnpaidRemovesExpense(t *testing.T) {
	paidAt := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	paid := payroll.Slip{ID: 5, UserID: 7, Month: "2025-08", Status: payroll.SlipStatusPaid, PaidAt: &paidAt}

	payrollRepo := &fakePayrollRepo{slipsByID: map[int64]payroll.Slip{5: paid}}
	expenseRepo := &fakeExpenseRepo{}
	svc := newFakeService(payrollRepo, nil, expenseRepo)

	slip, err := svc.SetPaidStatus(context.Background(), 5, false)
	require.NoError(t, err)

	assert.Equal(t, payroll.SlipStatusUnpaid, slip.Status)
	assert.Nil(t, slip.PaidAt)
	assert.Equal(t, []int64{5}, expenseRepo.deletes)
	assert.Empty(t, expenseRepo.upserts)
}

func TestPayrollService_SetPaidStatus_RepeatIsNoOp(t *testing.T) {
	paidAt := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	paid := payroll.Slip{ID: 5, UserID: 7, Month: "2025-08", Status: payroll.SlipStatusPaid, PaidAt: &paidAt}

	payrollRepo := &fakePayrollRepo{slipsByID: map[int64]payroll.Slip{5: paid}}
	svc := NewPayrollService(nil, payrollRepo, nil, nil)

	slip, err := svc.SetPaidStatus(context.Background(), 5, true)
	require.NoError(t, err)

	assert.Equal(t, payroll.SlipStatusPaid, slip.Status)
	require.NotNil(t, slip.PaidAt)
	assert.True(t, slip.PaidAt.Equal(paidAt), "repeated Paid must not move paid_at")
}

func TestNewSlip_NetFloorsAtZero(t *testing.T) {
	summary := payroll.Summary{
		UserID: 7, Month: "2025-08",
		GrossAmount: decimal.RequireFromString("100"),
	}
	req := payroll.CreateSlipRequest{
		UserID: 7, Month: "2025-08",
		Deduction: decimal.RequireFromString("150"),
	}

	slip := newSlip(req, summary, 1)

	assert.True(t, slip.NetAmount.IsZero(), "deduction above gross floors net at zero, got %s", slip.NetAmount)
	assert.True(t, slip.GrossAmount.Equal(decimal.RequireFromString("100")))
	assert.Equal(t, payroll.SlipStatusUnpaid, slip.Status)
	assert.Equal(t, int64(1), slip.CreatedBy)
}

func TestNewSlip_Net(t *testing.T) {
	summary := payroll.Summary{
		UserID: 7, Month: "2025-08",
		GrossAmount: decimal.RequireFromString("470"),
	}
	req := payroll.CreateSlipRequest{
		UserID: 7, Month: "2025-08",
		Deduction: decimal.RequireFromString("70.5"),
	}

	slip := newSlip(req, summary, 1)

	assert.True(t, slip.NetAmount.Equal(decimal.RequireFromString("399.50")))
}

func TestLaborExpense(t *testing.T) {
	username := "somchai"
	slipNo := "PR-202508-000042"
	slip := payroll.Slip{
		ID: 42, UserID: 7, Month: "2025-08",
		NetAmount:        decimal.RequireFromString("399.50"),
		SlipNo:           &slipNo,
		EmployeeUsername: &username,
		CreatedBy:        1,
	}
	paidAt := time.Date(2025, 9, 1, 14, 30, 0, 0, time.UTC)

	e := laborExpense(slip, paidAt)

	assert.Equal(t, "Labor 2025-08 - somchai (PR-202508-000042)", e.Title)
	assert.Equal(t, "labor", string(e.Type))
	assert.True(t, e.Amount.Equal(slip.NetAmount))
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), e.WorkDate)
	require.NotNil(t, e.PayrollSlipID)
	assert.Equal(t, int64(42), *e.PayrollSlipID)
	assert.Equal(t, int64(1), e.CreatedBy)
}
