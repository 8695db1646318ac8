package expense

import (
	"context"

	"github.com/banrai-ops/farm-backend-go/internal/domain/expense"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/validator"
)

type ExpenseServiceImpl struct {
	expenseRepo expense.ExpenseRepository
}

func NewExpenseService(expenseRepo expense.ExpenseRepository) expense.ExpenseService {
	return &ExpenseServiceImpl{expenseRepo: expenseRepo}
}

func (s *ExpenseServiceImpl) Create(ctx context.Context, req expense.CreateExpenseRequest, createdBy int64) (expense.Expense, error) {
	if err := req.Validate(); err != nil {
		return expense.Expense{}, err
	}

	workDate, _ := validator.IsValidDate(req.WorkDate)

	return s.expenseRepo.Create(ctx, expense.Expense{
		Title:     req.Title,
		Type:      expense.Type(req.Type),
		Amount:    req.Amount,
		JobNote:   req.JobNote,
		QtyNote:   req.QtyNote,
		WorkDate:  workDate,
		CreatedBy: createdBy,
	})
}

func (s *ExpenseServiceImpl) Get(ctx context.Context, id int64) (expense.Expense, error) {
	return s.expenseRepo.GetByID(ctx, id)
}

func (s *ExpenseServiceImpl) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.Expense, error) {
	var errs validator.ValidationErrors
	if filter.WorkDate != nil {
		if _, ok := validator.IsValidDate(*filter.WorkDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "work_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if filter.Type != nil && !validator.IsInSlice(*filter.Type, []string{
		string(expense.TypeLabor), string(expense.TypeMaterial), string(expense.TypeFuel), string(expense.TypeTransport),
	}) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of labor, material, fuel, transport"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return s.expenseRepo.List(ctx, filter)
}

func (s *ExpenseServiceImpl) Update(ctx context.Context, req expense.UpdateExpenseRequest) (expense.Expense, error) {
	if err := req.Validate(); err != nil {
		return expense.Expense{}, err
	}

	current, err := s.expenseRepo.GetByID(ctx, req.ID)
	if err != nil {
		return expense.Expense{}, err
	}
	// Rows mirrored from payroll slips are owned by the payroll engine.
	if current.PayrollSlipID != nil {
		return expense.Expense{}, expense.ErrPayrollManaged
	}

	return s.expenseRepo.Update(ctx, req)
}

func (s *ExpenseServiceImpl) Delete(ctx context.Context, id int64) error {
	current, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.PayrollSlipID != nil {
		return expense.ErrPayrollManaged
	}

	return s.expenseRepo.Delete(ctx, id)
}
