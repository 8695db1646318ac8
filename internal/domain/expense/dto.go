package expense

import (
	"time"

	"github.com/banrai-ops/farm-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

func validTypes() []string {
	return []string{string(TypeLabor), string(TypeMaterial), string(TypeFuel), string(TypeTransport)}
}

// payroll_slip_id is deliberately absent from these requests: payroll-linked
// rows are managed by the payroll engine, never set through this surface.
type CreateExpenseRequest struct {
	Title    string          `json:"title"`
	Type     string          `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	JobNote  *string         `json:"job_note,omitempty"`
	QtyNote  *string         `json:"qty_note,omitempty"`
	WorkDate string          `json:"work_date"`
}

func (r *CreateExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "is required"})
	}
	if !validator.IsInSlice(r.Type, validTypes()) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of labor, material, fuel, transport"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateExpenseRequest struct {
	ID       int64            `json:"-"`
	Title    *string          `json:"title,omitempty"`
	Type     *string          `json:"type,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	JobNote  *string          `json:"job_note,omitempty"`
	QtyNote  *string          `json:"qty_note,omitempty"`
	WorkDate *string          `json:"work_date,omitempty"`
}

func (r *UpdateExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "must not be empty"})
	}
	if r.Type != nil && !validator.IsInSlice(*r.Type, validTypes()) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of labor, material, fuel, transport"})
	}
	if r.Amount != nil && !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if r.WorkDate != nil {
		if _, ok := validator.IsValidDate(*r.WorkDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "work_date", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExpenseFilter narrows listings; nil fields are not filtered on.
type ExpenseFilter struct {
	WorkDate *string
	Type     *string
}

type ExpenseResponse struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	Type              string          `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	JobNote           *string         `json:"job_note,omitempty"`
	QtyNote           *string         `json:"qty_note,omitempty"`
	WorkDate          string          `json:"work_date"`
	PayrollSlipID     *int64          `json:"payroll_slip_id,omitempty"`
	CreatedBy         int64           `json:"created_by"`
	CreatedByUsername string          `json:"created_by_username,omitempty"`
	CreatedAt         string          `json:"created_at"`
}

func ToExpenseResponse(e Expense) ExpenseResponse {
	createdByUsername := ""
	if e.CreatedByUsername != nil {
		createdByUsername = *e.CreatedByUsername
	}

	return ExpenseResponse{
		ID:                e.ID,
		Title:             e.Title,
		Type:              string(e.Type),
		Amount:            e.Amount,
		JobNote:           e.JobNote,
		QtyNote:           e.QtyNote,
		WorkDate:          e.WorkDate.Format("2006-01-02"),
		PayrollSlipID:     e.PayrollSlipID,
		CreatedBy:         e.CreatedBy,
		CreatedByUsername: createdByUsername,
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
	}
}

func ToExpenseResponses(expenses []Expense) []ExpenseResponse {
	result := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		result = append(result, ToExpenseResponse(e))
	}
	return result
}
