package payroll

import (
	"time"

	"github.com/banrai-ops/farm-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateSlipRequest struct {
	UserID    int64           `json:"user_id"`
	Month     string          `json:"month"`
	Deduction decimal.Decimal `json:"deduction"`
	Note      *string         `json:"note,omitempty"`
}

func (r *CreateSlipRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "must be a positive integer"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be YYYY-MM"})
	}
	if r.Deduction.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "deduction", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PreviewRequest struct {
	UserID int64
	Month  string
}

func (r *PreviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "must be a positive integer"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be YYYY-MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SlipFilter narrows slip listings; nil fields are not filtered on.
type SlipFilter struct {
	UserID *int64
	Month  *string
	Status *string
}

func (f *SlipFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.UserID != nil && *f.UserID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "must be a positive integer"})
	}
	if f.Month != nil && !validator.IsValidMonth(*f.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be YYYY-MM"})
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		string(SlipStatusUnpaid), string(SlipStatusPaid),
	}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'Unpaid' or 'Paid'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SummaryResponse struct {
	UserID       int64           `json:"user_id"`
	Month        string          `json:"month"`
	RaiQty       decimal.Decimal `json:"rai_qty"`
	RaiAmount    decimal.Decimal `json:"rai_amount"`
	RepairDays   int             `json:"repair_days"`
	RepairAmount decimal.Decimal `json:"repair_amount"`
	DailyAmount  decimal.Decimal `json:"daily_amount"`
	GrossAmount  decimal.Decimal `json:"gross_amount"`
	Details      []SlipDetail    `json:"details"`
}

type SlipResponse struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"user_id"`
	EmployeeUsername  string          `json:"employee_username,omitempty"`
	Month             string          `json:"month"`
	RaiQty            decimal.Decimal `json:"rai_qty"`
	RaiAmount         decimal.Decimal `json:"rai_amount"`
	RepairDays        int             `json:"repair_days"`
	RepairAmount      decimal.Decimal `json:"repair_amount"`
	DailyAmount       decimal.Decimal `json:"daily_amount"`
	GrossAmount       decimal.Decimal `json:"gross_amount"`
	Deduction         decimal.Decimal `json:"deduction"`
	NetAmount         decimal.Decimal `json:"net_amount"`
	Details           []SlipDetail    `json:"details"`
	Note              *string         `json:"note,omitempty"`
	Status            string          `json:"status"`
	PaidAt            *string         `json:"paid_at,omitempty"`
	SlipNo            *string         `json:"slip_no,omitempty"`
	CreatedBy         int64           `json:"created_by"`
	CreatedByUsername string          `json:"created_by_username,omitempty"`
	CreatedAt         string          `json:"created_at"`
}

func ToSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		UserID:       s.UserID,
		Month:        s.Month,
		RaiQty:       s.RaiQty,
		RaiAmount:    s.RaiAmount,
		RepairDays:   s.RepairDays,
		RepairAmount: s.RepairAmount,
		DailyAmount:  s.DailyAmount,
		GrossAmount:  s.GrossAmount,
		Details:      s.Details,
	}
}

func ToSlipResponse(s Slip) SlipResponse {
	var paidAtStr *string
	if s.PaidAt != nil {
		str := s.PaidAt.Format(time.RFC3339)
		paidAtStr = &str
	}

	employeeUsername := ""
	createdByUsername := ""
	if s.EmployeeUsername != nil {
		employeeUsername = *s.EmployeeUsername
	}
	if s.CreatedByUsername != nil {
		createdByUsername = *s.CreatedByUsername
	}

	return SlipResponse{
		ID:                s.ID,
		UserID:            s.UserID,
		EmployeeUsername:  employeeUsername,
		Month:             s.Month,
		RaiQty:            s.RaiQty,
		RaiAmount:         s.RaiAmount,
		RepairDays:        s.RepairDays,
		RepairAmount:      s.RepairAmount,
		DailyAmount:       s.DailyAmount,
		GrossAmount:       s.GrossAmount,
		Deduction:         s.Deduction,
		NetAmount:         s.NetAmount,
		Details:           s.Details,
		Note:              s.Note,
		Status:            string(s.Status),
		PaidAt:            paidAtStr,
		SlipNo:            s.SlipNo,
		CreatedBy:         s.CreatedBy,
		CreatedByUsername: createdByUsername,
		CreatedAt:         s.CreatedAt.Format(time.RFC3339),
	}
}

func ToSlipResponses(slips []Slip) []SlipResponse {
	result := make([]SlipResponse, 0, len(slips))
	for _, s := range slips {
		result = append(result, ToSlipResponse(s))
	}
	return result
}
