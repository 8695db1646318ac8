package task

import (
	"time"

	"github.com/banrai-ops/farm-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// AssigneeConfig attaches one worker to a task. When UseDefault is nil or
// true the worker's default rates are copied in; otherwise the explicit
// values are stored as overrides.
type AssigneeConfig struct {
	UserID     int64            `json:"user_id"`
	UseDefault *bool            `json:"use_default,omitempty"`
	RatePerRai *decimal.Decimal `json:"rate_per_rai,omitempty"`
	RepairRate *decimal.Decimal `json:"repair_rate,omitempty"`
	DailyRate  *decimal.Decimal `json:"daily_rate,omitempty"`
}

type CreateTaskRequest struct {
	Title       string           `json:"title"`
	JobType     string           `json:"job_type"`
	StartDate   string           `json:"start_date"`
	EndDate     *string          `json:"end_date,omitempty"`
	Area        *decimal.Decimal `json:"area,omitempty"`
	Trucks      *int             `json:"trucks,omitempty"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	PaidAmount  decimal.Decimal  `json:"paid_amount"`
	Note        *string          `json:"note,omitempty"`
	Status      *string          `json:"status,omitempty"`
	Assignees   []AssigneeConfig `json:"assignees,omitempty"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "is required"})
	}
	if r.JobType != string(JobTypeFieldArea) && r.JobType != string(JobTypeRepair) {
		errs = append(errs, validator.ValidationError{Field: "job_type", Message: "must be 'field_area' or 'repair'"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{
		string(StatusPending), string(StatusInProgress), string(StatusDone),
	}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of Pending, InProgress, Done"})
	}
	if r.TotalAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "total_amount", Message: "must be non-negative"})
	}
	if r.PaidAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "paid_amount", Message: "must be non-negative"})
	}
	for _, a := range r.Assignees {
		if a.UserID <= 0 {
			errs = append(errs, validator.ValidationError{Field: "assignees", Message: "user_id must be positive"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTaskRequest struct {
	ID          int64             `json:"-"`
	Title       *string           `json:"title,omitempty"`
	JobType     *string           `json:"job_type,omitempty"`
	StartDate   *string           `json:"start_date,omitempty"`
	EndDate     *string           `json:"end_date,omitempty"`
	Area        *decimal.Decimal  `json:"area,omitempty"`
	Trucks      *int              `json:"trucks,omitempty"`
	TotalAmount *decimal.Decimal  `json:"total_amount,omitempty"`
	PaidAmount  *decimal.Decimal  `json:"paid_amount,omitempty"`
	Note        *string           `json:"note,omitempty"`
	Status      *string           `json:"status,omitempty"`
	Assignees   *[]AssigneeConfig `json:"assignees,omitempty"`
}

func (r *UpdateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "must not be empty"})
	}
	if r.JobType != nil && *r.JobType != string(JobTypeFieldArea) && *r.JobType != string(JobTypeRepair) {
		errs = append(errs, validator.ValidationError{Field: "job_type", Message: "must be 'field_area' or 'repair'"})
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{
		string(StatusPending), string(StatusInProgress), string(StatusDone),
	}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of Pending, InProgress, Done"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TaskFilter narrows task listings. An empty Statuses slice means no
// status filtering (the original UI sends "All" for that case).
type TaskFilter struct {
	From          *string
	To            *string
	Statuses      []string
	TitlePatterns []string
}

type CreatePaymentRequest struct {
	TaskID int64   `json:"-"`
	Amount int64   `json:"amount"`
	Note   *string `json:"note,omitempty"`
}

func (r *CreatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Amount <= 0 {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be a positive integer"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssigneeResponse struct {
	UserID     int64            `json:"user_id"`
	Username   string           `json:"username"`
	PayType    string           `json:"pay_type"`
	UseDefault bool             `json:"use_default"`
	RatePerRai *decimal.Decimal `json:"rate_per_rai,omitempty"`
	RepairRate *decimal.Decimal `json:"repair_rate,omitempty"`
	DailyRate  *decimal.Decimal `json:"daily_rate,omitempty"`
}

type TaskResponse struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	JobType     string             `json:"job_type"`
	StartDate   string             `json:"start_date"`
	EndDate     *string            `json:"end_date,omitempty"`
	Area        *decimal.Decimal   `json:"area,omitempty"`
	Trucks      *int               `json:"trucks,omitempty"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	PaidAmount  decimal.Decimal    `json:"paid_amount"`
	Note        *string            `json:"note,omitempty"`
	Status      string             `json:"status"`
	CreatedBy   int64              `json:"created_by"`
	CreatedAt   string             `json:"created_at"`
	Assignees   []AssigneeResponse `json:"assignees"`
}

type PaymentResponse struct {
	ID        int64   `json:"id"`
	TaskID    int64   `json:"task_id"`
	Amount    int64   `json:"amount"`
	Note      *string `json:"note,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func ToTaskResponse(t Task) TaskResponse {
	var endDate *string
	if t.EndDate != nil {
		s := t.EndDate.Format("2006-01-02")
		endDate = &s
	}

	assignees := make([]AssigneeResponse, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		assignees = append(assignees, AssigneeResponse{
			UserID:     a.UserID,
			Username:   a.Username,
			PayType:    string(a.PayType),
			UseDefault: a.UseDefault,
			RatePerRai: a.RatePerRai,
			RepairRate: a.RepairRate,
			DailyRate:  a.DailyRate,
		})
	}

	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		JobType:     string(t.JobType),
		StartDate:   t.StartDate.Format("2006-01-02"),
		EndDate:     endDate,
		Area:        t.Area,
		Trucks:      t.Trucks,
		TotalAmount: t.TotalAmount,
		PaidAmount:  t.PaidAmount,
		Note:        t.Note,
		Status:      string(t.Status),
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		Assignees:   assignees,
	}
}

func ToTaskResponses(tasks []Task) []TaskResponse {
	result := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, ToTaskResponse(t))
	}
	return result
}

func ToPaymentResponse(p PaymentEntry) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		TaskID:    p.TaskID,
		Amount:    p.Amount,
		Note:      p.Note,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

func ToPaymentResponses(payments []PaymentEntry) []PaymentResponse {
	result := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		result = append(result, ToPaymentResponse(p))
	}
	return result
}
