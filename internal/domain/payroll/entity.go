package payroll

import (
	"time"

	"github.com/banrai-ops/farm-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// SlipStatus enum
type SlipStatus string

const (
	SlipStatusUnpaid SlipStatus = "Unpaid"
	SlipStatusPaid   SlipStatus = "Paid"
)

// WorkLine is one task joined with the assignment row linking it to the
// employee being paid. Rate fields come from task_assignees (defaults were
// materialized there at assignment time), pay type from the user row.
type WorkLine struct {
	TaskID     int64
	Title      string
	JobType    string
	StartDate  time.Time
	EndDate    *time.Time
	Area       *decimal.Decimal
	RatePerRai *decimal.Decimal
	RepairRate *decimal.Decimal
	DailyRate  *decimal.Decimal
	PayType    user.PayType
}

// SlipDetail is one line of the immutable breakdown snapshot stored on a
// slip. JSON tags double as the jsonb storage format.
type SlipDetail struct {
	Date       string           `json:"date"`
	EndDate    *string          `json:"end_date,omitempty"`
	TaskID     int64            `json:"task_id"`
	Title      string           `json:"title"`
	JobType    string           `json:"job_type"`
	PayType    string           `json:"worker_pay_type"`
	Area       *decimal.Decimal `json:"area,omitempty"`
	RatePerRai *decimal.Decimal `json:"rate_per_rai,omitempty"`
	RepairRate *decimal.Decimal `json:"repair_rate,omitempty"`
	DailyRate  *decimal.Decimal `json:"daily_rate,omitempty"`
	Display    string           `json:"display"`
}

// Summary is the result of aggregating one employee's work for one month.
type Summary struct {
	UserID       int64
	Month        string
	RaiQty       decimal.Decimal
	RaiAmount    decimal.Decimal
	RepairDays   int
	RepairAmount decimal.Decimal
	DailyAmount  decimal.Decimal
	GrossAmount  decimal.Decimal
	Details      []SlipDetail
}

// Slip is a persisted monthly payroll slip. The monetary breakdown is a
// snapshot taken at creation time and never recomputed; only the paid
// status may change afterwards.
type Slip struct {
	ID           int64
	UserID       int64
	Month        string
	RaiQty       decimal.Decimal
	RaiAmount    decimal.Decimal
	RepairDays   int
	RepairAmount decimal.Decimal
	DailyAmount  decimal.Decimal
	GrossAmount  decimal.Decimal
	Deduction    decimal.Decimal
	NetAmount    decimal.Decimal
	Details      []SlipDetail
	Note         *string
	Status       SlipStatus
	PaidAt       *time.Time
	SlipNo       *string
	CreatedBy    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeUsername  *string
	CreatedByUsername *string
}
