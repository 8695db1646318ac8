package task

import (
	"time"

	"github.com/banrai-ops/farm-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// JobType enum
type JobType string

const (
	JobTypeFieldArea JobType = "field_area"
	JobTypeRepair    JobType = "repair"
)

// Status enum
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// Task is a unit of work (a field job or a repair job). end_date is nil
// while the job is still open.
type Task struct {
	ID          int64
	Title       string
	JobType     JobType
	StartDate   time.Time
	EndDate     *time.Time
	Area        *decimal.Decimal
	Trucks      *int
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	Note        *string
	Status      Status
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined
	Assignees []Assignee
}

// Assignee links a user to a task and carries the rates that were in force
// when the assignment was made. When UseDefault is true the user's defaults
// were copied in; otherwise the values are explicit overrides.
type Assignee struct {
	UserID     int64
	Username   string
	PayType    user.PayType
	UseDefault bool
	RatePerRai *decimal.Decimal
	RepairRate *decimal.Decimal
	DailyRate  *decimal.Decimal
}

// PaymentEntry is an append-only manual partial payment against a task.
type PaymentEntry struct {
	ID        int64
	TaskID    int64
	Amount    int64
	Note      *string
	CreatedAt time.Time
}
