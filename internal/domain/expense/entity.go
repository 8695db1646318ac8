package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type enum
type Type string

const (
	TypeLabor     Type = "labor"
	TypeMaterial  Type = "material"
	TypeFuel      Type = "fuel"
	TypeTransport Type = "transport"
)

// Expense is one cash-flow ledger entry. Rows with a non-nil PayrollSlipID
// are system-managed: they exist exactly while the linked slip is Paid and
// the payroll_slip_id column carries a uniqueness constraint.
type Expense struct {
	ID            int64
	Title         string
	Type          Type
	Amount        decimal.Decimal
	JobNote       *string
	QtyNote       *string
	WorkDate      time.Time
	PayrollSlipID *int64
	CreatedBy     int64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	CreatedByUsername *string
}
