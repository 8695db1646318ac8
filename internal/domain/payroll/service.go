package payroll

import "context"

// PayrollService computes monthly summaries and manages slip lifecycle.
// Create reports whether a new slip was written; when a slip already
// exists for the employee and month the existing one comes back with
// created = false.
type PayrollService interface {
	Preview(ctx context.Context, req PreviewRequest) (Summary, error)
	Create(ctx context.Context, req CreateSlipRequest, createdBy int64) (slip Slip, created bool, err error)
	Get(ctx context.Context, id int64) (Slip, error)
	List(ctx context.Context, filter SlipFilter) ([]Slip, error)
	SetPaidStatus(ctx context.Context, id int64, paid bool) (Slip, error)
	Delete(ctx context.Context, id int64) error
}
