package payroll

import (
	"github.com/banrai-ops/farm-backend-go/internal/domain/payroll"
	"github.com/banrai-ops/farm-backend-go/internal/domain/task"
	"github.com/banrai-ops/farm-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

type ComponentKind int

const (
	ComponentDaily ComponentKind = iota
	ComponentRai
	ComponentRepair
)

// Component is one work line's contribution to a monthly summary.
type Component struct {
	Kind   ComponentKind
	Amount decimal.Decimal

	// RaiQty is set for ComponentRai only.
	RaiQty decimal.Decimal
}

// ResolveRate prices a single work line. Daily-paid workers earn their
// daily rate once per task regardless of job type; everyone else is
// priced by the task's job type. Lines missing a required rate or area
// contribute nothing and are skipped without error, so an employee with
// incomplete pay configuration yields a smaller total rather than a
// failed payroll run.
func ResolveRate(line payroll.WorkLine) (Component, bool) {
	if line.PayType == user.PayTypeDaily {
		if line.DailyRate == nil {
			return Component{}, false
		}
		return Component{Kind: ComponentDaily, Amount: *line.DailyRate}, true
	}

	switch task.JobType(line.JobType) {
	case task.JobTypeFieldArea:
		if line.Area == nil || line.RatePerRai == nil {
			return Component{}, false
		}
		return Component{
			Kind:   ComponentRai,
			Amount: line.Area.Mul(*line.RatePerRai),
			RaiQty: *line.Area,
		}, true
	case task.JobTypeRepair:
		if line.RepairRate == nil {
			return Component{}, false
		}
		// One repair task counts as one repair unit.
		return Component{Kind: ComponentRepair, Amount: *line.RepairRate}, true
	}

	return Component{}, false
}
