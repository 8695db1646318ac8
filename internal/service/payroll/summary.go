package payroll

import (
	"github.com/banrai-ops/farm-backend-go/internal/domain/payroll"
	"github.com/banrai-ops/farm-backend-go/internal/domain/task"
	"github.com/shopspring/decimal"
)

// BuildSummary reduces an employee's work lines for one month into the
// component totals a slip is built from. Amounts accumulate at full
// decimal precision and are rounded to 2 places exactly once, at the
// end, so line-level rounding can never drift the total. Every matched
// line gets a detail entry, including lines that price to nothing; the
// breakdown is the audit record of what the month contained, not just
// of what was paid.
func BuildSummary(userID int64, month string, lines []payroll.WorkLine) payroll.Summary {
	var (
		raiQty       decimal.Decimal
		raiAmount    decimal.Decimal
		repairAmount decimal.Decimal
		dailyAmount  decimal.Decimal
		repairDays   int
	)
	details := make([]payroll.SlipDetail, 0, len(lines))

	for _, line := range lines {
		details = append(details, buildDetail(line))

		comp, ok := ResolveRate(line)
		if !ok {
			continue
		}

		switch comp.Kind {
		case ComponentDaily:
			dailyAmount = dailyAmount.Add(comp.Amount)
		case ComponentRai:
			raiQty = raiQty.Add(comp.RaiQty)
			raiAmount = raiAmount.Add(comp.Amount)
		case ComponentRepair:
			repairDays++
			repairAmount = repairAmount.Add(comp.Amount)
		}
	}

	gross := raiAmount.Add(repairAmount).Add(dailyAmount)

	return payroll.Summary{
		UserID:       userID,
		Month:        month,
		RaiQty:       raiQty.Round(2),
		RaiAmount:    raiAmount.Round(2),
		RepairDays:   repairDays,
		RepairAmount: repairAmount.Round(2),
		DailyAmount:  dailyAmount.Round(2),
		GrossAmount:  gross.Round(2),
		Details:      details,
	}
}

func buildDetail(line payroll.WorkLine) payroll.SlipDetail {
	date := line.StartDate.Format("2006-01-02")

	display := date + " " + line.Title
	if task.JobType(line.JobType) == task.JobTypeFieldArea && line.Area != nil {
		display += " " + line.Area.String() + " rai"
	}

	var endDate *string
	if line.EndDate != nil {
		s := line.EndDate.Format("2006-01-02")
		endDate = &s
	}

	return payroll.SlipDetail{
		Date:       date,
		EndDate:    endDate,
		TaskID:     line.TaskID,
		Title:      line.Title,
		JobType:    line.JobType,
		PayType:    string(line.PayType),
		Area:       line.Area,
		RatePerRai: line.RatePerRai,
		RepairRate: line.RepairRate,
		DailyRate:  line.DailyRate,
		Display:    display,
	}
}
