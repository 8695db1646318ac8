package payroll

import (
	"testing"
	"time"

	"github.com/banrai-ops/farm-backend-go/internal/domain/payroll"
	"github.com/banrai-ops/farm-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func fieldLine(area, ratePerRai *decimal.Decimal, payType user.PayType) payroll.WorkLine {
	return payroll.WorkLine{
		TaskID:     1,
		Title:      "Plow north field",
		JobType:    "field_area",
		StartDate:  time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC),
		Area:       area,
		RatePerRai: ratePerRai,
		PayType:    payType,
	}
}

func repairLine(repairRate *decimal.Decimal, payType user.PayType) payroll.WorkLine {
	return payroll.WorkLine{
		TaskID:     2,
		Title:      "Fix harvester",
		JobType:    "repair",
		StartDate:  time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		RepairRate: repairRate,
		PayType:    payType,
	}
}

func TestResolveRate_FieldArea(t *testing.T) {
	comp, ok := ResolveRate(fieldLine(dec("5"), dec("60"), user.PayTypePerRai))
	require.True(t, ok)

	assert.Equal(t, ComponentRai, comp.Kind)
	assert.True(t, comp.Amount.Equal(decimal.RequireFromString("300")), "5 rai at 60 should be 300, got %s", comp.Amount)
	assert.True(t, comp.RaiQty.Equal(decimal.RequireFromString("5")))
}

func TestResolveRate_Repair(t *testing.T) {
	comp, ok := ResolveRate(repairLine(dec("70"), user.PayTypePerRai))
	require.True(t, ok)

	assert.Equal(t, ComponentRepair, comp.Kind)
	assert.True(t, comp.Amount.Equal(decimal.RequireFromString("70")))
}

func TestResolveRate_DailyOverridesJobType(t *testing.T) {
	// A daily-paid worker earns the daily rate once per task no matter
	// what kind of task it is.
	field := fieldLine(dec("5"), dec("60"), user.PayTypeDaily)
	field.DailyRate = dec("350")

	comp, ok := ResolveRate(field)
	require.True(t, ok)
	assert.Equal(t, ComponentDaily, comp.Kind)
	assert.True(t, comp.Amount.Equal(decimal.RequireFromString("350")))

	repair := repairLine(dec("70"), user.PayTypeDaily)
	repair.DailyRate = dec("350")

	comp, ok = ResolveRate(repair)
	require.True(t, ok)
	assert.Equal(t, ComponentDaily, comp.Kind)
	assert.True(t, comp.Amount.Equal(decimal.RequireFromString("350")))
}

func TestResolveRate_SkipsIncompleteLines(t *testing.T) {
	cases := map[string]payroll.WorkLine{
		"field area without area":   fieldLine(nil, dec("60"), user.PayTypePerRai),
		"field area without rate":   fieldLine(dec("5"), nil, user.PayTypePerRai),
		"repair without rate":       repairLine(nil, user.PayTypePerRai),
		"daily without daily rate":  repairLine(dec("70"), user.PayTypeDaily),
		"unknown job type": {
			JobType: "haul", PayType: user.PayTypePerRai,
			StartDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := ResolveRate(line)
			assert.False(t, ok)
		})
	}
}

func TestResolveRate_AssignmentRateWins(t *testing.T) {
	// Work lines carry the rate materialized at assignment time, so an
	// override of 70 is used even if the worker's default is different.
	comp, ok := ResolveRate(fieldLine(dec("2"), dec("70"), user.PayTypePerRai))
	require.True(t, ok)
	assert.True(t, comp.Amount.Equal(decimal.RequireFromString("140")))
}
