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

func TestBuildSummary_MixedMonth(t *testing.T) {
	lines := []payroll.WorkLine{
		fieldLine(dec("5"), dec("60"), user.PayTypePerRai),
		fieldLine(dec("2.5"), dec("40"), user.PayTypePerRai),
		repairLine(dec("70"), user.PayTypePerRai),
	}

	s := BuildSummary(7, "2025-08", lines)

	assert.Equal(t, int64(7), s.UserID)
	assert.Equal(t, "2025-08", s.Month)
	assert.True(t, s.RaiQty.Equal(decimal.RequireFromString("7.5")))
	assert.True(t, s.RaiAmount.Equal(decimal.RequireFromString("400")), "300 + 100, got %s", s.RaiAmount)
	assert.Equal(t, 1, s.RepairDays)
	assert.True(t, s.RepairAmount.Equal(decimal.RequireFromString("70")))
	assert.True(t, s.DailyAmount.IsZero())
	assert.True(t, s.GrossAmount.Equal(decimal.RequireFromString("470")))
	assert.Len(t, s.Details, 3)
}

func TestBuildSummary_DailyWorker(t *testing.T) {
	field := fieldLine(dec("5"), dec("60"), user.PayTypeDaily)
	field.DailyRate = dec("350")
	repair := repairLine(dec("70"), user.PayTypeDaily)
	repair.DailyRate = dec("350")

	s := BuildSummary(3, "2025-08", []payroll.WorkLine{field, repair})

	assert.True(t, s.DailyAmount.Equal(decimal.RequireFromString("700")))
	assert.True(t, s.RaiAmount.IsZero())
	assert.True(t, s.RepairAmount.IsZero())
	assert.Equal(t, 0, s.RepairDays)
	assert.True(t, s.GrossAmount.Equal(decimal.RequireFromString("700")))
}

func TestBuildSummary_UnpricedLinesStayInDetails(t *testing.T) {
	noArea := fieldLine(nil, dec("60"), user.PayTypePerRai) // no area recorded yet
	noArea.TaskID = 2
	lines := []payroll.WorkLine{
		fieldLine(dec("5"), dec("60"), user.PayTypePerRai),
		noArea,
	}

	s := BuildSummary(1, "2025-08", lines)

	// The unpriceable line contributes nothing to the totals but still
	// shows up in the breakdown.
	assert.True(t, s.GrossAmount.Equal(decimal.RequireFromString("300")))
	assert.True(t, s.RaiQty.Equal(decimal.RequireFromString("5")))
	require.Len(t, s.Details, 2)
	assert.Equal(t, int64(1), s.Details[0].TaskID)
	assert.Equal(t, int64(2), s.Details[1].TaskID)
	assert.Nil(t, s.Details[1].Area)
}

func TestBuildSummary_RoundsOnceAtTheEnd(t *testing.T) {
	// Three lines of 0.333 each. Per-line rounding would give 0.99; a
	// single rounding pass over the exact sum 0.999 gives 1.00.
	lines := []payroll.WorkLine{
		fieldLine(dec("0.333"), dec("1"), user.PayTypePerRai),
		fieldLine(dec("0.333"), dec("1"), user.PayTypePerRai),
		fieldLine(dec("0.333"), dec("1"), user.PayTypePerRai),
	}

	s := BuildSummary(1, "2025-08", lines)

	assert.True(t, s.RaiAmount.Equal(decimal.RequireFromString("1.00")), "got %s", s.RaiAmount)
	assert.True(t, s.GrossAmount.Equal(decimal.RequireFromString("1.00")))
}

func TestBuildSummary_DetailDisplay(t *testing.T) {
	field := fieldLine(dec("5"), dec("60"), user.PayTypePerRai)
	end := time.Date(2025, 8, 6, 0, 0, 0, 0, time.UTC)
	field.EndDate = &end

	s := BuildSummary(1, "2025-08", []payroll.WorkLine{field, repairLine(dec("70"), user.PayTypePerRai)})
	require.Len(t, s.Details, 2)

	assert.Equal(t, "2025-08-04 Plow north field 5 rai", s.Details[0].Display)
	require.NotNil(t, s.Details[0].EndDate)
	assert.Equal(t, "2025-08-06", *s.Details[0].EndDate)

	// Repair lines carry no area suffix.
	assert.Equal(t, "2025-08-10 Fix harvester", s.Details[1].Display)
	assert.Nil(t, s.Details[1].EndDate)
}

func TestBuildSummary_EmptyMonth(t *testing.T) {
	s := BuildSummary(1, "2025-08", nil)

	assert.True(t, s.GrossAmount.IsZero())
	assert.Empty(t, s.Details)
}
