package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidMonth(t *testing.T) {
	valid := []string{"2025-01", "2025-08", "1999-12"}
	for _, m := range valid {
		assert.True(t, IsValidMonth(m), m)
	}

	invalid := []string{"", "2025", "2025-13", "2025-00", "2025-1", "202508", "2025-08-01", "08-2025"}
	for _, m := range invalid {
		assert.False(t, IsValidMonth(m), m)
	}
}

func TestMonthBounds(t *testing.T) {
	start, end, ok := MonthBounds("2025-08")
	require.True(t, ok)

	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthBounds_YearRollover(t *testing.T) {
	start, end, ok := MonthBounds("2025-12")
	require.True(t, ok)

	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthBounds_Invalid(t *testing.T) {
	_, _, ok := MonthBounds("2025-13")
	assert.False(t, ok)
}

func TestIsValidDate(t *testing.T) {
	d, ok := IsValidDate("2025-08-04")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC), d)

	_, ok = IsValidDate("04/08/2025")
	assert.False(t, ok)
	_, ok = IsValidDate("2025-02-30")
	assert.False(t, ok)
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "must be YYYY-MM"},
		{Field: "user_id", Message: "must be a positive integer"},
	}

	assert.Equal(t, "month: must be YYYY-MM; user_id: must be a positive integer", errs.Error())
	assert.Equal(t, map[string]string{
		"month":   "must be YYYY-MM",
		"user_id": "must be a positive integer",
	}, errs.ToMap())
}
