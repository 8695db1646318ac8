package payroll

import "errors"

var (
	ErrSlipNotFound = errors.New("payroll slip not found")
	ErrSlipExists   = errors.New("payroll slip already exists for this employee and month")
	ErrInvalidMonth = errors.New("invalid month token, expected YYYY-MM")
)
