package user

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role enum
type Role string

const (
	RoleAdmin Role = "admin"
	RoleBoss  Role = "boss"
	RoleUser  Role = "user"
)

// PayType determines how an employee's work is priced.
type PayType string

const (
	PayTypeDaily  PayType = "daily"
	PayTypePerRai PayType = "per_rai"
	PayTypeOther  PayType = "other"
)

type User struct {
	ID           int64
	Username     string
	Email        *string
	PasswordHash string
	Role         Role

	// Pay configuration; defaults are copied into task assignments
	// when an assignee is attached with use_default = true.
	PayType           PayType
	DefaultRatePerRai *decimal.Decimal
	DefaultRepairRate *decimal.Decimal
	DefaultDailyRate  *decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PayConfig is the read-only slice of a user the payroll engine needs.
type PayConfig struct {
	UserID            int64
	Username          string
	PayType           PayType
	DefaultRatePerRai *decimal.Decimal
	DefaultRepairRate *decimal.Decimal
	DefaultDailyRate  *decimal.Decimal
}
