package user

import (
	"time"

	"github.com/banrai-ops/farm-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Username) < 3 {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "must be at least 3 characters"})
	}
	if len(r.Password) < 6 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 6 characters"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "is required"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresAt    int64  `json:"expires_at"`
}

type UserResponse struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     *string `json:"email,omitempty"`
	Role      string  `json:"role"`
	CreatedAt string  `json:"created_at"`
}

type PayConfigResponse struct {
	UserID            int64            `json:"user_id"`
	Username          string           `json:"username"`
	PayType           string           `json:"pay_type"`
	DefaultRatePerRai *decimal.Decimal `json:"default_rate_per_rai,omitempty"`
	DefaultRepairRate *decimal.Decimal `json:"default_repair_rate,omitempty"`
	DefaultDailyRate  *decimal.Decimal `json:"default_daily_rate,omitempty"`
}

type UpdatePayConfigRequest struct {
	UserID            int64            `json:"-"`
	PayType           *string          `json:"pay_type,omitempty"`
	DefaultRatePerRai *decimal.Decimal `json:"default_rate_per_rai,omitempty"`
	DefaultRepairRate *decimal.Decimal `json:"default_repair_rate,omitempty"`
	DefaultDailyRate  *decimal.Decimal `json:"default_daily_rate,omitempty"`
}

func ToUserResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func ToUserResponses(users []User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, ToUserResponse(u))
	}
	return result
}

func ToPayConfigResponse(cfg PayConfig) PayConfigResponse {
	return PayConfigResponse{
		UserID:            cfg.UserID,
		Username:          cfg.Username,
		PayType:           string(cfg.PayType),
		DefaultRatePerRai: cfg.DefaultRatePerRai,
		DefaultRepairRate: cfg.DefaultRepairRate,
		DefaultDailyRate:  cfg.DefaultDailyRate,
	}
}

func (r *UpdatePayConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PayType != nil && !validator.IsInSlice(*r.PayType, []string{
		string(PayTypeDaily), string(PayTypePerRai), string(PayTypeOther),
	}) {
		errs = append(errs, validator.ValidationError{Field: "pay_type", Message: "must be 'daily', 'per_rai' or 'other'"})
	}
	if r.DefaultRatePerRai != nil && r.DefaultRatePerRai.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "default_rate_per_rai", Message: "must be non-negative"})
	}
	if r.DefaultRepairRate != nil && r.DefaultRepairRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "default_repair_rate", Message: "must be non-negative"})
	}
	if r.DefaultDailyRate != nil && r.DefaultDailyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "default_daily_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
