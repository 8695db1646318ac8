package user

import "context"

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (User, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

type EmployeeService interface {
	List(ctx context.Context, role *string) ([]User, error)
	GetPayConfig(ctx context.Context, userID int64) (PayConfig, error)
	UpdatePayConfig(ctx context.Context, req UpdatePayConfigRequest) (PayConfig, error)
}
