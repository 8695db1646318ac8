package user

import "context"

// UserRepository defines data access methods for users and their pay configuration.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context, role *string) ([]User, error)

	GetPayConfig(ctx context.Context, userID int64) (PayConfig, error)
	UpdatePayConfig(ctx context.Context, req UpdatePayConfigRequest) (PayConfig, error)
}
