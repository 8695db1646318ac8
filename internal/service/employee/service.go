package employee

import (
	"context"

	"github.com/banrai-ops/farm-backend-go/internal/domain/user"
)

type EmployeeServiceImpl struct {
	userRepo user.UserRepository
}

func NewEmployeeService(userRepo user.UserRepository) user.EmployeeService {
	return &EmployeeServiceImpl{userRepo: userRepo}
}

func (s *EmployeeServiceImpl) List(ctx context.Context, role *string) ([]user.User, error) {
	return s.userRepo.List(ctx, role)
}

func (s *EmployeeServiceImpl) GetPayConfig(ctx context.Context, userID int64) (user.PayConfig, error) {
	return s.userRepo.GetPayConfig(ctx, userID)
}

func (s *EmployeeServiceImpl) UpdatePayConfig(ctx context.Context, req user.UpdatePayConfigRequest) (user.PayConfig, error) {
	if err := req.Validate(); err != nil {
		return user.PayConfig{}, err
	}
	return s.userRepo.UpdatePayConfig(ctx, req)
}
