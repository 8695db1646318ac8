package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/banrai-ops/farm-backend-go/internal/domain/user"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) user.AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *AuthServiceImpl) Register(ctx context.Context, req user.RegisterRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.userRepo.Create(ctx, user.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         user.RoleUser,
		PayType:      user.PayTypePerRai,
	})
	if err != nil {
		return user.User{}, err
	}

	return created, nil
}

func (a *AuthServiceImpl) Login(ctx context.Context, req user.LoginRequest) (user.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return user.TokenResponse{}, err
	}

	userData, err := a.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.TokenResponse{}, user.ErrInvalidCredentials
		}
		return user.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return user.TokenResponse{}, user.ErrInvalidCredentials
	}

	return a.issueTokens(userData)
}

func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (user.TokenResponse, error) {
	userID, err := a.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return user.TokenResponse{}, user.ErrInvalidToken
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.TokenResponse{}, user.ErrInvalidToken
		}
		return user.TokenResponse{}, err
	}

	// Rotate: the presented refresh token is single-use.
	a.jwtService.RevokeToken(refreshToken)

	return a.issueTokens(userData)
}

func (a *AuthServiceImpl) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken != "" {
		a.jwtService.RevokeToken(accessToken)
	}
	if refreshToken != "" {
		a.jwtService.RevokeToken(refreshToken)
	}
	return nil
}

func (a *AuthServiceImpl) issueTokens(userData user.User) (user.TokenResponse, error) {
	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(userData.ID, userData.Username, userData.Role)
	if err != nil {
		return user.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, _, err := a.jwtService.GenerateRefreshToken(userData.ID)
	if err != nil {
		return user.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return user.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    expiresAt,
	}, nil
}
