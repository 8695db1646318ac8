package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/banrai-ops/farm-backend-go/internal/domain/user"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `
	id, username, email, password_hash, role, pay_type,
	default_rate_per_rai, default_repair_rate, default_daily_rate,
	created_at, updated_at
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.PayType,
		&u.DefaultRatePerRai, &u.DefaultRepairRate, &u.DefaultDailyRate,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, role, pay_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRow(ctx, query,
		u.Username, u.Email, u.PasswordHash, u.Role, u.PayType,
	))
	if err != nil {
		if IsUniqueViolation(err, "") && strings.Contains(err.Error(), "username") {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return u, nil
}

func (r *userRepository) List(ctx context.Context, role *string) ([]user.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1::text IS NULL OR role = $1::text)
		ORDER BY username ASC
	`

	rows, err := r.db.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.PayType,
			&u.DefaultRatePerRai, &u.DefaultRepairRate, &u.DefaultDailyRate,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *userRepository) GetPayConfig(ctx context.Context, userID int64) (user.PayConfig, error) {
	query := `
		SELECT id, username, pay_type,
			   default_rate_per_rai, default_repair_rate, default_daily_rate
		FROM users
		WHERE id = $1
	`

	var cfg user.PayConfig
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&cfg.UserID, &cfg.Username, &cfg.PayType,
		&cfg.DefaultRatePerRai, &cfg.DefaultRepairRate, &cfg.DefaultDailyRate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.PayConfig{}, user.ErrUserNotFound
		}
		return user.PayConfig{}, fmt.Errorf("failed to get pay config: %w", err)
	}

	return cfg, nil
}

func (r *userRepository) UpdatePayConfig(ctx context.Context, req user.UpdatePayConfigRequest) (user.PayConfig, error) {
	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.UserID}
	argIdx := 2

	if req.PayType != nil {
		setParts = append(setParts, fmt.Sprintf("pay_type = $%d", argIdx))
		args = append(args, *req.PayType)
		argIdx++
	}
	if req.DefaultRatePerRai != nil {
		setParts = append(setParts, fmt.Sprintf("default_rate_per_rai = $%d", argIdx))
		args = append(args, *req.DefaultRatePerRai)
		argIdx++
	}
	if req.DefaultRepairRate != nil {
		setParts = append(setParts, fmt.Sprintf("default_repair_rate = $%d", argIdx))
		args = append(args, *req.DefaultRepairRate)
		argIdx++
	}
	if req.DefaultDailyRate != nil {
		setParts = append(setParts, fmt.Sprintf("default_daily_rate = $%d", argIdx))
		args = append(args, *req.DefaultDailyRate)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $1
		RETURNING id, username, pay_type,
			default_rate_per_rai, default_repair_rate, default_daily_rate
	`, strings.Join(setParts, ", "))

	var cfg user.PayConfig
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&cfg.UserID, &cfg.Username, &cfg.PayType,
		&cfg.DefaultRatePerRai, &cfg.DefaultRepairRate, &cfg.DefaultDailyRate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.PayConfig{}, user.ErrUserNotFound
		}
		return user.PayConfig{}, fmt.Errorf("failed to update pay config: %w", err)
	}

	return cfg, nil
}
