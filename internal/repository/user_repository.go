package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"raceplanner/internal/database"
	"raceplanner/internal/models"
)

var ErrInvalidPassword = errors.New("invalid password")

type userRepository struct {
	*TableRepository[models.User]
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{
		TableRepository: NewTableRepository[models.User](db, UsersTable),
		db:              db,
	}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}

	fields := Fields{
		"username": user.Username,
		"email":    user.Email,
		"password": hashed,
	}
	if user.FullName != nil {
		fields["full_name"] = *user.FullName
	}

	id, err := r.Create(ctx, fields)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = id
	user.Password = hashed
	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return r.getUser(ctx, userID, "id")
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUser(ctx, username, "username")
}

func (r *userRepository) getUser(ctx context.Context, value, key string) (*models.User, error) {
	user, err := r.FindBy(ctx, value, key)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user with %s %s: %w", key, value, database.ErrNotFound)
	}
	return user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	user, err := r.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

// UpdateUser writes the given profile fields. A password value is stored hashed.
func (r *userRepository) UpdateUser(ctx context.Context, userID string, fields Fields) error {
	payload := fields.Clone()
	if raw, ok := payload["password"]; ok {
		password, ok := raw.(string)
		if !ok || password == "" {
			return fmt.Errorf("%w: password must be a non-empty string", ErrInvalidValue)
		}
		hashed, err := hashPassword(password)
		if err != nil {
			return err
		}
		payload["password"] = hashed
	}

	if _, err := r.Update(ctx, userID, payload); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", database.MapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %s: %w", userID, database.ErrNotFound)
	}

	return nil
}
