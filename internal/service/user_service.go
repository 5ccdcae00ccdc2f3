package service

import (
	"context"
	"fmt"

	"raceplanner/internal/models"
	"raceplanner/internal/repository"
)

type UserService interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, current *models.User, req models.UpdateUserRequest) error
	DeleteUser(ctx context.Context, current *models.User, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// UpdateUser applies the non-nil fields of req. Users may only update themselves.
func (s *userService) UpdateUser(ctx context.Context, current *models.User, req models.UpdateUserRequest) error {
	if current == nil || current.ID != req.ID {
		return ErrForbidden
	}

	fields := repository.Fields{}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if req.Password != nil {
		fields["password"] = *req.Password
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	return s.userRepo.UpdateUser(ctx, req.ID, fields)
}

func (s *userService) DeleteUser(ctx context.Context, current *models.User, userID string) error {
	if current == nil || current.ID != userID {
		return ErrForbidden
	}

	return s.userRepo.DeleteUser(ctx, userID)
}
