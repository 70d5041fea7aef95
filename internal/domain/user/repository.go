package user

import (
	"context"

	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

var (
	ErrNotFound = httperr.ErrNotFound("user_not_found", "User not found")
	ErrExists   = httperr.ErrConflict("user_exists", "User with this email or phone number already exists")
)

type Repository interface {
	// CreateUser returns ErrExists when email or phone is taken.
	CreateUser(ctx context.Context, u *models.User) error

	GetUser(ctx context.Context, id string) (*models.User, error)

	// FindByLoginID matches email, phone number or user name.
	FindByLoginID(ctx context.Context, loginID string) (*models.User, error)

	ExistsByEmailOrPhone(ctx context.Context, email, phone, exceptID string) (bool, error)

	UpdateUser(ctx context.Context, u *models.User) error

	DeleteUser(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]models.User, error)

	ListVeterinarians(ctx context.Context) ([]models.User, error)
}
