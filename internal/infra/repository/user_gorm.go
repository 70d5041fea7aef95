package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) CreateUser(
	ctx context.Context,
	u *models.User,
) error {

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return domain.ErrExists
		}
		return err
	}
	return nil
}

func (r *UserGormRepository) GetUser(
	ctx context.Context,
	id string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByLoginID prefers the oldest account when a user name is shared.
func (r *UserGormRepository) FindByLoginID(
	ctx context.Context,
	loginID string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ? OR phone_number = ? OR user_name = ?",
			strings.ToLower(loginID), loginID, loginID).
		Order("created_at ASC").
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) ExistsByEmailOrPhone(
	ctx context.Context,
	email string,
	phone string,
	exceptID string,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("(email = ? OR phone_number = ?)", email, phone)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserGormRepository) UpdateUser(
	ctx context.Context,
	u *models.User,
) error {

	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return domain.ErrExists
		}
		return err
	}
	return nil
}

// DeleteUser removes the account; animals go with it through the foreign
// key, reports stay.
func (r *UserGormRepository) DeleteUser(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserGormRepository) ListUsers(
	ctx context.Context,
) ([]models.User, error) {

	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserGormRepository) ListVeterinarians(
	ctx context.Context,
) ([]models.User, error) {

	var vets []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ?", string(domain.RoleVeterinarian)).
		Order("created_at ASC").
		Find(&vets).Error; err != nil {
		return nil, err
	}
	return vets, nil
}

var _ domain.Repository = (*UserGormRepository)(nil)
