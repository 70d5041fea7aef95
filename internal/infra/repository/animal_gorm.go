package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/animal"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

type AnimalGormRepository struct {
	db *gorm.DB
}

func NewAnimalGormRepository(db *gorm.DB) *AnimalGormRepository {
	return &AnimalGormRepository{db: db}
}

func (r *AnimalGormRepository) CreateAnimal(
	ctx context.Context,
	a *models.Animal,
) error {

	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return domain.ErrExists
		}
		return err
	}
	return nil
}

func (r *AnimalGormRepository) GetAnimal(
	ctx context.Context,
	animalID string,
) (*models.Animal, error) {

	var a models.Animal
	if err := r.db.WithContext(ctx).
		Where("animal_id = ?", animalID).
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AnimalGormRepository) ListByOwner(
	ctx context.Context,
	ownerID string,
	limit int,
) ([]models.Animal, error) {

	q := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var animals []models.Animal
	if err := q.Find(&animals).Error; err != nil {
		return nil, err
	}
	return animals, nil
}

func (r *AnimalGormRepository) UpdateAnimal(
	ctx context.Context,
	a *models.Animal,
) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AnimalGormRepository) DeleteAnimal(
	ctx context.Context,
	animalID string,
) error {

	res := r.db.WithContext(ctx).
		Where("animal_id = ?", animalID).
		Delete(&models.Animal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.Repository = (*AnimalGormRepository)(nil)
