package animal

import (
	"context"

	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

type Repository interface {
	// CreateAnimal returns ErrExists when the animalId is taken.
	CreateAnimal(ctx context.Context, a *models.Animal) error

	GetAnimal(ctx context.Context, animalID string) (*models.Animal, error)

	// ListByOwner is newest first; limit <= 0 means no limit.
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]models.Animal, error)

	UpdateAnimal(ctx context.Context, a *models.Animal) error

	DeleteAnimal(ctx context.Context, animalID string) error
}
