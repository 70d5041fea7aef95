package emergency

import (
	"strings"

	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

var (
	ErrNotFound    = httperr.ErrNotFound("emergency_not_found", "Emergency not found")
	ErrNoVet       = httperr.ErrBusiness("no_vet_in_location", "No vet in your location")
	ErrStaleStatus = httperr.ErrConflict("status_changed", "Emergency status changed, reload and retry")
)

// ===============================
// Domain Actions
// ===============================

// Transition moves the report to the requested status, leaving it untouched
// when the move is illegal. It returns the previous status.
func Transition(e *models.Emergency, to Status) (Status, error) {
	from := Status(e.Status)
	if err := CanTransition(from, to); err != nil {
		return from, err
	}
	e.Status = string(to)
	return from, nil
}

// ValidateAnimals checks the submitted snapshots.
func ValidateAnimals(animals []models.AnimalSnapshot) error {
	if len(animals) == 0 {
		return httperr.ErrValidation("animals_required", "At least one animal is required")
	}
	for i := range animals {
		animals[i].AnimalType = strings.TrimSpace(animals[i].AnimalType)
		animals[i].Breed = strings.TrimSpace(animals[i].Breed)

		a := animals[i]
		if a.AnimalType == "" || a.Breed == "" {
			return httperr.ErrValidation("invalid_animal", "Each animal needs animalType and breed")
		}
		if a.Age < 0 {
			return httperr.ErrValidation("invalid_animal", "Animal age cannot be negative")
		}
	}
	return nil
}
