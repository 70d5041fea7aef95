package animal

import (
	"strings"
	"time"

	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

var (
	ErrNotFound = httperr.ErrNotFound("animal_not_found", "Animal not found")
	ErrExists   = httperr.ErrConflict("animal_exists", "Animal with this animalId already exists")
	ErrNotOwner = httperr.ErrForbidden("not_owner", "Animal belongs to another farmer")
)

// SetDOB stores the date of birth and recomputes the age in the same step.
func SetDOB(a *models.Animal, dob *time.Time, now time.Time) {
	a.ApproxDOB = dob
	if dob == nil {
		a.AgeMonths = nil
		return
	}
	age := AgeInMonths(*dob, now)
	a.AgeMonths = &age
}

// Refresh recomputes the stored age for reads, so the value never lags the
// calendar.
func Refresh(a *models.Animal, now time.Time) {
	SetDOB(a, a.ApproxDOB, now)
}

func Validate(a *models.Animal) error {
	a.Species = strings.TrimSpace(a.Species)
	a.NickName = strings.TrimSpace(a.NickName)
	a.Breed = strings.TrimSpace(a.Breed)

	if a.Species == "" {
		return httperr.ErrValidation("species_required", "Species is required")
	}
	return nil
}

func CheckOwner(a *models.Animal, userID string) error {
	if a.OwnerID != userID {
		return ErrNotOwner
	}
	return nil
}
