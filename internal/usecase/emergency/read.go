package emergency

import (
	"context"

	"github.com/R0UTS/Animal-Hospitalty/internal/auth"
	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/emergency"
	userdomain "github.com/R0UTS/Animal-Hospitalty/internal/domain/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

var ErrNotAllowed = httperr.ErrForbidden("not_allowed", "You cannot access this emergency")

// Reader serves the per-caller views of reports.
type Reader struct {
	repo  domain.Repository
	users userdomain.Repository
}

func NewReader(repo domain.Repository, users userdomain.Repository) *Reader {
	return &Reader{repo: repo, users: users}
}

// authorize lets through admins, the author and vets matched by location.
func authorize(
	ctx context.Context,
	users userdomain.Repository,
	caller auth.Identity,
	e *models.Emergency,
	allowAuthor bool,
) error {

	switch userdomain.Role(caller.Role) {
	case userdomain.RoleAdmin:
		return nil
	case userdomain.RoleFarmer:
		if allowAuthor && e.UserID == caller.UserID {
			return nil
		}
	case userdomain.RoleVeterinarian:
		vet, err := users.GetUser(ctx, caller.UserID)
		if err != nil {
			return err
		}
		if domain.IsMatchedVet(vet, e) {
			return nil
		}
	}
	return ErrNotAllowed
}

func (uc *Reader) Get(
	ctx context.Context,
	caller auth.Identity,
	emergencyID string,
) (*models.Emergency, error) {

	e, err := uc.repo.GetEmergency(ctx, emergencyID)
	if err != nil {
		return nil, err
	}
	if err := authorize(ctx, uc.users, caller, e, true); err != nil {
		return nil, err
	}
	return e, nil
}

// ListMine returns the caller's own reports, newest first.
func (uc *Reader) ListMine(
	ctx context.Context,
	caller auth.Identity,
	limit int,
) ([]models.Emergency, error) {
	return uc.repo.ListByAuthor(ctx, caller.UserID, clampLimit(limit, DefaultAuthorLimit))
}

// ListForVet returns the reports whose farmer location matches the vet's
// work location, recomputed on every call.
func (uc *Reader) ListForVet(
	ctx context.Context,
	caller auth.Identity,
	limit int,
) ([]models.Emergency, error) {

	vet, err := uc.users.GetUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if userdomain.Role(vet.Role) != userdomain.RoleVeterinarian {
		return nil, httperr.ErrForbidden("not_a_veterinarian", "Access denied: Not a veterinarian")
	}

	locations, err := uc.repo.DistinctFarmerLocations(ctx)
	if err != nil {
		return nil, err
	}

	visible := domain.VisibleLocations(vet.VetLocation, locations)
	return uc.repo.ListByFarmerLocations(ctx, visible, clampLimit(limit, DefaultVetLimit))
}
