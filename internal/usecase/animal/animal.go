package animal

import (
	"context"
	"strings"
	"time"

	"github.com/R0UTS/Animal-Hospitalty/internal/auth"
	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/animal"
	userdomain "github.com/R0UTS/Animal-Hospitalty/internal/domain/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

const maxListLimit = 100

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	AnimalID  string
	Species   string
	NickName  string
	Breed     string
	ApproxDOB *time.Time
}

// UpdateInput leaves nil fields untouched. DOBSet with a nil ApproxDOB
// clears the date of birth.
type UpdateInput struct {
	Species   *string
	NickName  *string
	Breed     *string
	DOBSet    bool
	ApproxDOB *time.Time
}

// ======================================================
// USE CASE
// ======================================================

// Registry groups the animal operations; they share the same
// dependencies and ownership rules.
type Registry struct {
	repo  domain.Repository
	users userdomain.Repository
	now   func() time.Time
}

func NewRegistry(
	repo domain.Repository,
	users userdomain.Repository,
	now func() time.Time,
) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{repo: repo, users: users, now: now}
}

// canRead: the owner and admins.
func canRead(caller auth.Identity, a *models.Animal) error {
	if caller.Is(string(userdomain.RoleAdmin)) {
		return nil
	}
	return domain.CheckOwner(a, caller.UserID)
}

func (uc *Registry) Create(
	ctx context.Context,
	caller auth.Identity,
	in CreateInput,
) (*models.Animal, error) {

	owner, err := uc.users.GetUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if userdomain.Role(owner.Role) != userdomain.RoleFarmer {
		return nil, httperr.ErrForbidden("not_a_farmer", "Only farmers can register animals")
	}

	a := &models.Animal{
		AnimalID: strings.TrimSpace(in.AnimalID),
		Species:  in.Species,
		NickName: in.NickName,
		Breed:    in.Breed,
		OwnerID:  owner.ID,
	}
	if err := domain.Validate(a); err != nil {
		return nil, err
	}
	domain.SetDOB(a, in.ApproxDOB, uc.now())

	if err := uc.repo.CreateAnimal(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *Registry) Get(
	ctx context.Context,
	caller auth.Identity,
	animalID string,
) (*models.Animal, error) {

	a, err := uc.repo.GetAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}
	if err := canRead(caller, a); err != nil {
		return nil, err
	}
	domain.Refresh(a, uc.now())
	return a, nil
}

func (uc *Registry) ListByOwner(
	ctx context.Context,
	caller auth.Identity,
	ownerID string,
	limit int,
) ([]models.Animal, error) {

	if caller.UserID != ownerID && !caller.Is(string(userdomain.RoleAdmin)) {
		return nil, domain.ErrNotOwner
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	animals, err := uc.repo.ListByOwner(ctx, ownerID, limit)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	for i := range animals {
		domain.Refresh(&animals[i], now)
	}
	return animals, nil
}

func (uc *Registry) Update(
	ctx context.Context,
	caller auth.Identity,
	animalID string,
	in UpdateInput,
) (*models.Animal, error) {

	a, err := uc.repo.GetAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckOwner(a, caller.UserID); err != nil {
		return nil, err
	}

	if in.Species != nil {
		a.Species = *in.Species
	}
	if in.NickName != nil {
		a.NickName = *in.NickName
	}
	if in.Breed != nil {
		a.Breed = *in.Breed
	}
	if err := domain.Validate(a); err != nil {
		return nil, err
	}

	if in.DOBSet {
		domain.SetDOB(a, in.ApproxDOB, uc.now())
	} else {
		domain.Refresh(a, uc.now())
	}

	if err := uc.repo.UpdateAnimal(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *Registry) Delete(
	ctx context.Context,
	caller auth.Identity,
	animalID string,
) error {

	a, err := uc.repo.GetAnimal(ctx, animalID)
	if err != nil {
		return err
	}
	if err := domain.CheckOwner(a, caller.UserID); err != nil {
		return err
	}
	return uc.repo.DeleteAnimal(ctx, animalID)
}
