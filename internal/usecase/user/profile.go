package user

import (
	"context"

	"github.com/R0UTS/Animal-Hospitalty/internal/audit"
	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

// ======================================================
// GET
// ======================================================

type GetUser struct {
	repo domain.Repository
}

func NewGetUser(repo domain.Repository) *GetUser {
	return &GetUser{repo: repo}
}

func (uc *GetUser) Execute(ctx context.Context, userID string) (*models.User, error) {
	return uc.repo.GetUser(ctx, userID)
}

// ======================================================
// UPDATE
// ======================================================

// UpdateProfile serves both self-service and admin edits; the role rules are
// the same for both.
type UpdateProfile struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateProfile(repo domain.Repository, audit *audit.Dispatcher) *UpdateProfile {
	return &UpdateProfile{repo: repo, audit: audit}
}

func (uc *UpdateProfile) Execute(
	ctx context.Context,
	actorID string,
	userID string,
	upd domain.ProfileUpdate,
) (*models.User, error) {

	u, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := domain.ApplyUpdate(u, upd); err != nil {
		return nil, err
	}

	if upd.Email != nil || upd.PhoneNumber != nil {
		taken, err := uc.repo.ExistsByEmailOrPhone(ctx, u.Email, u.PhoneNumber, u.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrExists
		}
	}

	if err := uc.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	if actorID != userID {
		uc.audit.Dispatch(audit.Event{
			ActorID:  actorID,
			Action:   "user_profile_updated",
			Entity:   "user",
			EntityID: u.ID,
		})
	}
	return u, nil
}
