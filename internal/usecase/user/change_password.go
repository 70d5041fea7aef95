package user

import (
	"context"
	"strings"

	"github.com/R0UTS/Animal-Hospitalty/internal/audit"
	"github.com/R0UTS/Animal-Hospitalty/internal/auth"
	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
)

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

type ChangePassword struct {
	repo   domain.Repository
	hasher *auth.PasswordHasher
	audit  *audit.Dispatcher
}

func NewChangePassword(
	repo domain.Repository,
	hasher *auth.PasswordHasher,
	audit *audit.Dispatcher,
) *ChangePassword {
	return &ChangePassword{repo: repo, hasher: hasher, audit: audit}
}

func (uc *ChangePassword) Execute(
	ctx context.Context,
	userID string,
	in ChangePasswordInput,
) error {

	current := strings.TrimSpace(in.CurrentPassword)
	next := strings.TrimSpace(in.NewPassword)
	if current == "" || next == "" {
		return httperr.ErrValidation("missing_fields", "Current and new password are required")
	}

	u, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if !uc.hasher.Compare(u.PasswordHash, current) {
		return httperr.ErrValidation("invalid_current_password", "Current password is incorrect")
	}
	if err := domain.ValidatePassword(next); err != nil {
		return err
	}

	hash, err := uc.hasher.Hash(next)
	if err != nil {
		return err
	}
	u.PasswordHash = hash

	if err := uc.repo.UpdateUser(ctx, u); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  u.ID,
		Action:   "password_changed",
		Entity:   "user",
		EntityID: u.ID,
	})
	return nil
}
