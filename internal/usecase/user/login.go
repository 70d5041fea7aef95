package user

import (
	"context"
	"errors"
	"strings"

	"github.com/R0UTS/Animal-Hospitalty/internal/audit"
	"github.com/R0UTS/Animal-Hospitalty/internal/auth"
	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

var (
	ErrInvalidCredentials = httperr.ErrUnauthenticated("invalid_credentials", "Invalid login credentials")
	ErrNotApproved        = httperr.ErrForbidden("account_not_approved", "Account not approved by admin yet")
	ErrSuspended          = httperr.ErrForbidden("account_suspended", "Account suspended")
)

type LoginInput struct {
	LoginID  string
	Password string
}

type LoginResult struct {
	Token string
	User  *models.User
}

type Login struct {
	repo   domain.Repository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
	audit  *audit.Dispatcher
}

func NewLogin(
	repo domain.Repository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	audit *audit.Dispatcher,
) *Login {
	return &Login{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		audit:  audit,
	}
}

// Execute accepts an email, phone number or user name as the login id.
func (uc *Login) Execute(
	ctx context.Context,
	in LoginInput,
) (*LoginResult, error) {

	loginID := strings.TrimSpace(in.LoginID)
	password := strings.TrimSpace(in.Password)
	if loginID == "" || password == "" {
		return nil, httperr.ErrValidation("missing_fields", "Login ID and password are required")
	}

	u, err := uc.repo.FindByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !uc.hasher.Compare(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	// Checked only after the password so account state is not disclosed
	// to someone who does not know it.
	switch {
	case domain.Role(u.Role) == domain.RoleVeterinarian && domain.Status(u.Status) != domain.StatusActive:
		uc.refused(u, "not_approved")
		return nil, ErrNotApproved
	case domain.Status(u.Status) == domain.StatusSuspended:
		uc.refused(u, "suspended")
		return nil, ErrSuspended
	}

	token, err := uc.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: u}, nil
}

func (uc *Login) refused(u *models.User, reason string) {
	uc.audit.Dispatch(audit.Event{
		ActorID:  u.ID,
		Action:   "login_refused",
		Entity:   "user",
		EntityID: u.ID,
		Metadata: map[string]string{"reason": reason, "status": u.Status},
	})
}
