package user

import (
	"context"
	"strings"
	"time"

	"github.com/R0UTS/Animal-Hospitalty/internal/audit"
	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

// ======================================================
// LIST
// ======================================================

// Summary is the admin listing projection.
type Summary struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	Status           string    `json:"status"`
	RegistrationDate time.Time `json:"registrationDate"`
	Location         string    `json:"location"`
}

type ListUsers struct {
	repo domain.Repository
}

func NewListUsers(repo domain.Repository) *ListUsers {
	return &ListUsers{repo: repo}
}

func (uc *ListUsers) Execute(ctx context.Context) ([]Summary, error) {
	users, err := uc.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(users))
	for i := range users {
		u := &users[i]
		status := u.Status
		if status == "" {
			status = string(domain.StatusActive)
		}
		out = append(out, Summary{
			ID:               u.ID,
			Name:             u.UserName,
			Role:             u.Role,
			Status:           status,
			RegistrationDate: u.CreatedAt,
			Location:         strings.ToUpper(domain.Location(u)),
		})
	}
	return out, nil
}

// ======================================================
// STATUS
// ======================================================

type SetStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetStatus(repo domain.Repository, audit *audit.Dispatcher) *SetStatus {
	return &SetStatus{repo: repo, audit: audit}
}

func (uc *SetStatus) Execute(
	ctx context.Context,
	actorID string,
	userID string,
	rawStatus string,
) (*models.User, error) {

	status, err := domain.ParseStatus(strings.TrimSpace(rawStatus))
	if err != nil {
		return nil, err
	}

	u, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	previous := u.Status
	u.Status = string(status)
	if err := uc.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "user_status_changed",
		Entity:   "user",
		EntityID: u.ID,
		Metadata: map[string]string{"from": previous, "to": u.Status},
	})
	return u, nil
}

// ======================================================
// SUPPORT DOCUMENT
// ======================================================

type SetDocumentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetDocumentStatus(repo domain.Repository, audit *audit.Dispatcher) *SetDocumentStatus {
	return &SetDocumentStatus{repo: repo, audit: audit}
}

func (uc *SetDocumentStatus) Execute(
	ctx context.Context,
	actorID string,
	userID string,
	rawStatus string,
) (*models.User, error) {

	status, err := domain.ParseDocumentStatus(strings.TrimSpace(rawStatus))
	if err != nil {
		return nil, err
	}

	u, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := domain.SetDocumentStatus(u, status); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "document_status_changed",
		Entity:   "user",
		EntityID: u.ID,
		Metadata: map[string]string{"status": string(status)},
	})
	return u, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteUser struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteUser(repo domain.Repository, audit *audit.Dispatcher) *DeleteUser {
	return &DeleteUser{repo: repo, audit: audit}
}

func (uc *DeleteUser) Execute(ctx context.Context, actorID, userID string) error {
	if err := uc.repo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: userID,
	})
	return nil
}
