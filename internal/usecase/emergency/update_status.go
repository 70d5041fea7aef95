package emergency

import (
	"context"

	"github.com/R0UTS/Animal-Hospitalty/internal/audit"
	"github.com/R0UTS/Animal-Hospitalty/internal/auth"
	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/emergency"
	userdomain "github.com/R0UTS/Animal-Hospitalty/internal/domain/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/metrics"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
	"github.com/R0UTS/Animal-Hospitalty/internal/notify"
)

type UpdateStatus struct {
	repo   domain.Repository
	users  userdomain.Repository
	notify Notifier
	audit  *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	users userdomain.Repository,
	notifier Notifier,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:   repo,
		users:  users,
		notify: notifier,
		audit:  audit,
	}
}

// Execute advances the report one legal step. Only matched vets and admins
// may do so.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	caller auth.Identity,
	emergencyID string,
	rawStatus string,
) (*models.Emergency, error) {

	if rawStatus == "" {
		return nil, httperr.ErrValidation("status_required", "Status is required")
	}
	to, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	e, err := uc.repo.GetEmergency(ctx, emergencyID)
	if err != nil {
		return nil, err
	}
	if err := authorize(ctx, uc.users, caller, e, false); err != nil {
		return nil, err
	}

	from, err := domain.Transition(e, to)
	if err != nil {
		metrics.ObserveStatusTransition(string(from), string(to), "rejected")
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, e.EmergencyID, from, to); err != nil {
		metrics.ObserveStatusTransition(string(from), string(to), "error")
		return nil, err
	}
	metrics.ObserveStatusTransition(string(from), string(to), "applied")

	uc.audit.Dispatch(audit.Event{
		ActorID:  caller.UserID,
		Action:   "emergency_status_changed",
		Entity:   "emergency",
		EntityID: e.EmergencyID,
		Metadata: map[string]string{"from": string(from), "to": string(to)},
	})

	if uc.notify != nil {
		uc.notify.Emit(
			[]string{notify.RoomFarmers, notify.RoomVets, notify.RoomAdmins},
			notify.StatusUpdated(e.EmergencyID, e.Status),
		)
	}

	return e, nil
}
