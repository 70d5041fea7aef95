package emergency

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/R0UTS/Animal-Hospitalty/internal/audit"
	"github.com/R0UTS/Animal-Hospitalty/internal/auth"
	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/emergency"
	userdomain "github.com/R0UTS/Animal-Hospitalty/internal/domain/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/infra/storage"
	"github.com/R0UTS/Animal-Hospitalty/internal/metrics"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
	"github.com/R0UTS/Animal-Hospitalty/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	Location    string
	Description string
	Animals     []models.AnimalSnapshot

	// Optional contact overrides; the farmer profile is used otherwise.
	FarmerPhone string
	FarmerEmail string

	Images []storage.Upload
	Videos []storage.Upload
}

// ======================================================
// USE CASE
// ======================================================

type CreateEmergency struct {
	repo   domain.Repository
	users  userdomain.Repository
	files  storage.Store
	thumbs Thumbnails
	notify Notifier
	audit  *audit.Dispatcher
	log    *slog.Logger
	now    func() time.Time
}

func NewCreateEmergency(
	repo domain.Repository,
	users userdomain.Repository,
	files storage.Store,
	thumbs Thumbnails,
	notifier Notifier,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *CreateEmergency {
	if log == nil {
		log = slog.Default()
	}
	return &CreateEmergency{
		repo:   repo,
		users:  users,
		files:  files,
		thumbs: thumbs,
		notify: notifier,
		audit:  audit,
		log:    log,
		now:    time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute is all-or-nothing: a failed precondition stores neither the report
// nor any attachment.
func (uc *CreateEmergency) Execute(
	ctx context.Context,
	caller auth.Identity,
	in CreateInput,
) (*models.Emergency, error) {

	// --------------------------------------------------
	// 1) Input
	// --------------------------------------------------
	location := strings.TrimSpace(in.Location)
	description := strings.TrimSpace(in.Description)
	if location == "" {
		return nil, httperr.ErrValidation("location_required", "Location is required")
	}
	if description == "" {
		return nil, httperr.ErrValidation("description_required", "Description is required")
	}
	if err := domain.ValidateAnimals(in.Animals); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2) Farmer snapshot
	// --------------------------------------------------
	farmer, err := uc.users.GetUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if userdomain.Role(farmer.Role) != userdomain.RoleFarmer {
		return nil, httperr.ErrForbidden("not_a_farmer", "Only farmers can report emergencies")
	}

	// --------------------------------------------------
	// 3) At least one responder
	// --------------------------------------------------
	vets, err := uc.users.ListVeterinarians(ctx)
	if err != nil {
		return nil, err
	}
	eligible := domain.EligibleVeterinarians(vets, farmer.FarmerLocation)
	if len(eligible) == 0 {
		metrics.ObserveEmergencyCreated("no_vet")
		return nil, domain.ErrNoVet
	}

	// --------------------------------------------------
	// 4) Attachments, then the record
	// --------------------------------------------------
	now := uc.now()
	batch := storage.NewBatch(uc.files)

	images, err := uc.saveAll(ctx, batch, in.Images, now)
	if err != nil {
		uc.rollback(batch)
		return nil, err
	}
	videos, err := uc.saveAll(ctx, batch, in.Videos, now)
	if err != nil {
		uc.rollback(batch)
		return nil, err
	}

	e := &models.Emergency{
		UserID:         farmer.ID,
		Animals:        in.Animals,
		Description:    description,
		Location:       location,
		Status:         string(domain.InitialStatus()),
		Images:         images,
		Videos:         videos,
		FarmerName:     farmer.UserName,
		FarmerPhone:    firstNonEmpty(in.FarmerPhone, farmer.PhoneNumber),
		FarmerEmail:    firstNonEmpty(in.FarmerEmail, farmer.Email),
		FarmerLocation: farmer.FarmerLocation,
	}

	if err := uc.repo.CreateEmergency(ctx, e); err != nil {
		uc.rollback(batch)
		metrics.ObserveEmergencyCreated("error")
		return nil, err
	}

	// --------------------------------------------------
	// 5) Side effects, none of which can fail the request
	// --------------------------------------------------
	metrics.ObserveEmergencyCreated("created")

	uc.audit.Dispatch(audit.Event{
		ActorID:  farmer.ID,
		Action:   "emergency_created",
		Entity:   "emergency",
		EntityID: e.EmergencyID,
		Metadata: map[string]any{"location": e.Location, "matchedVets": len(eligible)},
	})

	if uc.notify != nil {
		uc.notify.Emit([]string{notify.RoomVets, notify.RoomAdmins}, notify.NewEmergencyReport(e))
	}

	if uc.thumbs != nil && len(images) > 0 {
		keys := append([]string(nil), images...)
		go uc.thumbs.GenerateAll(context.WithoutCancel(ctx), keys)
	}

	return e, nil
}

func (uc *CreateEmergency) saveAll(
	ctx context.Context,
	batch *storage.Batch,
	uploads []storage.Upload,
	now time.Time,
) ([]string, error) {

	keys := make([]string, 0, len(uploads))
	for _, u := range uploads {
		key, err := batch.SaveUpload(ctx, u, now)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (uc *CreateEmergency) rollback(batch *storage.Batch) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	keys := batch.Keys()
	if err := batch.Rollback(ctx); err != nil {
		uc.log.Warn("attachment rollback failed", slog.Any("keys", keys), slog.String("error", err.Error()))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
