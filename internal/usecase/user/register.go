package user

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/R0UTS/Animal-Hospitalty/internal/audit"
	"github.com/R0UTS/Animal-Hospitalty/internal/auth"
	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/infra/storage"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Email       string
	UserName    string
	Password    string
	Role        string
	PhoneNumber string

	FarmerLocation string
	AdditionalInfo string

	Specialization  string
	AreaOfExpertise string
	VetLocation     string
	SupportDocument *storage.Upload
}

func (in *RegisterInput) trim() {
	in.Email = strings.TrimSpace(in.Email)
	in.UserName = strings.TrimSpace(in.UserName)
	in.Password = strings.TrimSpace(in.Password)
	in.Role = strings.TrimSpace(in.Role)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.FarmerLocation = strings.TrimSpace(in.FarmerLocation)
	in.AdditionalInfo = strings.TrimSpace(in.AdditionalInfo)
	in.Specialization = strings.TrimSpace(in.Specialization)
	in.AreaOfExpertise = strings.TrimSpace(in.AreaOfExpertise)
	in.VetLocation = strings.TrimSpace(in.VetLocation)
}

type RegisterOptions struct {
	AllowAdmin bool
	// CheckEmailDomain is optional; nil skips the DNS lookup.
	CheckEmailDomain func(email string) bool
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	repo   domain.Repository
	hasher *auth.PasswordHasher
	files  storage.Store
	audit  *audit.Dispatcher
	opts   RegisterOptions
	now    func() time.Time
	log    *slog.Logger
}

func NewRegister(
	repo domain.Repository,
	hasher *auth.PasswordHasher,
	files storage.Store,
	audit *audit.Dispatcher,
	opts RegisterOptions,
	log *slog.Logger,
) *Register {
	return &Register{
		repo:   repo,
		hasher: hasher,
		files:  files,
		audit:  audit,
		opts:   opts,
		now:    time.Now,
		log:    log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Register) Execute(
	ctx context.Context,
	in RegisterInput,
) (*models.User, error) {

	in.trim()

	// --------------------------------------------------
	// 1) Required fields and formats
	// --------------------------------------------------
	if in.Email == "" || in.UserName == "" || in.Password == "" || in.Role == "" || in.PhoneNumber == "" {
		return nil, httperr.ErrValidation("missing_fields", "Missing required fields")
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleAdmin && !uc.opts.AllowAdmin {
		return nil, httperr.ErrForbidden("admin_registration_disabled", "Admin registration is disabled")
	}

	email, err := domain.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if uc.opts.CheckEmailDomain != nil && !uc.opts.CheckEmailDomain(email) {
		return nil, httperr.ErrValidation("invalid_email_domain", "Email domain does not look valid")
	}
	if err := domain.ValidatePhone(in.PhoneNumber); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2) Role profile
	// --------------------------------------------------
	var profile domain.Profile
	switch role {
	case domain.RoleFarmer:
		profile = domain.FarmerProfile{
			Location:       in.FarmerLocation,
			AdditionalInfo: in.AdditionalInfo,
		}
	case domain.RoleVeterinarian:
		if in.VetLocation == "" {
			return nil, httperr.ErrValidation("vet_location_required", "Veterinarians must provide a work location")
		}
		if in.SupportDocument == nil {
			return nil, httperr.ErrValidation("support_document_required", "Veterinarians must upload a support document")
		}
		profile = domain.VeterinarianProfile{
			Specialization:  in.Specialization,
			AreaOfExpertise: in.AreaOfExpertise,
			WorkLocation:    in.VetLocation,
			DocumentStatus:  domain.DocumentPending,
		}
	default:
		profile = domain.AdminProfile{}
	}

	// --------------------------------------------------
	// 3) Uniqueness
	// --------------------------------------------------
	exists, err := uc.repo.ExistsByEmailOrPhone(ctx, email, in.PhoneNumber, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrExists
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4) Support document, then the row
	// --------------------------------------------------
	batch := storage.NewBatch(uc.files)
	if in.SupportDocument != nil && role == domain.RoleVeterinarian {
		key, err := batch.SaveUpload(ctx, *in.SupportDocument, uc.now())
		if err != nil {
			return nil, err
		}
		vp := profile.(domain.VeterinarianProfile)
		vp.SupportDocument = key
		profile = vp
	}

	u := &models.User{
		UserName:     in.UserName,
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  in.PhoneNumber,
		Status:       string(domain.InitialStatus(role)),
	}
	domain.ApplyProfile(u, profile)

	if err := uc.repo.CreateUser(ctx, u); err != nil {
		if rbErr := batch.Rollback(ctx); rbErr != nil && uc.log != nil {
			uc.log.Warn("support document rollback failed", slog.String("error", rbErr.Error()))
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: u.ID,
		Metadata: map[string]string{"role": u.Role, "status": u.Status},
	})

	return u, nil
}
