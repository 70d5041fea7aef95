package user

import (
	"strings"

	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

// Profile is the role-specific part of an account. Exactly one variant
// exists per role.
type Profile interface {
	Role() Role
}

type FarmerProfile struct {
	Location       string `json:"farmerLocation"`
	AdditionalInfo string `json:"additionalInfo"`
}

type VeterinarianProfile struct {
	Specialization  string         `json:"specialization"`
	AreaOfExpertise string         `json:"areaOfExpertise"`
	WorkLocation    string         `json:"vetLocation"`
	SupportDocument string         `json:"supportDocument"`
	DocumentStatus  DocumentStatus `json:"supportDocumentStatus"`
}

type AdminProfile struct{}

func (FarmerProfile) Role() Role       { return RoleFarmer }
func (VeterinarianProfile) Role() Role { return RoleVeterinarian }
func (AdminProfile) Role() Role        { return RoleAdmin }

// ProfileOf reads the variant that matches u.Role.
func ProfileOf(u *models.User) Profile {
	switch Role(u.Role) {
	case RoleFarmer:
		return FarmerProfile{
			Location:       u.FarmerLocation,
			AdditionalInfo: u.AdditionalInfo,
		}
	case RoleVeterinarian:
		return VeterinarianProfile{
			Specialization:  u.Specialization,
			AreaOfExpertise: u.AreaOfExpertise,
			WorkLocation:    u.VetLocation,
			SupportDocument: u.SupportDocument,
			DocumentStatus:  DocumentStatus(u.SupportDocumentStatus),
		}
	default:
		return AdminProfile{}
	}
}

// ApplyProfile writes p into u, sets the role and clears the columns that
// belong to other roles.
func ApplyProfile(u *models.User, p Profile) {
	u.Role = string(p.Role())

	u.FarmerLocation, u.AdditionalInfo = "", ""
	u.Specialization, u.AreaOfExpertise, u.VetLocation = "", "", ""
	u.SupportDocument, u.SupportDocumentStatus = "", ""

	switch v := p.(type) {
	case FarmerProfile:
		u.FarmerLocation = v.Location
		u.AdditionalInfo = v.AdditionalInfo
	case VeterinarianProfile:
		u.Specialization = v.Specialization
		u.AreaOfExpertise = v.AreaOfExpertise
		u.VetLocation = v.WorkLocation
		u.SupportDocument = v.SupportDocument
		u.SupportDocumentStatus = string(v.DocumentStatus)
	}
}

// Location is the farmer or vet location, empty for admins.
func Location(u *models.User) string {
	switch p := ProfileOf(u).(type) {
	case FarmerProfile:
		return p.Location
	case VeterinarianProfile:
		return p.WorkLocation
	}
	return ""
}

// ===============================
// Profile updates
// ===============================

// ProfileUpdate carries optional changes. Nil fields are left alone.
type ProfileUpdate struct {
	UserName    *string `json:"userName"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`

	FarmerLocation *string `json:"farmerLocation"`
	AdditionalInfo *string `json:"additionalInfo"`

	Specialization  *string `json:"specialization"`
	AreaOfExpertise *string `json:"areaOfExpertise"`
	VetLocation     *string `json:"vetLocation"`
}

func (p ProfileUpdate) farmerFields() bool {
	return p.FarmerLocation != nil || p.AdditionalInfo != nil
}

func (p ProfileUpdate) vetFields() bool {
	return p.Specialization != nil || p.AreaOfExpertise != nil || p.VetLocation != nil
}

// ApplyUpdate validates upd against the account role and applies it.
// Fields of another role are rejected, not ignored.
func ApplyUpdate(u *models.User, upd ProfileUpdate) error {
	role := Role(u.Role)

	if upd.farmerFields() && role != RoleFarmer {
		return httperr.ErrValidation("field_not_allowed", "Farmer fields cannot be set on a "+string(role)+" account")
	}
	if upd.vetFields() && role != RoleVeterinarian {
		return httperr.ErrValidation("field_not_allowed", "Veterinarian fields cannot be set on a "+string(role)+" account")
	}

	if upd.UserName != nil {
		name := strings.TrimSpace(*upd.UserName)
		if name == "" {
			return httperr.ErrValidation("invalid_user_name", "userName cannot be empty")
		}
		u.UserName = name
	}
	if upd.Email != nil {
		email, err := NormalizeEmail(*upd.Email)
		if err != nil {
			return err
		}
		u.Email = email
	}
	if upd.PhoneNumber != nil {
		phone := strings.TrimSpace(*upd.PhoneNumber)
		if err := ValidatePhone(phone); err != nil {
			return err
		}
		u.PhoneNumber = phone
	}

	switch p := ProfileOf(u).(type) {
	case FarmerProfile:
		if upd.FarmerLocation != nil {
			p.Location = strings.TrimSpace(*upd.FarmerLocation)
		}
		if upd.AdditionalInfo != nil {
			p.AdditionalInfo = strings.TrimSpace(*upd.AdditionalInfo)
		}
		ApplyProfile(u, p)
	case VeterinarianProfile:
		if upd.Specialization != nil {
			p.Specialization = strings.TrimSpace(*upd.Specialization)
		}
		if upd.AreaOfExpertise != nil {
			p.AreaOfExpertise = strings.TrimSpace(*upd.AreaOfExpertise)
		}
		if upd.VetLocation != nil {
			p.WorkLocation = strings.TrimSpace(*upd.VetLocation)
		}
		ApplyProfile(u, p)
	}
	return nil
}

// SetDocumentStatus only applies to veterinarians.
func SetDocumentStatus(u *models.User, s DocumentStatus) error {
	p, ok := ProfileOf(u).(VeterinarianProfile)
	if !ok {
		return httperr.ErrValidation("not_a_veterinarian", "Support documents only exist for veterinarians")
	}
	p.DocumentStatus = s
	ApplyProfile(u, p)
	return nil
}
