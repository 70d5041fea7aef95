package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the persisted account row. Role-specific columns are only
// meaningful for their role; the domain/user package exposes them as a
// tagged profile so callers never touch the wrong set.
type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	UserName     string `gorm:"size:100;not null;index" json:"userName"`
	Email        string `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	PhoneNumber  string `gorm:"size:10;uniqueIndex;not null" json:"phoneNumber"`
	Role         string `gorm:"size:20;not null;index" json:"role"`
	Status       string `gorm:"size:20;not null;default:'Active'" json:"status"`

	// farmer
	FarmerLocation string `gorm:"size:120" json:"farmerLocation,omitempty"`
	AdditionalInfo string `gorm:"type:text" json:"additionalInfo,omitempty"`

	// veterinarian
	Specialization        string `gorm:"size:120" json:"specialization,omitempty"`
	AreaOfExpertise       string `gorm:"size:255" json:"areaOfExpertise,omitempty"`
	VetLocation           string `gorm:"size:255" json:"vetLocation,omitempty"`
	SupportDocument       string `gorm:"size:255" json:"supportDocument,omitempty"`
	SupportDocumentStatus string `gorm:"size:20" json:"supportDocumentStatus,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
