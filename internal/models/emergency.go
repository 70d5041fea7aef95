package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnimalSnapshot is copied into the report at submission time and is not
// linked to the Animal registry.
type AnimalSnapshot struct {
	AnimalType string `json:"animalType"`
	Breed      string `json:"breed"`
	Age        int    `json:"age"`
}

// Emergency has no foreign key on UserID: reports outlive the author account
// and keep the farmer snapshot fields as their audit trail.
type Emergency struct {
	EmergencyID string `gorm:"primaryKey;size:36" json:"emergencyId"`
	UserID      string `gorm:"size:36;not null;index" json:"userId"`

	Animals     datatypes.JSONSlice[AnimalSnapshot] `gorm:"type:jsonb;not null" json:"animals"`
	Description string                              `gorm:"type:text;not null" json:"description"`
	Location    string                              `gorm:"size:255;not null;index" json:"location"`
	Status      string                              `gorm:"size:20;not null;default:'Pending';index" json:"status"`

	Images datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"images"`
	Videos datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"videos"`

	FarmerName     string `gorm:"size:100" json:"farmerName"`
	FarmerPhone    string `gorm:"size:20" json:"farmerPhone"`
	FarmerEmail    string `gorm:"size:150" json:"farmerEmail"`
	FarmerLocation string `gorm:"size:120;index" json:"farmerLocation"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Emergency) BeforeCreate(tx *gorm.DB) error {
	if e.EmergencyID == "" {
		e.EmergencyID = uuid.NewString()
	}
	return nil
}
