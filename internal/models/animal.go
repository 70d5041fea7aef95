package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Animal struct {
	AnimalID string `gorm:"primaryKey;size:64" json:"animalId"`

	Species   string     `gorm:"size:60;not null" json:"species"`
	NickName  string     `gorm:"size:100" json:"nickName,omitempty"`
	Breed     string     `gorm:"size:100" json:"breed,omitempty"`
	ApproxDOB *time.Time `json:"approxDOB,omitempty"`
	// AgeMonths is derived from ApproxDOB; nil when the DOB is unknown.
	AgeMonths *int `json:"age,omitempty"`

	OwnerID string `gorm:"size:36;not null;index" json:"owner"`
	Owner   *User  `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Animal) BeforeCreate(tx *gorm.DB) error {
	if a.AnimalID == "" {
		a.AnimalID = uuid.NewString()
	}
	return nil
}
