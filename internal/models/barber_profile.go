package models

import (
	"time"

	"github.com/BruksfildServices01/barbemnt/internal/domain/availability"
)

type BarberProfile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE;" json:"-"`

	Bio             string                          `gorm:"type:text" json:"bio"`
	Specialties     []string                        `gorm:"serializer:json" json:"specialties"`
	Availability    availability.WeeklyAvailability `gorm:"serializer:json" json:"availability"`
	InstagramHandle string                          `gorm:"size:255" json:"instagram_handle"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
