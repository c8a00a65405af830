package models

import "time"

type Post struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TeamID uint `gorm:"not null;index" json:"team_id"`
	Team   Team `gorm:"constraint:OnUpdate:CASCADE;" json:"-"`

	// BarberID is nil for shop-level posts published by an owner.
	BarberID *uint `gorm:"index" json:"barber_id"`
	Barber   *User `gorm:"foreignKey:BarberID;constraint:OnUpdate:CASCADE;" json:"barber,omitempty"`

	Type     string `gorm:"type:text;not null;default:'portfolio'" json:"type"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
