package models

import "time"

// Service is an entry of a team's menu. Price is in cents.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TeamID uint `gorm:"not null;index" json:"team_id"`
	Team   Team `gorm:"constraint:OnUpdate:CASCADE;" json:"-"`

	Name            string `gorm:"size:255;not null" json:"name"`
	Description     string `gorm:"type:text" json:"description"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	Price           int    `gorm:"not null" json:"price"`
	IsActive        bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TeamID uint `gorm:"not null;index" json:"team_id"`
	Team   Team `gorm:"constraint:OnUpdate:CASCADE;" json:"-"`

	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Price       int    `gorm:"not null" json:"price"`
	Stock       int    `gorm:"not null;default:0" json:"stock"`
	ImageURL    string `json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
