package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TeamID uint `gorm:"not null;index" json:"team_id"`
	Team   Team `gorm:"constraint:OnUpdate:CASCADE;" json:"-"`

	CustomerID uint `gorm:"not null;index" json:"customer_id"`
	Customer   User `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE;" json:"customer"`

	BarberID uint `gorm:"not null;index" json:"barber_id"`
	Barber   User `gorm:"foreignKey:BarberID;constraint:OnUpdate:CASCADE;" json:"barber"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE;" json:"service"`

	AppointmentDate time.Time `gorm:"not null;index" json:"appointment_date"`
	Status          string    `gorm:"size:50;not null;default:'pending'" json:"status"`
	Notes           string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
