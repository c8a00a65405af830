package models

import "time"

type Invitation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TeamID uint `gorm:"not null;index" json:"team_id"`
	Team   Team `gorm:"constraint:OnUpdate:CASCADE;" json:"-"`

	Email string `gorm:"size:255;not null" json:"email"`
	Role  string `gorm:"size:50;not null" json:"role"`

	InvitedBy uint `gorm:"not null" json:"invited_by"`
	Inviter   User `gorm:"foreignKey:InvitedBy;constraint:OnUpdate:CASCADE;" json:"-"`

	InvitedAt time.Time `gorm:"not null" json:"invited_at"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`
}
