package models

import "time"

type ActivityLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TeamID uint `gorm:"not null;index" json:"team_id"`
	Team   Team `gorm:"constraint:OnUpdate:CASCADE;" json:"-"`

	UserID *uint `gorm:"index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE;" json:"-"`

	Action    string    `gorm:"type:text;not null" json:"action"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
}
