package models

import "time"

// Team is a shop (tenant). Every team-scoped row carries its TeamID.
type Team struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Timezone string `gorm:"size:64;not null;default:'America/Sao_Paulo'" json:"timezone"`

	StripeCustomerID     *string `gorm:"uniqueIndex" json:"-"`
	StripeSubscriptionID *string `gorm:"uniqueIndex" json:"-"`
	StripeProductID      string  `json:"-"`
	PlanName             string  `gorm:"size:50" json:"plan_name"`
	SubscriptionStatus   string  `gorm:"size:20" json:"subscription_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TeamMember struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE;" json:"user"`

	TeamID uint `gorm:"not null;index" json:"team_id"`
	Team   Team `gorm:"constraint:OnUpdate:CASCADE;" json:"-"`

	Role     string    `gorm:"size:50;not null" json:"role"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`
}
