package audit

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbemnt/internal/models"
)

// ActivityType is the action recorded on a team's activity feed.
type ActivityType string

const (
	SignUp            ActivityType = "SIGN_UP"
	SignIn            ActivityType = "SIGN_IN"
	UpdatePassword    ActivityType = "UPDATE_PASSWORD"
	UpdateAccount     ActivityType = "UPDATE_ACCOUNT"
	CreateTeam        ActivityType = "CREATE_TEAM"
	RemoveTeamMember  ActivityType = "REMOVE_TEAM_MEMBER"
	InviteTeamMember  ActivityType = "INVITE_TEAM_MEMBER"
	AcceptInvitation  ActivityType = "ACCEPT_INVITATION"
	RevokeInvitation  ActivityType = "REVOKE_INVITATION"
	CreateBooking     ActivityType = "CREATE_BOOKING"
	UpdateBooking     ActivityType = "UPDATE_BOOKING"
	PublishPost       ActivityType = "PUBLISH_POST"
	DeletePost        ActivityType = "DELETE_POST"
	UpdateBarberHours ActivityType = "UPDATE_AVAILABILITY"
)

// ErrStaleEvent means the event's team or user was deleted before it was written.
var ErrStaleEvent = errors.New("activity event references a deleted team or user")

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	ctx context.Context,
	teamID uint,
	userID *uint,
	action ActivityType,
	ipAddress string,
) error {
	entry := models.ActivityLog{
		TeamID:    teamID,
		UserID:    userID,
		Action:    string(action),
		Timestamp: time.Now(),
		IPAddress: ipAddress,
	}

	// share locks wait for a running cascade on the same rows to commit
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockExisting(tx, &models.Team{}, teamID); err != nil {
			return err
		}
		if userID != nil {
			if err := lockExisting(tx.Unscoped(), &models.User{}, *userID); err != nil {
				return err
			}
		}
		return tx.Create(&entry).Error
	})
}

func lockExisting(tx *gorm.DB, model any, id uint) error {
	var row struct{ ID uint }
	err := tx.Model(model).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Select("id").
		Where("id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrStaleEvent
	}
	return err
}

// Recent returns the latest entries recorded for a user, newest first.
func (l *Logger) Recent(ctx context.Context, userID uint, limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	if err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
