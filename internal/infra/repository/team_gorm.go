package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbemnt/internal/models"
)

// TeamGormRepository answers membership questions for request scoping.
type TeamGormRepository struct {
	db *gorm.DB
}

func NewTeamGormRepository(db *gorm.DB) *TeamGormRepository {
	return &TeamGormRepository{db: db}
}

// Membership returns the caller's first membership, or nil when the user
// belongs to no team.
func (r *TeamGormRepository) Membership(ctx context.Context, userID uint) (*models.TeamMember, error) {
	var m models.TeamMember
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("joined_at ASC, id ASC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// TeamWithMembers loads the team and its members with their user rows.
func (r *TeamGormRepository) TeamWithMembers(ctx context.Context, teamID uint) (*models.Team, []models.TeamMember, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).First(&team, teamID).Error; err != nil {
		return nil, nil, err
	}

	var members []models.TeamMember
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("team_id = ?", teamID).
		Order("joined_at ASC, id ASC").
		Find(&members).Error; err != nil {
		return nil, nil, err
	}
	return &team, members, nil
}
