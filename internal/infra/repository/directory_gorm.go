package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbemnt/internal/domain/tenant"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

type DirectoryGormRepository struct {
	db *gorm.DB
}

func NewDirectoryGormRepository(db *gorm.DB) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

// soft-deleted users are excluded by gorm's default scope.
func (r *DirectoryGormRepository) CountActiveUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// ActiveUser returns nil when the user was deleted or soft-deleted.
func (r *DirectoryGormRepository) ActiveUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("id", "role").
		First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *DirectoryGormRepository) CountTeams(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Team{}).Count(&count).Error
	return count, err
}

func (r *DirectoryGormRepository) ListActiveUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *DirectoryGormRepository) ListTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

var _ tenant.Directory = (*DirectoryGormRepository)(nil)
