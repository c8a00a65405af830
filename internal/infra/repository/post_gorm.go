package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbemnt/internal/domain/post"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

type PostGormRepository struct {
	db *gorm.DB
}

func NewPostGormRepository(db *gorm.DB) *PostGormRepository {
	return &PostGormRepository{db: db}
}

func (r *PostGormRepository) Create(ctx context.Context, p *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *PostGormRepository) Get(ctx context.Context, teamID, postID uint) (*models.Post, error) {
	var p models.Post
	if err := r.db.WithContext(ctx).
		Where("id = ? AND team_id = ?", postID, teamID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostGormRepository) Delete(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, postID).Error
}

func (r *PostGormRepository) ListForTeam(ctx context.Context, teamID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.withBarber(ctx).
		Where("team_id = ?", teamID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

func (r *PostGormRepository) ListFeed(ctx context.Context, limit int) ([]models.Post, error) {
	q := r.withBarber(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var posts []models.Post
	err := q.Find(&posts).Error
	return posts, err
}

func (r *PostGormRepository) withBarber(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Barber", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "avatar_url")
	})
}

var _ domain.Repository = (*PostGormRepository)(nil)
