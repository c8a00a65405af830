package post

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barbemnt/internal/httperr"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

type Type string

const (
	TypePortfolio    Type = "portfolio"
	TypeAnnouncement Type = "announcement"
)

var (
	ErrInvalidType   = httperr.ErrBusiness("invalid_post_type")
	ErrImageRequired = httperr.ErrBusiness("image_required")
	ErrTitleRequired = httperr.ErrBusiness("title_required")
	ErrNotFound      = httperr.ErrBusiness("post_not_found")
	ErrForbidden     = httperr.ErrBusiness("post_forbidden")
)

func (t Type) IsValid() bool {
	return t == TypePortfolio || t == TypeAnnouncement
}

// Validate checks the fields each post type requires.
func Validate(p *models.Post) error {
	switch Type(p.Type) {
	case TypePortfolio:
		if strings.TrimSpace(p.ImageURL) == "" {
			return ErrImageRequired
		}
	case TypeAnnouncement:
		if strings.TrimSpace(p.Title) == "" {
			return ErrTitleRequired
		}
	default:
		return ErrInvalidType
	}
	return nil
}

type Repository interface {
	Create(ctx context.Context, p *models.Post) error
	// Get returns gorm.ErrRecordNotFound when the post is not in the team.
	Get(ctx context.Context, teamID, postID uint) (*models.Post, error)
	Delete(ctx context.Context, postID uint) error

	ListForTeam(ctx context.Context, teamID uint) ([]models.Post, error)
	ListFeed(ctx context.Context, limit int) ([]models.Post, error)
}
