package post

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbemnt/internal/audit"
	domain "github.com/BruksfildServices01/barbemnt/internal/domain/post"
	"github.com/BruksfildServices01/barbemnt/internal/domain/role"
	"github.com/BruksfildServices01/barbemnt/internal/logger"
	"github.com/BruksfildServices01/barbemnt/internal/metrics"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

type DeletePost struct {
	repo   domain.Repository
	images ImageStore
	cache  FeedCache
	audit  *audit.Dispatcher
	log    *logger.Logger
}

func NewDeletePost(
	repo domain.Repository,
	images ImageStore,
	feed FeedCache,
	audit *audit.Dispatcher,
	log *logger.Logger,
) *DeletePost {
	if log == nil {
		log = logger.Nop()
	}
	return &DeletePost{repo: repo, images: images, cache: feed, audit: audit, log: log}
}

func (uc *DeletePost) Execute(
	ctx context.Context,
	caller *role.Principal,
	teamID uint,
	postID uint,
	ip string,
) error {

	if caller == nil || !caller.Role.CanPublish() {
		return domain.ErrForbidden
	}

	p, err := uc.repo.Get(ctx, teamID, postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}

	if !canDelete(caller, p) {
		return domain.ErrForbidden
	}

	uc.purge(ctx, p.ImageURL)

	if err := uc.repo.Delete(ctx, p.ID); err != nil {
		return err
	}

	invalidateFeeds(ctx, uc.cache, uc.log, teamID)

	if uc.audit != nil {
		userID := caller.UserID
		uc.audit.Dispatch(audit.Event{
			TeamID:    teamID,
			UserID:    &userID,
			Action:    audit.DeletePost,
			IPAddress: ip,
		})
	}
	return nil
}

// owners manage every team post, barbers only their own
func canDelete(caller *role.Principal, p *models.Post) bool {
	switch caller.Role {
	case role.Owner:
		return true
	case role.Barber:
		return p.BarberID != nil && *p.BarberID == caller.UserID
	default:
		return false
	}
}

func (uc *DeletePost) purge(ctx context.Context, url string) {
	if uc.images == nil || url == "" {
		return
	}
	if err := uc.images.DeleteByURL(ctx, url); err != nil {
		metrics.RecordImagePurge("failed")
		uc.log.Error(uc.log.WithField(ctx, "image_url", url), "post image purge failed", err)
		return
	}
	metrics.RecordImagePurge("deleted")
}
