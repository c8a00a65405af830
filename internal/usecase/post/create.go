package post

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barbemnt/internal/audit"
	domain "github.com/BruksfildServices01/barbemnt/internal/domain/post"
	"github.com/BruksfildServices01/barbemnt/internal/domain/role"
	"github.com/BruksfildServices01/barbemnt/internal/infra/cache"
	"github.com/BruksfildServices01/barbemnt/internal/logger"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

type CreatePostInput struct {
	TeamID    uint
	Type      string
	Title     string
	ImageURL  string
	Caption   string
	IPAddress string
}

type CreatePost struct {
	repo  domain.Repository
	cache FeedCache
	audit *audit.Dispatcher
	log   *logger.Logger
}

func NewCreatePost(
	repo domain.Repository,
	feed FeedCache,
	audit *audit.Dispatcher,
	log *logger.Logger,
) *CreatePost {
	if log == nil {
		log = logger.Nop()
	}
	return &CreatePost{repo: repo, cache: feed, audit: audit, log: log}
}

func (uc *CreatePost) Execute(
	ctx context.Context,
	caller *role.Principal,
	in CreatePostInput,
) (*models.Post, error) {

	if caller == nil || !caller.Role.CanPublish() {
		return nil, domain.ErrForbidden
	}
	if in.TeamID == 0 {
		return nil, ErrTeamRequired
	}

	p := &models.Post{
		TeamID:   in.TeamID,
		Type:     strings.TrimSpace(in.Type),
		Title:    strings.TrimSpace(in.Title),
		ImageURL: strings.TrimSpace(in.ImageURL),
		Caption:  strings.TrimSpace(in.Caption),
	}
	if p.Type == "" {
		p.Type = string(domain.TypePortfolio)
	}

	// shop-level posts carry no barber
	if caller.Role == role.Barber {
		barberID := caller.UserID
		p.BarberID = &barberID
	}

	if err := domain.Validate(p); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	invalidateFeeds(ctx, uc.cache, uc.log, p.TeamID)

	if uc.audit != nil {
		userID := caller.UserID
		uc.audit.Dispatch(audit.Event{
			TeamID:    p.TeamID,
			UserID:    &userID,
			Action:    audit.PublishPost,
			IPAddress: in.IPAddress,
		})
	}

	return p, nil
}

func invalidateFeeds(ctx context.Context, feed FeedCache, log *logger.Logger, teamID uint) {
	if feed == nil {
		return
	}
	if err := feed.Invalidate(ctx, cache.PublicFeedKey, cache.TeamFeedKey(teamID)); err != nil {
		log.Error(ctx, "feed cache invalidation failed", err)
	}
}
