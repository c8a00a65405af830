package post

import (
	"context"

	domain "github.com/BruksfildServices01/barbemnt/internal/domain/post"
	"github.com/BruksfildServices01/barbemnt/internal/infra/cache"
	"github.com/BruksfildServices01/barbemnt/internal/logger"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

type ListPosts struct {
	repo  domain.Repository
	cache FeedCache
	log   *logger.Logger
}

func NewListPosts(repo domain.Repository, feed FeedCache, log *logger.Logger) *ListPosts {
	if log == nil {
		log = logger.Nop()
	}
	return &ListPosts{repo: repo, cache: feed, log: log}
}

func (uc *ListPosts) ForTeam(ctx context.Context, teamID uint) ([]models.Post, error) {
	if teamID == 0 {
		return nil, ErrTeamRequired
	}
	return uc.cached(ctx, cache.TeamFeedKey(teamID), func() ([]models.Post, error) {
		return uc.repo.ListForTeam(ctx, teamID)
	})
}

// Feed is the public storefront: every post, newest first.
func (uc *ListPosts) Feed(ctx context.Context) ([]models.Post, error) {
	return uc.cached(ctx, cache.PublicFeedKey, func() ([]models.Post, error) {
		return uc.repo.ListFeed(ctx, 0)
	})
}

// cached falls through to load on any cache error.
func (uc *ListPosts) cached(
	ctx context.Context,
	key string,
	load func() ([]models.Post, error),
) ([]models.Post, error) {

	if uc.cache != nil {
		var posts []models.Post
		hit, err := uc.cache.Get(ctx, key, &posts)
		if err != nil {
			uc.log.Warn(uc.log.WithField(ctx, "cache_key", key), "feed cache read failed")
		}
		if hit {
			return posts, nil
		}
	}

	posts, err := load()
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, posts); err != nil {
			uc.log.Warn(uc.log.WithField(ctx, "cache_key", key), "feed cache write failed")
		}
	}
	return posts, nil
}
