package post

import (
	"context"

	"github.com/BruksfildServices01/barbemnt/internal/httperr"
)

var (
	ErrTeamRequired       = httperr.ErrBusiness("team_required")
	ErrStorageUnavailable = httperr.ErrBusiness("storage_unavailable")
)

// ImageStore is the portfolio bucket.
type ImageStore interface {
	PutImage(ctx context.Context, teamID uint, body []byte, contentType, ext string) (string, error)
	DeleteByURL(ctx context.Context, url string) error
}

// FeedCache holds rendered feeds between writes.
type FeedCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Invalidate(ctx context.Context, keys ...string) error
}
