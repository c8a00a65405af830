package post

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/barbemnt/internal/domain/post"
	"github.com/BruksfildServices01/barbemnt/internal/domain/role"
	"github.com/BruksfildServices01/barbemnt/internal/imaging"
	"github.com/BruksfildServices01/barbemnt/internal/logger"
	"github.com/BruksfildServices01/barbemnt/internal/metrics"
)

type UploadImage struct {
	store ImageStore
	proc  imaging.Processor
	log   *logger.Logger
}

func NewUploadImage(store ImageStore, proc imaging.Processor, log *logger.Logger) *UploadImage {
	if log == nil {
		log = logger.Nop()
	}
	return &UploadImage{store: store, proc: proc, log: log}
}

// Execute re-encodes data to WebP and returns the public URL of the stored object.
func (uc *UploadImage) Execute(
	ctx context.Context,
	caller *role.Principal,
	teamID uint,
	data []byte,
) (string, error) {

	if caller == nil || !caller.Role.CanPublish() {
		return "", domain.ErrForbidden
	}
	if teamID == 0 {
		return "", ErrTeamRequired
	}
	if uc.store == nil {
		return "", ErrStorageUnavailable
	}

	img, err := uc.proc.Process(data)
	if err != nil {
		metrics.RecordUpload("rejected")
		return "", err
	}

	url, err := uc.store.PutImage(ctx, teamID, img.Data, imaging.ContentType, imaging.Extension)
	if err != nil {
		metrics.RecordUpload("failed")
		uc.log.Error(ctx, "portfolio upload failed", err)
		return "", errors.Join(ErrStorageUnavailable, err)
	}

	metrics.RecordUpload("stored")
	return url, nil
}
