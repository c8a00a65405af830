package admin

import (
	"context"
	"errors"

	"go.uber.org/multierr"

	"github.com/BruksfildServices01/barbemnt/internal/domain/role"
	"github.com/BruksfildServices01/barbemnt/internal/domain/tenant"
	"github.com/BruksfildServices01/barbemnt/internal/logger"
	"github.com/BruksfildServices01/barbemnt/internal/metrics"
)

const DeletedMessage = "User and all related data deleted successfully"

// ImagePurger removes a stored object given its public URL.
type ImagePurger interface {
	DeleteByURL(ctx context.Context, url string) error
}

type DeleteUserResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ======================================================
// USE CASE
// ======================================================

type DeleteUser struct {
	uow    tenant.UnitOfWork
	images ImagePurger
	log    *logger.Logger
}

func NewDeleteUser(
	uow tenant.UnitOfWork,
	images ImagePurger,
	log *logger.Logger,
) *DeleteUser {
	if log == nil {
		log = logger.Nop()
	}
	return &DeleteUser{
		uow:    uow,
		images: images,
		log:    log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *DeleteUser) Execute(
	ctx context.Context,
	caller *role.Principal,
	targetID uint,
) (*DeleteUserResult, error) {

	// --------------------------------------------------
	// 1. Guard (no transaction yet)
	// --------------------------------------------------
	if !caller.IsSuperAdmin() {
		metrics.RecordUserDeletion("unauthorized")
		return nil, tenant.ErrUnauthorized
	}
	if caller.UserID == targetID {
		metrics.RecordUserDeletion("self_deletion")
		return nil, tenant.ErrSelfDeletionForbidden
	}

	ctx = uc.log.WithFields(ctx, map[string]any{
		"actor_id":       caller.UserID,
		"target_user_id": targetID,
	})

	// --------------------------------------------------
	// 2. Cascade
	// --------------------------------------------------
	var (
		images    []string
		reclaimed int
	)

	err := uc.uow.WithinTx(ctx, func(c tenant.Cascade) error {
		images, reclaimed = nil, 0

		exists, err := c.UserExists(ctx, targetID)
		if err != nil {
			return err
		}
		if !exists {
			return tenant.ErrUserNotFound
		}

		// memberships must be read before they are deleted
		teamIDs, err := c.TeamIDsForUser(ctx, targetID)
		if err != nil {
			return err
		}

		steps := []func(context.Context, uint) error{
			c.DeleteBarberProfile,
			c.DeleteBookingsAsCustomer,
			c.DeleteBookingsAsBarber,
			c.DeleteMemberships,
			c.DeleteInvitationsSentBy,
			c.DeleteActivityLogs,
		}
		for _, step := range steps {
			if err := step(ctx, targetID); err != nil {
				return err
			}
		}

		postImages, err := c.DeletePostsByBarber(ctx, targetID)
		if err != nil {
			return err
		}
		images = append(images, postImages...)

		// --------------------------------------------------
		// 3. Reclaim teams left without members
		// --------------------------------------------------
		for _, teamID := range tenant.UniqueTeamIDs(teamIDs) {
			removed, teamImages, err := tenant.ReclaimTeam(ctx, c, teamID)
			if err != nil {
				return err
			}
			if removed {
				reclaimed++
				images = append(images, teamImages...)
			}
		}

		return c.DeleteUser(ctx, targetID)
	})

	// --------------------------------------------------
	// 4. Result
	// --------------------------------------------------
	if errors.Is(err, tenant.ErrUserNotFound) {
		metrics.RecordUserDeletion("not_found")
		return nil, err
	}
	if err != nil {
		uc.log.Error(ctx, "user deletion rolled back", err)
		metrics.RecordUserDeletion("failed")
		return nil, tenant.ErrDeletionFailed
	}

	metrics.RecordUserDeletion("deleted")
	metrics.AddTeamsReclaimed(reclaimed)

	ctx = uc.log.WithField(ctx, "teams_reclaimed", reclaimed)
	uc.log.Info(ctx, "user deleted")

	uc.purgeImages(ctx, images)

	return &DeleteUserResult{Success: true, Message: DeletedMessage}, nil
}

// purgeImages runs after commit. Failures leave orphaned objects but never
// undo the deletion.
func (uc *DeleteUser) purgeImages(ctx context.Context, urls []string) {
	if uc.images == nil || len(urls) == 0 {
		return
	}

	var errs error
	for _, url := range urls {
		if err := uc.images.DeleteByURL(ctx, url); err != nil {
			metrics.RecordImagePurge("failed")
			errs = multierr.Append(errs, err)
			continue
		}
		metrics.RecordImagePurge("deleted")
	}

	if errs != nil {
		uc.log.Error(ctx, "portfolio image purge incomplete", errs)
	}
}
