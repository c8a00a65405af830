package tenant

import (
	"context"

	"github.com/BruksfildServices01/barbemnt/internal/httperr"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

var (
	ErrUnauthorized          = httperr.ErrBusiness("unauthorized")
	ErrSelfDeletionForbidden = httperr.ErrBusiness("self_deletion_forbidden")
	ErrDeletionFailed        = httperr.ErrBusiness("deletion_failed")
	ErrUserNotFound          = httperr.ErrBusiness("user_not_found")
)

// Cascade is the set of deletions a user removal performs. Every method
// runs against the same transaction handed out by UnitOfWork.
type Cascade interface {
	// -------- Target --------
	UserExists(ctx context.Context, userID uint) (bool, error)
	TeamIDsForUser(ctx context.Context, userID uint) ([]uint, error)

	// -------- User-owned rows --------
	DeleteBarberProfile(ctx context.Context, userID uint) error
	DeleteBookingsAsCustomer(ctx context.Context, userID uint) error
	DeleteBookingsAsBarber(ctx context.Context, userID uint) error
	DeleteMemberships(ctx context.Context, userID uint) error
	DeleteInvitationsSentBy(ctx context.Context, userID uint) error
	DeleteActivityLogs(ctx context.Context, userID uint) error
	// DeletePostsByBarber returns the image URLs of the removed posts.
	DeletePostsByBarber(ctx context.Context, userID uint) ([]string, error)
	DeleteUser(ctx context.Context, userID uint) error

	// -------- Team reclamation --------
	// LockTeam takes a row lock on the team; false when it no longer exists.
	LockTeam(ctx context.Context, teamID uint) (bool, error)
	CountMembers(ctx context.Context, teamID uint) (int64, error)
	DeleteTeamBookings(ctx context.Context, teamID uint) error
	DeleteTeamServices(ctx context.Context, teamID uint) error
	DeleteTeamProducts(ctx context.Context, teamID uint) error
	DeleteTeamInvitations(ctx context.Context, teamID uint) error
	DeleteTeamActivityLogs(ctx context.Context, teamID uint) error
	DeleteTeamPosts(ctx context.Context, teamID uint) ([]string, error)
	DeleteTeam(ctx context.Context, teamID uint) error
}

// UnitOfWork runs fn inside one transaction. A non-nil return rolls back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(Cascade) error) error
}

// Directory backs the super admin read views.
type Directory interface {
	CountActiveUsers(ctx context.Context) (int64, error)
	CountTeams(ctx context.Context) (int64, error)
	ListActiveUsers(ctx context.Context) ([]models.User, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
}
