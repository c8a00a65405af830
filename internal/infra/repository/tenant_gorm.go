package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbemnt/internal/domain/tenant"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

// TenantGormUnitOfWork opens one gorm transaction per cascade.
type TenantGormUnitOfWork struct {
	db *gorm.DB
}

func NewTenantGormUnitOfWork(db *gorm.DB) *TenantGormUnitOfWork {
	return &TenantGormUnitOfWork{db: db}
}

func (u *TenantGormUnitOfWork) WithinTx(
	ctx context.Context,
	fn func(tenant.Cascade) error,
) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&TenantGormCascade{db: tx})
	})
}

// TenantGormCascade is bound to a single transaction.
type TenantGormCascade struct {
	db *gorm.DB
}

// --------------------------------------------------
// Target
// --------------------------------------------------

// UserExists locks the user row until commit; activity writes for the same
// user wait on it and are dropped once the row is gone.
func (r *TenantGormCascade) UserExists(ctx context.Context, userID uint) (bool, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Unscoped().
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *TenantGormCascade) TeamIDsForUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("user_id = ?", userID).
		Pluck("team_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// --------------------------------------------------
// User-owned rows
// --------------------------------------------------

func (r *TenantGormCascade) DeleteBarberProfile(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.BarberProfile{}).Error
}

func (r *TenantGormCascade) DeleteBookingsAsCustomer(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("customer_id = ?", userID).Delete(&models.Booking{}).Error
}

func (r *TenantGormCascade) DeleteBookingsAsBarber(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("barber_id = ?", userID).Delete(&models.Booking{}).Error
}

func (r *TenantGormCascade) DeleteMemberships(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.TeamMember{}).Error
}

func (r *TenantGormCascade) DeleteInvitationsSentBy(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("invited_by = ?", userID).Delete(&models.Invitation{}).Error
}

func (r *TenantGormCascade) DeleteActivityLogs(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.ActivityLog{}).Error
}

func (r *TenantGormCascade) DeletePostsByBarber(ctx context.Context, userID uint) ([]string, error) {
	return r.deletePosts(ctx, "barber_id = ?", userID)
}

func (r *TenantGormCascade) DeleteUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.User{}, userID).Error
}

// --------------------------------------------------
// Team reclamation
// --------------------------------------------------

func (r *TenantGormCascade) LockTeam(ctx context.Context, teamID uint) (bool, error) {
	var team models.Team
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&team, teamID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *TenantGormCascade) CountMembers(ctx context.Context, teamID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("team_id = ?", teamID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TenantGormCascade) DeleteTeamBookings(ctx context.Context, teamID uint) error {
	return r.db.WithContext(ctx).Where("team_id = ?", teamID).Delete(&models.Booking{}).Error
}

func (r *TenantGormCascade) DeleteTeamServices(ctx context.Context, teamID uint) error {
	return r.db.WithContext(ctx).Where("team_id = ?", teamID).Delete(&models.Service{}).Error
}

func (r *TenantGormCascade) DeleteTeamProducts(ctx context.Context, teamID uint) error {
	return r.db.WithContext(ctx).Where("team_id = ?", teamID).Delete(&models.Product{}).Error
}

func (r *TenantGormCascade) DeleteTeamInvitations(ctx context.Context, teamID uint) error {
	return r.db.WithContext(ctx).Where("team_id = ?", teamID).Delete(&models.Invitation{}).Error
}

func (r *TenantGormCascade) DeleteTeamActivityLogs(ctx context.Context, teamID uint) error {
	return r.db.WithContext(ctx).Where("team_id = ?", teamID).Delete(&models.ActivityLog{}).Error
}

func (r *TenantGormCascade) DeleteTeamPosts(ctx context.Context, teamID uint) ([]string, error) {
	return r.deletePosts(ctx, "team_id = ?", teamID)
}

func (r *TenantGormCascade) DeleteTeam(ctx context.Context, teamID uint) error {
	return r.db.WithContext(ctx).Delete(&models.Team{}, teamID).Error
}

// deletePosts collects image URLs before removing the rows so the caller
// can purge storage once the transaction commits.
func (r *TenantGormCascade) deletePosts(ctx context.Context, where string, id uint) ([]string, error) {
	var urls []string
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where(where, id).
		Where("image_url <> ''").
		Pluck("image_url", &urls).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where(where, id).Delete(&models.Post{}).Error; err != nil {
		return nil, err
	}
	return urls, nil
}

// Compile-time check
var (
	_ tenant.UnitOfWork = (*TenantGormUnitOfWork)(nil)
	_ tenant.Cascade    = (*TenantGormCascade)(nil)
)
