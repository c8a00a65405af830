package admin

import (
	"context"

	"github.com/BruksfildServices01/barbemnt/internal/domain/role"
	"github.com/BruksfildServices01/barbemnt/internal/domain/tenant"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

type Stats struct {
	TotalUsers int64 `json:"total_users"`
	TotalTeams int64 `json:"total_teams"`
}

// Overview serves the read-only super admin views.
type Overview struct {
	dir tenant.Directory
}

func NewOverview(dir tenant.Directory) *Overview {
	return &Overview{dir: dir}
}

func (uc *Overview) Stats(ctx context.Context, caller *role.Principal) (*Stats, error) {
	if !caller.IsSuperAdmin() {
		return nil, tenant.ErrUnauthorized
	}

	users, err := uc.dir.CountActiveUsers(ctx)
	if err != nil {
		return nil, err
	}
	teams, err := uc.dir.CountTeams(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{TotalUsers: users, TotalTeams: teams}, nil
}

func (uc *Overview) Users(ctx context.Context, caller *role.Principal) ([]models.User, error) {
	if !caller.IsSuperAdmin() {
		return nil, tenant.ErrUnauthorized
	}
	return uc.dir.ListActiveUsers(ctx)
}

func (uc *Overview) Teams(ctx context.Context, caller *role.Principal) ([]models.Team, error) {
	if !caller.IsSuperAdmin() {
		return nil, tenant.ErrUnauthorized
	}
	return uc.dir.ListTeams(ctx)
}
