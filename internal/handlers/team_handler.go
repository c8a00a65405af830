package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbemnt/internal/audit"
	"github.com/BruksfildServices01/barbemnt/internal/domain/role"
	"github.com/BruksfildServices01/barbemnt/internal/httperr"
	"github.com/BruksfildServices01/barbemnt/internal/httpresp"
	"github.com/BruksfildServices01/barbemnt/internal/infra/repository"
	"github.com/BruksfildServices01/barbemnt/internal/middleware"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

const invitationPending = "pending"

type TeamHandler struct {
	db    *gorm.DB
	teams *repository.TeamGormRepository
	audit *audit.Dispatcher
}

func NewTeamHandler(db *gorm.DB, teams *repository.TeamGormRepository, dispatcher *audit.Dispatcher) *TeamHandler {
	return &TeamHandler{db: db, teams: teams, audit: dispatcher}
}

// --------- Requests ---------

type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,team_role"`
}

// --------- Handlers ---------

func (h *TeamHandler) Get(c *gin.Context) {
	team, members, err := h.teams.TeamWithMembers(c.Request.Context(), middleware.TeamIDFrom(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "team_not_found", "Team not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not load the team.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team":    team,
		"members": members,
	})
}

func (h *TeamHandler) Invite(c *gin.Context) {
	if !requireTeamOwner(c) {
		return
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	teamID := middleware.TeamIDFrom(c)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var members int64
	if err := h.db.WithContext(ctx).
		Model(&models.TeamMember{}).
		Joins("JOIN users ON users.id = team_members.user_id").
		Where("team_members.team_id = ? AND users.email = ?", teamID, email).
		Count(&members).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not send the invitation.")
		return
	}
	if members > 0 {
		httperr.Conflict(c, "already_member", "User is already a member of this team.")
		return
	}

	var pending int64
	if err := h.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("team_id = ? AND email = ? AND status = ?", teamID, email, invitationPending).
		Count(&pending).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not send the invitation.")
		return
	}
	if pending > 0 {
		httperr.Conflict(c, "invitation_exists", "An invitation has already been sent to this email.")
		return
	}

	inv := models.Invitation{
		TeamID:    teamID,
		Email:     email,
		Role:      req.Role,
		InvitedBy: callerID(c),
		InvitedAt: time.Now(),
		Status:    invitationPending,
	}
	if err := h.db.WithContext(ctx).Create(&inv).Error; err != nil {
		httperr.Internal(c, "failed_to_create_invitation", "Could not send the invitation.")
		return
	}

	h.record(c, teamID, audit.InviteTeamMember)
	c.JSON(http.StatusCreated, inv)
}

func (h *TeamHandler) ListInvitations(c *gin.Context) {
	if !requireTeamOwner(c) {
		return
	}

	var invitations []models.Invitation
	if err := h.db.WithContext(c.Request.Context()).
		Where("team_id = ? AND status = ?", middleware.TeamIDFrom(c), invitationPending).
		Order("invited_at DESC").
		Find(&invitations).Error; err != nil {
		httperr.Internal(c, "failed_to_list_invitations", "Could not list invitations.")
		return
	}

	httpresp.List(c, invitations)
}

func (h *TeamHandler) RevokeInvitation(c *gin.Context) {
	if !requireTeamOwner(c) {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	teamID := middleware.TeamIDFrom(c)
	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND team_id = ? AND status = ?", id, teamID, invitationPending).
		Delete(&models.Invitation{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_revoke_invitation", "Could not revoke the invitation.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "invitation_not_found", "Invitation not found.")
		return
	}

	h.record(c, teamID, audit.RevokeInvitation)
	c.JSON(http.StatusOK, gin.H{"success": "Invitation revoked successfully"})
}

var (
	errMemberNotFound = errors.New("member not found")
	errOwnerRequired  = errors.New("caller does not own the team")
	errRemoveSelf     = errors.New("owner removing self")
	errLastMember     = errors.New("last team member")
)

// RemoveMember deletes a membership by its id. Owners cannot remove
// themselves, so a team always keeps the member managing it. The team row is
// locked, so two owners removing each other serialize and the second one is
// no longer an owner when it runs.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	if !requireTeamOwner(c) {
		return
	}
	memberID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	teamID := middleware.TeamIDFrom(c)
	actorID := callerID(c)

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&team, teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errMemberNotFound
			}
			return err
		}

		var owner models.TeamMember
		err := tx.Where("team_id = ? AND user_id = ? AND role = ?", teamID, actorID, string(role.Owner)).
			First(&owner).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errOwnerRequired
		}
		if err != nil {
			return err
		}

		var member models.TeamMember
		err = tx.Where("id = ? AND team_id = ?", memberID, teamID).First(&member).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errMemberNotFound
		}
		if err != nil {
			return err
		}
		if member.UserID == actorID {
			return errRemoveSelf
		}

		var members int64
		if err := tx.Model(&models.TeamMember{}).Where("team_id = ?", teamID).Count(&members).Error; err != nil {
			return err
		}
		if members <= 1 {
			return errLastMember
		}

		return tx.Delete(&member).Error
	})

	switch {
	case errors.Is(err, errMemberNotFound):
		httperr.NotFound(c, "member_not_found", "Team member not found.")
		return
	case errors.Is(err, errOwnerRequired):
		httperr.Forbidden(c, "owner_required", "Only the team owner can do this.")
		return
	case errors.Is(err, errRemoveSelf):
		httperr.Forbidden(c, "cannot_remove_self", "You cannot remove yourself from the team.")
		return
	case errors.Is(err, errLastMember):
		httperr.Conflict(c, "last_team_member", "A team must keep at least one member.")
		return
	case err != nil:
		httperr.Internal(c, "failed_to_remove_member", "Could not remove the member.")
		return
	}

	h.record(c, teamID, audit.RemoveTeamMember)
	c.JSON(http.StatusOK, gin.H{"success": "Team member removed successfully"})
}

func (h *TeamHandler) record(c *gin.Context, teamID uint, action audit.ActivityType) {
	if h.audit == nil {
		return
	}
	userID := callerID(c)
	h.audit.Dispatch(audit.Event{
		TeamID:    teamID,
		UserID:    &userID,
		Action:    action,
		IPAddress: c.ClientIP(),
	})
}

// requireTeamOwner checks the role held inside the scoped team.
func requireTeamOwner(c *gin.Context) bool {
	if c.GetString(middleware.ContextTeamRole) != string(role.Owner) {
		httperr.Forbidden(c, "owner_required", "Only the team owner can do this.")
		return false
	}
	return true
}
