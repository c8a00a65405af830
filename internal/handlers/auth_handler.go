package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbemnt/internal/audit"
	"github.com/BruksfildServices01/barbemnt/internal/config"
	dbpkg "github.com/BruksfildServices01/barbemnt/internal/db"
	"github.com/BruksfildServices01/barbemnt/internal/domain/role"
	"github.com/BruksfildServices01/barbemnt/internal/httperr"
	"github.com/BruksfildServices01/barbemnt/internal/logger"
	"github.com/BruksfildServices01/barbemnt/internal/middleware"
	"github.com/BruksfildServices01/barbemnt/internal/models"
	"github.com/BruksfildServices01/barbemnt/internal/timezone"
	"github.com/BruksfildServices01/barbemnt/internal/validators"
)

var (
	errInvalidInvitation = httperr.ErrBusiness("invalid_invitation")
	errEmailTaken        = httperr.ErrBusiness("email_taken")
)

type AuthHandler struct {
	db    *gorm.DB
	jwt   config.JWTConfig
	audit *audit.Dispatcher
	log   *logger.Logger

	checkEmailDomain func(context.Context, string) bool
}

func NewAuthHandler(
	db *gorm.DB,
	jwt config.JWTConfig,
	checkMX bool,
	dispatcher *audit.Dispatcher,
	log *logger.Logger,
) *AuthHandler {
	if log == nil {
		log = logger.Nop()
	}
	h := &AuthHandler{
		db:               db,
		jwt:              jwt,
		audit:            dispatcher,
		log:              log,
		checkEmailDomain: func(context.Context, string) bool { return true },
	}
	if checkMX {
		h.checkEmailDomain = validators.NewEmailDomainChecker().Valid
	}
	return h
}

// --------- Requests ---------

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=100"`
	TeamName string `json:"team_name" binding:"omitempty,max=100"`
	InviteID uint   `json:"invite_id"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=100"`
}

type sessionResponse struct {
	User     models.User  `json:"user"`
	Team     *models.Team `json:"team,omitempty"`
	Token    string       `json:"token"`
	Redirect string       `json:"redirect"`
}

// --------- Handlers ---------

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !h.checkEmailDomain(c.Request.Context(), email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create the account.")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         string(role.User),
	}

	var team *models.Team

	ctx := c.Request.Context()
	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch {
		case req.InviteID != 0:
			t, err := acceptInvitation(tx, &user, req.InviteID)
			team = t
			return err
		case strings.TrimSpace(req.TeamName) != "":
			t, err := createTeam(tx, &user, strings.TrimSpace(req.TeamName))
			team = t
			return err
		default:
			return createUser(tx, &user)
		}
	})

	switch {
	case errors.Is(err, errEmailTaken):
		httperr.Conflict(c, "email_taken", "An account with this email already exists.")
		return
	case errors.Is(err, errInvalidInvitation):
		httperr.BadRequest(c, "invalid_invitation", "Invalid or expired invitation.")
		return
	case err != nil:
		h.log.Error(ctx, "sign-up failed", err)
		httperr.Internal(c, "failed_to_create_user", "Could not create the account.")
		return
	}

	if team != nil {
		h.record(c, team.ID, user.ID, audit.SignUp)
		if req.InviteID != 0 {
			h.record(c, team.ID, user.ID, audit.AcceptInvitation)
		} else {
			h.record(c, team.ID, user.ID, audit.CreateTeam)
		}
	}

	h.respondWithSession(c, http.StatusCreated, &user, team)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not sign in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	team, err := teamOf(ctx, h.db, user.ID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not sign in.")
		return
	}
	if team != nil {
		h.record(c, team.ID, user.ID, audit.SignIn)
	}

	h.respondWithSession(c, http.StatusOK, &user, team)
}

// --------- Sign-up paths ---------

func createUser(tx *gorm.DB, user *models.User) error {
	if err := tx.Create(user).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			return errEmailTaken
		}
		return err
	}
	return nil
}

func createTeam(tx *gorm.DB, user *models.User, name string) (*models.Team, error) {
	user.Role = string(role.Owner)
	if err := createUser(tx, user); err != nil {
		return nil, err
	}

	team := models.Team{Name: name, Timezone: timezone.DefaultTimezone}
	if err := tx.Create(&team).Error; err != nil {
		return nil, err
	}

	member := models.TeamMember{UserID: user.ID, TeamID: team.ID, Role: string(role.Owner), JoinedAt: time.Now()}
	if err := tx.Create(&member).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// acceptInvitation joins the invited team. The team row is locked so the
// membership cannot race a reclamation of the same team.
func acceptInvitation(tx *gorm.DB, user *models.User, inviteID uint) (*models.Team, error) {
	var inv models.Invitation
	err := tx.Where("id = ? AND email = ? AND status = ?", inviteID, user.Email, "pending").First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInvalidInvitation
	}
	if err != nil {
		return nil, err
	}

	var team models.Team
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&team, inv.TeamID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInvalidInvitation
	}
	if err != nil {
		return nil, err
	}

	user.Role = inv.Role
	if err := createUser(tx, user); err != nil {
		return nil, err
	}

	member := models.TeamMember{UserID: user.ID, TeamID: team.ID, Role: inv.Role, JoinedAt: time.Now()}
	if err := tx.Create(&member).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(&inv).Update("status", "accepted").Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// --------- Helpers ---------

func (h *AuthHandler) respondWithSession(c *gin.Context, status int, user *models.User, team *models.Team) {
	var teamID uint
	if team != nil {
		teamID = team.ID
	}

	r := role.Role(user.Role)
	token, err := middleware.GenerateToken(h.jwt, user.ID, r, teamID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not create a session.")
		return
	}

	c.JSON(status, sessionResponse{
		User:     *user,
		Team:     team,
		Token:    token,
		Redirect: r.Dashboard(),
	})
}

func (h *AuthHandler) record(c *gin.Context, teamID, userID uint, action audit.ActivityType) {
	if h.audit == nil {
		return
	}
	h.audit.Dispatch(audit.Event{
		TeamID:    teamID,
		UserID:    &userID,
		Action:    action,
		IPAddress: c.ClientIP(),
	})
}

// teamOf returns nil when the user has no membership.
func teamOf(ctx context.Context, db *gorm.DB, userID uint) (*models.Team, error) {
	var m models.TeamMember
	err := db.WithContext(ctx).
		Preload("Team").
		Where("user_id = ?", userID).
		Order("joined_at ASC, id ASC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m.Team, nil
}
