package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbemnt/internal/audit"
	"github.com/BruksfildServices01/barbemnt/internal/domain/role"
	"github.com/BruksfildServices01/barbemnt/internal/httperr"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

const recentActivityLimit = 10

type MeHandler struct {
	db       *gorm.DB
	activity *audit.Logger
}

func NewMeHandler(db *gorm.DB, activity *audit.Logger) *MeHandler {
	return &MeHandler{db: db, activity: activity}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, callerID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "user_not_found", "Your account no longer exists.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not load the account.")
		return
	}

	team, err := teamOf(ctx, h.db, user.ID)
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not load the team.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"role":      user.Role,
		"team":      team,
		"dashboard": role.Role(user.Role).Dashboard(),
	})
}

func (h *MeHandler) Activity(c *gin.Context) {
	logs, err := h.activity.Recent(c.Request.Context(), callerID(c), recentActivityLimit)
	if err != nil {
		httperr.Internal(c, "activity_list_failed", "Could not list activity.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
