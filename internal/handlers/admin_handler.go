package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbemnt/internal/httpresp"
	"github.com/BruksfildServices01/barbemnt/internal/infra/cache"
	"github.com/BruksfildServices01/barbemnt/internal/logger"
	"github.com/BruksfildServices01/barbemnt/internal/middleware"
	"github.com/BruksfildServices01/barbemnt/internal/usecase/admin"
)

type cacheInvalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	deleteUser *admin.DeleteUser
	overview   *admin.Overview
	feed       cacheInvalidator
	log        *logger.Logger
}

func NewAdminHandler(
	deleteUser *admin.DeleteUser,
	overview *admin.Overview,
	feed cacheInvalidator,
	log *logger.Logger,
) *AdminHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AdminHandler{
		deleteUser: deleteUser,
		overview:   overview,
		feed:       feed,
		log:        log,
	}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.overview.Stats(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.OK(c, stats)
}

func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.overview.Users(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.List(c, users)
}

func (h *AdminHandler) Teams(c *gin.Context) {
	teams, err := h.overview.Teams(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.List(c, teams)
}

// DeleteUser removes the user and everything that references them.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	result, err := h.deleteUser.Execute(ctx, middleware.PrincipalFrom(c), targetID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	// the cascade may have removed posts of any team
	if h.feed != nil {
		if err := h.feed.Invalidate(ctx, cache.PublicFeedKey); err != nil {
			h.log.Error(ctx, "feed cache invalidation failed", err)
		}
	}

	c.JSON(http.StatusOK, result)
}
