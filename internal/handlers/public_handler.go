package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbemnt/internal/domain/booking"
	"github.com/BruksfildServices01/barbemnt/internal/httperr"
	"github.com/BruksfildServices01/barbemnt/internal/models"
	"github.com/BruksfildServices01/barbemnt/internal/timezone"
	ucBooking "github.com/BruksfildServices01/barbemnt/internal/usecase/booking"
	ucPost "github.com/BruksfildServices01/barbemnt/internal/usecase/post"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the unauthenticated storefront.
type PublicHandler struct {
	db           *gorm.DB
	posts        *ucPost.ListPosts
	availability *ucBooking.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	posts *ucPost.ListPosts,
	availability *ucBooking.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		posts:        posts,
		availability: availability,
	}
}

// ======================================================
// FEED
// ======================================================

func (h *PublicHandler) Feed(c *gin.Context) {
	posts, err := h.posts.Feed(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_load_feed", "Could not load the feed.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// ======================================================
// SERVICES
// ======================================================

func (h *PublicHandler) Services(c *gin.Context) {
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var team models.Team
	if err := h.db.WithContext(c.Request.Context()).First(&team, teamID).Error; err != nil {
		notFoundOrInternal(c, err, "team_not_found", "Team not found.")
		return
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("team_id = ? AND is_active = ?", team.ID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team":     gin.H{"id": team.ID, "name": team.Name, "timezone": team.Timezone},
		"services": services,
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}
	barberID, ok := paramID(c, "barberId")
	if !ok {
		return
	}

	dateStr := c.Query("date")
	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if dateStr == "" || err != nil || serviceID == 0 {
		httperr.BadRequest(c, "missing_params", "date and service_id are required.")
		return
	}

	var team models.Team
	if err := h.db.WithContext(c.Request.Context()).First(&team, teamID).Error; err != nil {
		notFoundOrInternal(c, err, "team_not_found", "Team not found.")
		return
	}

	date, err := timezone.ParseDate(team.Timezone, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		TeamID:    team.ID,
		BarberID:  barberID,
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}
