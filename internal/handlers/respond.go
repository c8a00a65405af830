package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbemnt/internal/httperr"
	"github.com/BruksfildServices01/barbemnt/internal/middleware"
)

type businessMapping struct {
	status  int
	message string
}

var businessErrors = map[string]businessMapping{
	// tenant lifecycle
	"unauthorized":            {http.StatusUnauthorized, "Unauthorized: Only super admins can delete users."},
	"self_deletion_forbidden": {http.StatusForbidden, "You cannot delete your own account."},
	"user_not_found":          {http.StatusNotFound, "User not found."},
	"deletion_failed":         {http.StatusInternalServerError, "Failed to delete user."},

	// bookings
	"team_not_found":       {http.StatusNotFound, "Team not found."},
	"service_not_found":    {http.StatusNotFound, "Service not found."},
	"barber_not_found":     {http.StatusNotFound, "Barber not found."},
	"booking_not_found":    {http.StatusNotFound, "Booking not found."},
	"invalid_date_or_time": {http.StatusBadRequest, "Invalid date or time."},
	"in_the_past":          {http.StatusBadRequest, "Bookings must be in the future."},
	"outside_availability": {http.StatusBadRequest, "The barber is not available at this time."},
	"time_conflict":        {http.StatusConflict, "This time slot is already booked."},
	"invalid_state":        {http.StatusConflict, "The booking cannot change to this status."},

	// posts
	"team_required":       {http.StatusForbidden, "You are not a member of any team."},
	"post_forbidden":      {http.StatusForbidden, "You cannot manage this post."},
	"post_not_found":      {http.StatusNotFound, "Post not found."},
	"invalid_post_type":   {http.StatusBadRequest, "Post type must be portfolio or announcement."},
	"image_required":      {http.StatusBadRequest, "Portfolio posts require an image."},
	"title_required":      {http.StatusBadRequest, "Announcements require a title."},
	"storage_unavailable": {http.StatusServiceUnavailable, "Image storage is unavailable."},
}

// writeBusinessError maps a business code to its HTTP status. Anything else
// is reported as internal_error.
func writeBusinessError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)
	m, ok := businessErrors[code]
	if !ok {
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}
	httperr.Write(c, m.status, code, m.message)
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error_code": "invalid_request",
		"message":    "Invalid request.",
		"details":    err.Error(),
	})
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid "+name+".")
		return 0, false
	}
	return uint(id), true
}

func callerID(c *gin.Context) uint {
	if p := middleware.PrincipalFrom(c); p != nil {
		return p.UserID
	}
	return 0
}
