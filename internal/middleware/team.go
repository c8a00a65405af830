package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbemnt/internal/httperr"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

const ContextTeamRole = "teamRole"

type MembershipLookup interface {
	Membership(ctx context.Context, userID uint) (*models.TeamMember, error)
}

// TeamScope resolves the caller's team from the database, so a member removed
// after sign-in loses team access before the token expires.
func TeamScope(lookup MembershipLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFrom(c)
		if p == nil {
			httperr.Abort(c, http.StatusUnauthorized, "unauthorized", "Authentication required.")
			return
		}

		m, err := lookup.Membership(c.Request.Context(), p.UserID)
		if err != nil {
			httperr.Abort(c, http.StatusInternalServerError, "team_lookup_failed", "Could not resolve team.")
			return
		}
		if m == nil {
			httperr.Abort(c, http.StatusForbidden, "team_required", "You are not a member of any team.")
			return
		}

		c.Set(ContextTeamID, m.TeamID)
		c.Set(ContextTeamRole, m.Role)
		c.Next()
	}
}

// TeamIDFrom returns 0 when no team is in scope.
func TeamIDFrom(c *gin.Context) uint {
	v, ok := c.Get(ContextTeamID)
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}
