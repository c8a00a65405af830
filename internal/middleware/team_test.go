package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbemnt/internal/domain/role"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

type lookupFunc func(ctx context.Context, userID uint) (*models.TeamMember, error)

func (f lookupFunc) Membership(ctx context.Context, userID uint) (*models.TeamMember, error) {
	return f(ctx, userID)
}

func teamRouter(lookup MembershipLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/team",
		func(c *gin.Context) {
			c.Set(ContextPrincipal, &role.Principal{UserID: 5, Role: role.Barber})
			// stale claim from the token
			c.Set(ContextTeamID, uint(99))
		},
		TeamScope(lookup),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"team_id": TeamIDFrom(c), "team_role": c.MustGet(ContextTeamRole)})
		},
	)
	return r
}

func serve(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/team", nil))
	return w
}

func TestTeamScope(t *testing.T) {
	w := serve(teamRouter(lookupFunc(func(_ context.Context, userID uint) (*models.TeamMember, error) {
		return &models.TeamMember{UserID: userID, TeamID: 4, Role: "barber"}, nil
	})))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"team_id":4,"team_role":"barber"}`, w.Body.String())

	w = serve(teamRouter(lookupFunc(func(context.Context, uint) (*models.TeamMember, error) {
		return nil, nil
	})))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "team_required")

	w = serve(teamRouter(lookupFunc(func(context.Context, uint) (*models.TeamMember, error) {
		return nil, errors.New("db down")
	})))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
