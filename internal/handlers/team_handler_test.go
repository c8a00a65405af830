package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbemnt/internal/domain/role"
	"github.com/BruksfildServices01/barbemnt/internal/infra/repository"
	"github.com/BruksfildServices01/barbemnt/internal/middleware"
	"github.com/BruksfildServices01/barbemnt/internal/models"
	"github.com/BruksfildServices01/barbemnt/internal/testutil/testdb"
)

// removeAs calls RemoveMember with the scope TeamScope resolved earlier,
// which may be stale by the time the handler runs.
func removeAs(h *TeamHandler, userID, teamID, memberID uint) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/team/members/:id",
		func(c *gin.Context) {
			c.Set(middleware.ContextPrincipal, &role.Principal{UserID: userID, Role: role.Owner})
			c.Set(middleware.ContextTeamID, teamID)
			c.Set(middleware.ContextTeamRole, string(role.Owner))
		},
		h.RemoveMember,
	)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/team/members/%d", memberID), nil))
	return w
}

func TestRemoveMember_OwnersRemovingEachOtherKeepOne(t *testing.T) {
	db := testdb.New(t)
	h := NewTeamHandler(db, repository.NewTeamGormRepository(db), nil)

	team := models.Team{Name: "Twin Cuts"}
	require.NoError(t, db.Create(&team).Error)

	var owners [2]models.User
	var memberships [2]models.TeamMember
	for i := range owners {
		owners[i] = models.User{Email: fmt.Sprintf("owner%d@shop.test", i), PasswordHash: "x", Role: string(role.Owner)}
		require.NoError(t, db.Create(&owners[i]).Error)
		memberships[i] = models.TeamMember{UserID: owners[i].ID, TeamID: team.ID, Role: string(role.Owner), JoinedAt: time.Now()}
		require.NoError(t, db.Create(&memberships[i]).Error)
	}

	w := removeAs(h, owners[0].ID, team.ID, memberships[1].ID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the second owner passed the team scope before losing the membership
	w = removeAs(h, owners[1].ID, team.ID, memberships[0].ID)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "owner_required")

	var remaining []models.TeamMember
	require.NoError(t, db.Where("team_id = ?", team.ID).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, owners[0].ID, remaining[0].UserID)
}

func TestRemoveMember_Rejections(t *testing.T) {
	db := testdb.New(t)
	h := NewTeamHandler(db, repository.NewTeamGormRepository(db), nil)

	team := models.Team{Name: "Solo"}
	other := models.Team{Name: "Elsewhere"}
	require.NoError(t, db.Create(&team).Error)
	require.NoError(t, db.Create(&other).Error)

	owner := models.User{Email: "owner@shop.test", PasswordHash: "x", Role: string(role.Owner)}
	stranger := models.User{Email: "stranger@shop.test", PasswordHash: "x", Role: string(role.Barber)}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&stranger).Error)

	own := models.TeamMember{UserID: owner.ID, TeamID: team.ID, Role: string(role.Owner), JoinedAt: time.Now()}
	foreign := models.TeamMember{UserID: stranger.ID, TeamID: other.ID, Role: string(role.Barber), JoinedAt: time.Now()}
	require.NoError(t, db.Create(&own).Error)
	require.NoError(t, db.Create(&foreign).Error)

	w := removeAs(h, owner.ID, team.ID, own.ID)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "cannot_remove_self")

	w = removeAs(h, owner.ID, team.ID, foreign.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.TeamMember{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
