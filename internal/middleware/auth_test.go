package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbemnt/internal/config"
	"github.com/BruksfildServices01/barbemnt/internal/domain/role"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

var testJWT = config.JWTConfig{Secret: "test-secret", Issuer: "barbemnt", TTL: time.Hour}

// userTable maps ids to stored roles; missing ids are deleted accounts.
type userTable map[uint]role.Role

func (u userTable) ActiveUser(_ context.Context, userID uint) (*models.User, error) {
	r, ok := u[userID]
	if !ok {
		return nil, nil
	}
	return &models.User{ID: userID, Role: string(r)}, nil
}

type failingUsers struct{}

func (failingUsers) ActiveUser(context.Context, uint) (*models.User, error) {
	return nil, errors.New("db down")
}

var testUsers = userTable{1: role.SuperAdmin, 2: role.Owner, 7: role.Owner}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	return newRouterWith(testUsers, handlers...)
}

func newRouterWith(users UserLookup, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware(testJWT, users, nil)}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		p := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": p.UserID,
			"role":    p.Role,
			"team_id": c.MustGet(ContextTeamID),
		})
	})
	r.GET("/protected", chain...)
	return r
}

func do(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, err := GenerateToken(testJWT, 7, role.Owner, 3)
	require.NoError(t, err)

	w := do(newRouter(), "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"user_id":7,"role":"owner","team_id":3}`, w.Body.String())
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	expired, err := GenerateToken(config.JWTConfig{Secret: testJWT.Secret, Issuer: testJWT.Issuer, TTL: -time.Minute}, 7, role.Owner, 3)
	require.NoError(t, err)

	otherSecret, err := GenerateToken(config.JWTConfig{Secret: "other", Issuer: testJWT.Issuer, TTL: time.Hour}, 7, role.Owner, 3)
	require.NoError(t, err)

	badRole := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 7, "teamId": 0, "role": "root", "iss": "barbemnt",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	badRoleToken, err := badRole.SignedString([]byte(testJWT.Secret))
	require.NoError(t, err)

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"garbage token":  "Bearer not-a-jwt",
		"expired":        "Bearer " + expired,
		"wrong secret":   "Bearer " + otherSecret,
		"unknown role":   "Bearer " + badRoleToken,
	}
	for name, header := range cases {
		w := do(newRouter(), header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
	}
}

func TestAuthMiddleware_ResolvesCallerFromStore(t *testing.T) {
	token, err := GenerateToken(testJWT, 7, role.SuperAdmin, 3)
	require.NoError(t, err)

	// the stored role wins over the claim
	w := do(newRouter(), "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"user_id":7,"role":"owner","team_id":3}`, w.Body.String())

	w = do(newRouterWith(userTable{}), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"unauthorized"`)

	w = do(newRouterWith(userTable{7: role.Role("root")}), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(newRouterWith(failingUsers{}), "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireRoles(t *testing.T) {
	r := newRouter(RequireRoles(role.SuperAdmin))

	admin, err := GenerateToken(testJWT, 1, role.SuperAdmin, 0)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, do(r, "Bearer "+admin).Code)

	owner, err := GenerateToken(testJWT, 2, role.Owner, 5)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, do(r, "Bearer "+owner).Code)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
