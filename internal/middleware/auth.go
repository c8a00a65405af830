package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barbemnt/internal/config"
	"github.com/BruksfildServices01/barbemnt/internal/domain/role"
	"github.com/BruksfildServices01/barbemnt/internal/httperr"
	"github.com/BruksfildServices01/barbemnt/internal/logger"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

const (
	ContextUserID    = "userID"
	ContextTeamID    = "teamID"
	ContextUserRole  = "userRole"
	ContextPrincipal = "principal"
)

// GenerateToken signs an HS256 token. teamID is 0 for users without a team.
func GenerateToken(cfg config.JWTConfig, userID uint, r role.Role, teamID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    userID,
		"teamId": teamID,
		"role":   string(r),
		"iss":    cfg.Issuer,
		"exp":    now.Add(cfg.TTL).Unix(),
		"iat":    now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// UserLookup returns nil, nil when the user is gone or soft-deleted.
type UserLookup interface {
	ActiveUser(ctx context.Context, userID uint) (*models.User, error)
}

// AuthMiddleware verifies the token and reloads the caller, so a deleted
// user or a changed role takes effect before the token expires.
func AuthMiddleware(cfg config.JWTConfig, users UserLookup, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authorization header is required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Expected a Bearer token.")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.Secret), nil
		}, jwt.WithIssuer(cfg.Issuer))
		if err != nil || !token.Valid {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Token is invalid or expired.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_claims", "Token claims are invalid.")
			return
		}

		userID, ok1 := claims["sub"].(float64)
		teamID, ok2 := claims["teamId"].(float64)
		roleClaim, _ := claims["role"].(string)
		if _, err := role.Parse(roleClaim); !ok1 || !ok2 || userID <= 0 || err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Token payload is invalid.")
			return
		}

		user, err := users.ActiveUser(c.Request.Context(), uint(userID))
		if err != nil {
			httperr.Abort(c, http.StatusInternalServerError, "user_lookup_failed", "Could not resolve the caller.")
			return
		}
		if user == nil {
			httperr.Abort(c, http.StatusUnauthorized, "unauthorized", "Account no longer exists.")
			return
		}
		r, err := role.Parse(user.Role)
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "unauthorized", "Account role is invalid.")
			return
		}

		principal := &role.Principal{UserID: uint(userID), Role: r}

		c.Set(ContextUserID, principal.UserID)
		c.Set(ContextTeamID, uint(teamID))
		c.Set(ContextUserRole, string(r))
		c.Set(ContextPrincipal, principal)

		if log != nil {
			ctx := log.WithUserID(c.Request.Context(), principal.UserID)
			ctx = log.WithActorRole(ctx, string(r))
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// RequireRoles rejects callers whose role is not listed.
func RequireRoles(allowed ...role.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFrom(c)
		if p == nil {
			httperr.Abort(c, http.StatusUnauthorized, "unauthorized", "Authentication required.")
			return
		}
		for _, r := range allowed {
			if p.Role == r {
				c.Next()
				return
			}
		}
		httperr.Abort(c, http.StatusForbidden, "forbidden", "Your role cannot perform this action.")
	}
}

// PrincipalFrom returns nil when the request is not authenticated.
func PrincipalFrom(c *gin.Context) *role.Principal {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*role.Principal)
	return p
}
