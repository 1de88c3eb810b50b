package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"issuedesk/internal/domain/issue"
	"issuedesk/internal/infrastructure/auth"
	"issuedesk/internal/shared/authorization"
	"issuedesk/internal/shared/constants"
	"issuedesk/internal/shared/logger"
	"issuedesk/internal/shared/utils"
)

// TokenVerifier is satisfied by auth.JWTService.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and
// otherwise lets the request through as a guest.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if !ok {
			c.Next()
			return
		}

		if claims, err := m.verifier.Verify(token); err == nil {
			setClaims(c, claims)
		}

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(constants.ContextKeyUserID, claims.UserID)
	c.Set(constants.ContextKeyUsername, claims.Username)
	c.Set(constants.ContextKeyUserRole, string(claims.Role))
}

// CurrentActor builds the issue actor from the values set by the auth
// middleware. Unauthenticated requests yield a guest with an empty name.
func CurrentActor(c *gin.Context) issue.Actor {
	userID, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return issue.Guest("")
	}
	uid, ok := userID.(uint)
	if !ok || uid == 0 {
		return issue.Guest("")
	}
	role := authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))
	return issue.NewActor(uid, c.GetString(constants.ContextKeyUsername), role)
}

// CurrentRole is GUEST for unauthenticated requests.
func CurrentRole(c *gin.Context) authorization.UserRole {
	if _, ok := c.Get(constants.ContextKeyUserID); !ok {
		return authorization.RoleGuest
	}
	return authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))
}
